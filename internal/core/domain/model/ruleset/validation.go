package ruleset

// ValidationKind selects one of the validation rule files.
type ValidationKind string

const (
	// FieldValidation holds per-element format rules.
	FieldValidation ValidationKind = "field"
	// BusinessValidation holds per-document-type rules.
	BusinessValidation ValidationKind = "business"
)

// FieldRule is a declarative format check on a single element's text.
// Zero values disable the corresponding check.
type FieldRule struct {
	Required      bool     `yaml:"required"`
	Type          string   `yaml:"type"`
	MinLength     int      `yaml:"min_length"`
	MaxLength     int      `yaml:"max_length"`
	Pattern       string   `yaml:"pattern"`
	ErrorMessage  string   `yaml:"error_message"`
	AllowedValues []string `yaml:"allowed_values"`
}

// OrderItemRules apply to every order_item of a document type.
type OrderItemRules struct {
	RequiredFields        []string `yaml:"required_fields"`
	RecommendedQuantities []string `yaml:"recommended_quantities"`
	RecommendedParameters []string `yaml:"recommended_parameters"`
}

// TypeRules is the business rule set of one document type. MaxStops of zero
// means unbounded.
type TypeRules struct {
	RequiredElements              []string          `yaml:"required_elements"`
	MinStops                      int               `yaml:"min_stops"`
	MaxStops                      int               `yaml:"max_stops"`
	FixedValues                   map[string]string `yaml:"fixed_values"`
	RequiredParameters            []string          `yaml:"required_parameters"`
	ForbiddenParameters           []string          `yaml:"forbidden_parameters"`
	MandatoryFixedParameters      map[string]string `yaml:"mandatory_fixed_parameters"`
	RequiresCarrierCreditorNumber bool              `yaml:"requires_carrier_creditor_number"`
	OrderItems                    *OrderItemRules   `yaml:"order_items"`
}

// ValidationRules is the content of one validation rule file. A field rule
// file fills Fields, a business rule file fills Types.
type ValidationRules struct {
	Fields map[string]FieldRule `yaml:"fields"`
	Types  map[string]TypeRules `yaml:"types"`
}
