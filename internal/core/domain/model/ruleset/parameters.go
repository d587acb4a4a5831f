package ruleset

// ParameterKind selects one of the parameter definition files.
type ParameterKind string

const (
	// TransportParameters also carries the business rule definitions.
	TransportParameters ParameterKind = "transport"
	// OrderParameters describes the order level of a document.
	OrderParameters ParameterKind = "order"
	// FixedParameters holds values the caller cannot override.
	FixedParameters ParameterKind = "fixed"
	// ItemParameters describes order items; only complex_road uses it.
	ItemParameters ParameterKind = "item"
)

// AllParameterKinds returns the kinds in the order the collector reads them.
func AllParameterKinds() []ParameterKind {
	return []ParameterKind{TransportParameters, OrderParameters, FixedParameters, ItemParameters}
}

// FieldDefinition declares a single input field. Default is nil when the
// field has no configured default.
type FieldDefinition struct {
	Name        string  `yaml:"name"        json:"name"`
	Description string  `yaml:"description" json:"description"`
	Example     string  `yaml:"example"     json:"example,omitempty"`
	Default     *string `yaml:"default"     json:"default,omitempty"`
	Required    bool    `yaml:"required"    json:"required,omitempty"`
}

// HasDefault reports whether a default value is configured.
func (d FieldDefinition) HasDefault() bool {
	return d.Default != nil
}

// FieldSet groups the definitions of one document type inside one kind.
type FieldSet struct {
	RequiredFields        []FieldDefinition `yaml:"required_fields"        json:"required_fields,omitempty"`
	OptionalFields        []FieldDefinition `yaml:"optional_fields"        json:"optional_fields,omitempty"`
	FixedValues           map[string]string `yaml:"fixed_values"           json:"fixed_values,omitempty"`
	OceanParameters       []FieldDefinition `yaml:"ocean_parameters"       json:"ocean_parameters,omitempty"`
	RecommendedParameters []string          `yaml:"recommended_parameters" json:"recommended_parameters,omitempty"`
}

// ParameterDefinitions is the content of one parameter definition file.
// Business rules are only declared in the transport file.
type ParameterDefinitions struct {
	Types         map[string]FieldSet `yaml:"types"`
	BusinessRules []BusinessRuleSpec  `yaml:"business_rules"`
}

// For returns the field set of a document type, or an empty set.
func (p ParameterDefinitions) For(documentType string) FieldSet {
	return p.Types[documentType]
}

// BusinessRuleKind tags the closed set of rule variants.
type BusinessRuleKind string

const (
	// FieldMappingRuleKind copies the first non-empty input field named in
	// Patterns to Target.
	FieldMappingRuleKind BusinessRuleKind = "field_mapping"
	// FixedValueRuleKind sets Action.Field to Action.Value when Condition holds.
	FixedValueRuleKind BusinessRuleKind = "fixed_value"
)

// BusinessRuleSpec is the stored form of a business rule. Which of Patterns,
// Target, Condition and Action matter depends on Kind.
type BusinessRuleSpec struct {
	ID          string           `yaml:"id"`
	Kind        BusinessRuleKind `yaml:"kind"`
	Description string           `yaml:"description"`
	Priority    int              `yaml:"priority"`
	AppliesTo   []string         `yaml:"applies_to"`
	Patterns    []string         `yaml:"patterns"`
	Target      string           `yaml:"target"`
	Condition   RuleCondition    `yaml:"condition"`
	Action      RuleAction       `yaml:"action"`
}

// RuleCondition tests one field. The only supported operator is "has_value".
type RuleCondition struct {
	Field    string `yaml:"field"`
	Operator string `yaml:"operator"`
}

// RuleAction assigns Value to Field.
type RuleAction struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}
