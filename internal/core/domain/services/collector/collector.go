// Package collector turns loosely typed caller input into a normalized
// draft, following the field definitions of the rule store.
package collector

import (
	"fmt"
	"regexp"
	"strconv"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/rules"
	"transportorder/internal/core/ports"
)

var scacPattern = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// DefaultQuantityValue is used for a quantity given without a value.
const DefaultQuantityValue = "0"

// Collector is the Parameter Collector. It reads field definitions from the
// rule store on every call and passes the collected transport info, defaults
// included, through the rule engine.
//
// A Collector holds no per-request state and may be shared between
// goroutines.
type Collector struct {
	store  ports.RuleStore
	engine *rules.Engine
}

// New creates a collector. engine may not be nil.
//
// Example:
//
//	store, _ := rulestore.New(rulestore.Embedded())
//	c := collector.New(store, rules.NewEngine(store, logger))
//	draft, err := c.Collect(kernel.SimpleRoad, input)
//	var fieldErr *collector.FieldError
//	if errors.As(err, &fieldErr) {
//	    // fieldErr.Field names the offending input
//	}
func New(store ports.RuleStore, engine *rules.Engine) *Collector {
	return &Collector{store: store, engine: engine}
}

// Collect builds the complete draft for documentType. The first failure is
// returned as a *FieldError.
func (c *Collector) Collect(documentType kernel.DocumentType, input transportorder.Input) (*transportorder.Draft, error) {
	transportInfo, err := c.TransportInfo(documentType, input)
	if err != nil {
		return nil, err
	}
	orderDetails, err := c.OrderDetails(documentType, input)
	if err != nil {
		return nil, err
	}
	stops, err := c.Stops(input)
	if err != nil {
		return nil, err
	}
	items, err := c.OrderItems(documentType, input)
	if err != nil {
		return nil, err
	}
	ocean, err := c.OceanParameters(documentType, input)
	if err != nil {
		return nil, err
	}

	return &transportorder.Draft{
		DocumentType:  documentType,
		TransportInfo: transportInfo,
		OrderDetails:  orderDetails,
		Stops:         stops,
		Parameters:    c.Parameters(input),
		OrderItems:    items,
		Ocean:         ocean,
	}, nil
}

// TransportInfo applies fixed values, then required fields (input, else
// default), then optional fields present in input or defaulted, and finally
// the business rules.
func (c *Collector) TransportInfo(documentType kernel.DocumentType, input transportorder.Input) (transportorder.Fields, error) {
	fields := transportorder.NewFields()

	fixed, err := c.fieldSet(ruleset.FixedParameters, documentType)
	if err != nil {
		return nil, err
	}
	for name, value := range fixed.FixedValues {
		fields.Set(name, value)
	}

	defs, err := c.fieldSet(ruleset.TransportParameters, documentType)
	if err != nil {
		return nil, err
	}
	for _, field := range defs.RequiredFields {
		switch {
		case input.Has(field.Name):
			fields.Set(field.Name, input[field.Name])
		case field.HasDefault():
			fields.Set(field.Name, *field.Default)
		default:
			return nil, newFieldError(ErrMissingRequiredField, field.Name,
				fmt.Sprintf("Required field '%s' not provided for %s", field.Name, documentType), nil)
		}
	}
	for _, field := range defs.OptionalFields {
		switch {
		case input.Has(field.Name):
			fields.Set(field.Name, input[field.Name])
		case field.HasDefault():
			fields.Set(field.Name, *field.Default)
		}
	}

	return c.engine.Apply(documentType, input, fields), nil
}

// OrderDetails collects order-level fields. Required order fields have no
// defaults.
func (c *Collector) OrderDetails(documentType kernel.DocumentType, input transportorder.Input) (transportorder.Fields, error) {
	defs, err := c.fieldSet(ruleset.OrderParameters, documentType)
	if err != nil {
		return nil, err
	}

	fields := transportorder.NewFields()
	for name, value := range defs.FixedValues {
		fields.Set(name, value)
	}
	for _, field := range defs.RequiredFields {
		if !input.Has(field.Name) {
			return nil, newFieldError(ErrMissingRequiredField, field.Name,
				fmt.Sprintf("Required order field '%s' not provided", field.Name), nil)
		}
		fields.Set(field.Name, input[field.Name])
	}
	for _, field := range defs.OptionalFields {
		if input.Has(field.Name) {
			fields.Set(field.Name, input[field.Name])
		}
	}
	return fields, nil
}

// Stops normalizes the stop list. A stop without id is named stop_N after
// its position, and a stop without index takes its position.
func (c *Collector) Stops(input transportorder.Input) ([]transportorder.Stop, error) {
	raw := input.Objects("stops")
	stops := make([]transportorder.Stop, 0, len(raw))

	for i, data := range raw {
		stop, err := NewStop(data, i)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

// NewStop normalizes one raw stop found at position.
func NewStop(data transportorder.Input, position int) (transportorder.Stop, error) {
	id := data.Text("id")
	if id == "" {
		id = "stop_" + strconv.Itoa(position+1)
	}
	index, ok := data.String("index")
	if !ok {
		index = strconv.Itoa(position)
	}

	location, err := NewLocation(data.Object("location"))
	if err != nil {
		return transportorder.Stop{}, newFieldError(ErrInvalidLocation,
			fmt.Sprintf("stops[%d].location", position),
			fmt.Sprintf("Stop %s has an invalid location", id), err)
	}

	period, err := NewDateTimePeriod(data.Object("date_time_period"))
	if err != nil {
		return transportorder.Stop{}, newFieldError(ErrInvalidDateTime,
			fmt.Sprintf("stops[%d].date_time_period", position),
			fmt.Sprintf("Stop %s has an invalid date_time_period", id), err)
	}

	return transportorder.Stop{ID: id, Index: index, Location: location, Period: period}, nil
}

// NewLocation builds a location from its raw map.
func NewLocation(data transportorder.Input) (kernel.Location, error) {
	return kernel.NewLocation(kernel.Address{
		CompanyName: data.Text("company_name"),
		Street:      data.Text("street"),
		Zip:         data.Text("zip"),
		City:        data.Text("city"),
		State:       data.Text("state"),
		Country:     data.Text("country"),
		Comment:     data.Text("comment"),
	})
}

// NewDateTimePeriod builds a period from its raw map.
func NewDateTimePeriod(data transportorder.Input) (kernel.DateTimePeriod, error) {
	return kernel.NewDateTimePeriod(data.Text("start"), data.Text("end"), data.Text("timezone"))
}

// Parameters collects custom transport parameters. Entries without a
// qualifier are skipped.
func (c *Collector) Parameters(input transportorder.Input) []transportorder.Parameter {
	return parameters(input.Objects("parameters"), true)
}

// OrderItems collects order items for types that define item fields.
func (c *Collector) OrderItems(documentType kernel.DocumentType, input transportorder.Input) ([]transportorder.OrderItem, error) {
	defs, err := c.fieldSet(ruleset.ItemParameters, documentType)
	if err != nil {
		return nil, err
	}
	raw := input.Objects("order_items")
	if len(defs.RequiredFields) == 0 || len(raw) == 0 {
		return nil, nil
	}

	items := make([]transportorder.OrderItem, 0, len(raw))
	for i, data := range raw {
		for _, field := range defs.RequiredFields {
			if data.Text(field.Name) == "" {
				return nil, newFieldError(ErrMissingRequiredField,
					fmt.Sprintf("order_items[%d].%s", i, field.Name),
					fmt.Sprintf("Order item %d: required item field '%s' is missing", i+1, field.Name), nil)
			}
		}

		quantities := make([]transportorder.Quantity, 0)
		for _, q := range data.Objects("quantities") {
			value, ok := q.String("value")
			if !ok || value == "" {
				value = DefaultQuantityValue
			}
			quantities = append(quantities, transportorder.Quantity{
				Qualifier: q.Text("qualifier"),
				Value:     value,
				Unit:      q.Text("unit"),
			})
		}

		items = append(items, transportorder.OrderItem{
			Number:           data.Text("number"),
			ShortDescription: data.Text("short_description"),
			MaterialNumber:   data.Text("material_number"),
			Quantities:       quantities,
			Parameters:       parameters(data.Objects("parameters"), false),
		})
	}
	return items, nil
}

// OceanParameters collects the ocean qualifiers for types that define
// them. The booking number defaults to empty.
func (c *Collector) OceanParameters(documentType kernel.DocumentType, input transportorder.Input) (map[string]string, error) {
	defs, err := c.fieldSet(ruleset.TransportParameters, documentType)
	if err != nil {
		return nil, err
	}
	if len(defs.OceanParameters) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(defs.OceanParameters))
	for _, param := range defs.OceanParameters {
		value, present := input.String(param.Name)
		if !present {
			if param.Required {
				return nil, newFieldError(ErrMissingRequiredField, param.Name,
					fmt.Sprintf("Required ocean parameter '%s' not provided", param.Name), nil)
			}
			if param.Name == transportorder.BookingQualifier {
				result[param.Name] = ""
			}
			continue
		}
		if param.Name == transportorder.ScacQualifier && !scacPattern.MatchString(value) {
			return nil, newFieldError(ErrInvalidParameter, param.Name,
				fmt.Sprintf("SCAC code must be 4 alphanumeric characters: %s", value), nil)
		}
		result[param.Name] = value
	}
	return result, nil
}

// IsScac reports whether code is a well-formed SCAC.
func IsScac(code string) bool {
	return scacPattern.MatchString(code)
}

// MissingFieldPrompts lists a prompt for every required transport, order
// and, where defined, ocean field absent from input. Fields with a default
// are never missing.
func (c *Collector) MissingFieldPrompts(documentType kernel.DocumentType, input transportorder.Input) []string {
	prompts := make([]string, 0)

	transport, transportErr := c.fieldSet(ruleset.TransportParameters, documentType)
	order, orderErr := c.fieldSet(ruleset.OrderParameters, documentType)

	if transportErr == nil {
		prompts = appendPrompts(prompts, transport.RequiredFields, input)
	}
	if orderErr == nil {
		prompts = appendPrompts(prompts, order.RequiredFields, input)
	}
	if transportErr == nil {
		prompts = appendPrompts(prompts, requiredOnly(transport.OceanParameters), input)
	}
	return prompts
}

func appendPrompts(prompts []string, fields []ruleset.FieldDefinition, input transportorder.Input) []string {
	for _, field := range fields {
		if !input.Has(field.Name) && !field.HasDefault() {
			prompts = append(prompts, describe("Please provide", field))
		}
	}
	return prompts
}

func requiredOnly(fields []ruleset.FieldDefinition) []ruleset.FieldDefinition {
	var out []ruleset.FieldDefinition
	for _, f := range fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

// SuggestOptionalFields describes the optional transport fields of a type.
func (c *Collector) SuggestOptionalFields(documentType kernel.DocumentType) []string {
	suggestions := make([]string, 0)
	defs, err := c.fieldSet(ruleset.TransportParameters, documentType)
	if err != nil {
		return suggestions
	}
	for _, field := range defs.OptionalFields {
		suggestions = append(suggestions, describe("Optional:", field))
	}
	return suggestions
}

func (c *Collector) fieldSet(kind ruleset.ParameterKind, documentType kernel.DocumentType) (ruleset.FieldSet, error) {
	defs, err := c.store.ParameterDefinitions(kind)
	if err != nil {
		return ruleset.FieldSet{}, fmt.Errorf("load %s parameters: %w", kind, err)
	}
	return defs.For(documentType.String()), nil
}

func describe(prefix string, field ruleset.FieldDefinition) string {
	text := fmt.Sprintf("%s %s (%s)", prefix, field.Description, field.Name)
	if field.Example != "" {
		text += " - Example: " + field.Example
	}
	return text
}

func parameters(raw []transportorder.Input, skipUnqualified bool) []transportorder.Parameter {
	params := make([]transportorder.Parameter, 0, len(raw))
	for _, data := range raw {
		qualifier := data.Text("qualifier")
		if qualifier == "" && skipUnqualified {
			continue
		}
		params = append(params, transportorder.Parameter{
			Qualifier:         qualifier,
			Value:             data.Text("value"),
			ShipperVisibility: data.Text("shipper_visibility"),
			ExportToCarrier:   data.Text("export_to_carrier"),
		})
	}
	return params
}
