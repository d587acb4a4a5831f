package validator

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/ports"

	"github.com/beevik/etree"
)

var (
	requiredElements  = []string{"number", "status", "scheduling_unit", "orders", "stops"}
	nonEmptyElements  = []string{"number", "status", "scheduling_unit"}
	requiredInDetails = []string{"number", "loading_stop_ids", "unloading_stop_ids"}
	requiredInAddress = []string{"company_name", "city", "country"}
)

// Structural checks document shape, field formats and stop references.
type Structural struct {
	store ports.RuleStore
}

// NewStructural returns a Structural reading its field rules from store.
func NewStructural(store ports.RuleStore) *Structural {
	return &Structural{store: store}
}

// ValidateStructure checks well-formedness, the namespace, the required
// elements and the shape of order details and stops.
func (s *Structural) ValidateStructure(xml string) validation.Result {
	result := validation.NewResult()
	t, err := parse(xml)
	if err != nil {
		result.AddError("XML parsing error: %v", err)
		return result
	}
	s.structure(t, &result)
	return result
}

// ValidateFieldFormats applies the configured field rules to the direct
// children of transport_order and checks SCAC codes.
func (s *Structural) ValidateFieldFormats(xml string) validation.Result {
	result := validation.NewResult()
	if t, ok := load(xml, &result); ok {
		s.fieldFormats(t, &result)
	}
	return result
}

// ValidateStopReferences checks that every loading and unloading stop id
// names a stop of the document.
func (s *Structural) ValidateStopReferences(xml string) validation.Result {
	result := validation.NewResult()
	if t, ok := load(xml, &result); ok {
		s.stopReferences(t, &result)
	}
	return result
}

func (s *Structural) structure(t *tree, result *validation.Result) {
	switch t.root.NamespaceURI() {
	case Namespace:
	case "":
		result.AddWarning("Document has no namespace; expected %s", Namespace)
	default:
		result.AddError("Missing or incorrect namespace")
	}
	if t.root.Tag != "transport_orders" {
		result.AddError("Root element must be 'transport_orders'")
	}
	if t.order == nil {
		result.AddError("No transport_order element found")
		return
	}

	for _, name := range requiredElements {
		element := child(t.order, name)
		switch {
		case element == nil:
			result.AddError("Required element '%s' is missing", name)
		case slices.Contains(nonEmptyElements, name) && text(element) == "":
			result.AddError("Required element '%s' is empty", name)
		}
	}

	if orders := child(t.order, "orders"); orders != nil {
		if details := child(orders, "order_details"); details == nil {
			result.AddError("orders element must contain order_details")
		} else {
			checkOrderDetails(details, result)
		}
	}

	if stopsElement := child(t.order, "stops"); stopsElement != nil {
		stopElements := children(stopsElement, "stop")
		if len(stopElements) == 0 {
			result.AddError("stops element must contain at least one stop")
		} else {
			checkStops(stopElements, result)
		}
	}
}

func checkOrderDetails(details *etree.Element, result *validation.Result) {
	for _, name := range requiredInDetails {
		if child(details, name) == nil {
			result.AddError("order_details missing required element: %s", name)
		}
	}
	for _, ids := range []string{"loading_stop_id", "unloading_stop_id"} {
		container := child(details, ids+"s")
		if container != nil && len(children(container, ids)) == 0 {
			result.AddError("%ss must contain at least one %s", ids, ids)
		}
	}
}

func checkStops(stopElements []*etree.Element, result *validation.Result) {
	seen := make(map[string]bool, len(stopElements))
	for i, stop := range stopElements {
		n := i + 1

		if id := childText(stop, "id"); id == "" {
			result.AddError("Stop %d: missing or empty id element", n)
		} else if seen[id] {
			result.AddError("Duplicate stop ID: %s", id)
		} else {
			seen[id] = true
		}

		if child(stop, "index") == nil {
			result.AddError("Stop %d: missing index element", n)
		}

		if location := child(stop, "location"); location == nil {
			result.AddError("Stop %d: missing location element", n)
		} else {
			checkLocation(location, n, result)
		}

		if period := child(stop, "date_time_period"); period == nil {
			result.AddError("Stop %d: missing date_time_period element", n)
		} else {
			checkPeriod(period, n, result)
		}
	}
}

func checkLocation(location *etree.Element, n int, result *validation.Result) {
	for _, name := range requiredInAddress {
		if childText(location, name) == "" {
			result.AddError("Stop %d: location missing required element: %s", n, name)
		}
	}
	if country := childText(location, "country"); country != "" && !kernel.IsCountryCode(country) {
		result.AddError("Stop %d: country code must be 2 uppercase letters", n)
	}
}

func checkPeriod(period *etree.Element, n int, result *validation.Result) {
	for _, bound := range []string{"start", "end"} {
		value := childText(period, bound)
		switch {
		case value == "":
			result.AddError("Stop %d: date_time_period missing %s element", n, bound)
		case !kernel.IsTimestamp(value):
			result.AddError("Stop %d: invalid %s date format", n, bound)
		}
	}
}

func (s *Structural) fieldFormats(t *tree, result *validation.Result) {
	rules, err := s.store.ValidationRules(ruleset.FieldValidation)
	if err != nil {
		result.AddError("Field validation rules unavailable: %v", err)
		return
	}

	names := make([]string, 0, len(rules.Fields))
	for name := range rules.Fields {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		element := child(t.order, name)
		if element == nil {
			continue
		}
		applyFieldRule(name, text(element), rules.Fields[name], result)
	}

	for _, p := range parameters(t.order) {
		if qualifier(p) != transportorder.ScacQualifier {
			continue
		}
		if value := childText(p, "value"); value != "" && !collector.IsScac(value) {
			result.AddError("Invalid SCAC code format: %s", value)
		}
	}
}

func applyFieldRule(name, value string, rule ruleset.FieldRule, result *validation.Result) {
	if value == "" {
		if rule.Required {
			result.AddError("Field '%s' is required but empty", name)
		}
		return
	}

	if rule.Type == "number" {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			result.AddError("Field '%s' must be a number: %s", name, value)
			return
		}
	}

	length := utf8.RuneCountInString(value)
	if rule.MinLength > 0 && length < rule.MinLength {
		result.AddError("Field '%s' is too short (minimum %d characters)", name, rule.MinLength)
	}
	if rule.MaxLength > 0 && length > rule.MaxLength {
		result.AddError("Field '%s' is too long (maximum %d characters)", name, rule.MaxLength)
	}

	if rule.Pattern != "" {
		pattern, err := regexp.Compile("^(?:" + rule.Pattern + ")")
		switch {
		case err != nil:
			result.AddError("Field '%s' has an invalid pattern rule: %s", name, rule.Pattern)
		case !pattern.MatchString(value):
			if rule.ErrorMessage != "" {
				result.AddError("%s", rule.ErrorMessage)
			} else {
				result.AddError("Field '%s' format is invalid", name)
			}
		}
	}

	if len(rule.AllowedValues) > 0 && !slices.Contains(rule.AllowedValues, value) {
		result.AddError("Field '%s' must be one of: %s", name, strings.Join(rule.AllowedValues, ", "))
	}
}

func (s *Structural) stopReferences(t *tree, result *validation.Result) {
	known := make(map[string]bool)
	for _, stop := range stops(t.order) {
		if id := childText(stop, "id"); id != "" {
			known[id] = true
		}
	}

	details := orderDetails(t.order)
	if details == nil {
		return
	}
	for _, ref := range []struct{ container, element, label string }{
		{"loading_stop_ids", "loading_stop_id", "Loading"},
		{"unloading_stop_ids", "unloading_stop_id", "Unloading"},
	} {
		for _, id := range children(child(details, ref.container), ref.element) {
			if value := text(id); value != "" && !known[value] {
				result.AddError("%s stop ID '%s' does not reference an existing stop", ref.label, value)
			}
		}
	}
}
