package validator

import (
	"slices"
	"strconv"
	"time"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/ports"

	"github.com/beevik/etree"
)

const oceanSchedulingUnit = "Ocean Visibility"

var requiredOceanParameters = []string{
	transportorder.VisibilityFlagQualifier,
	transportorder.ScacQualifier,
	transportorder.BillOfLadingQualifier,
	transportorder.ContainerQualifier,
}

// Business checks the rules of a document type and the consistency
// between fields.
type Business struct {
	store ports.RuleStore
}

// NewBusiness returns a Business reading its rules from store.
func NewBusiness(store ports.RuleStore) *Business {
	return &Business{store: store}
}

// ValidateBusinessRules applies the configured rules of documentType.
// Types without configured rules pass.
func (b *Business) ValidateBusinessRules(xml string, documentType kernel.DocumentType) validation.Result {
	result := validation.NewResult()
	if t, ok := load(xml, &result); ok {
		b.businessRules(t, documentType, &result)
	}
	return result
}

// ValidateCrossFieldConsistency compares the carrier creditor number with
// its parameter copies, the order of stop dates and the stop indices.
func (b *Business) ValidateCrossFieldConsistency(xml string) validation.Result {
	result := validation.NewResult()
	if t, ok := load(xml, &result); ok {
		b.crossField(t, &result)
	}
	return result
}

// ValidateOceanCompleteness checks the ocean parameters of documents
// scheduled as ocean visibility. Other documents pass.
func (b *Business) ValidateOceanCompleteness(xml string) validation.Result {
	result := validation.NewResult()
	if t, ok := load(xml, &result); ok {
		b.oceanCompleteness(t, &result)
	}
	return result
}

func (b *Business) businessRules(t *tree, documentType kernel.DocumentType, result *validation.Result) {
	if err := documentType.Validate(); err != nil {
		result.AddError("Unsupported document type: %s", documentType)
		return
	}
	all, err := b.store.ValidationRules(ruleset.BusinessValidation)
	if err != nil {
		result.AddError("Business validation rules unavailable: %v", err)
		return
	}
	rules, ok := all.Types[documentType.String()]
	if !ok {
		return
	}
	label := documentType.String()

	for _, name := range rules.RequiredElements {
		if child(t.order, name) == nil {
			result.AddError("%s: Required element '%s' is missing", label, name)
		}
	}

	checkStopCount(t.order, label, rules, result)

	for _, name := range sortedKeys(rules.FixedValues) {
		expected := rules.FixedValues[name]
		element := child(t.order, name)
		switch {
		case element == nil:
			result.AddError("%s: Missing required field '%s'", label, name)
		case text(element) != expected:
			result.AddError("%s: Field '%s' must be '%s', found '%s'", label, name, expected, text(element))
		}
	}

	params := parameters(t.order)
	for _, p := range params {
		if q := qualifier(p); slices.Contains(rules.ForbiddenParameters, q) {
			result.AddError("%s: Forbidden parameter '%s' is not allowed", label, q)
		}
	}

	if len(rules.RequiredParameters) > 0 {
		if len(parameterSections(t.order)) == 0 {
			result.AddError("Required parameters section is missing")
		} else {
			present := qualifiers(params)
			for _, q := range rules.RequiredParameters {
				if !present[q] {
					result.AddError("Required parameter '%s' is missing", q)
				}
			}
		}
	}

	for _, p := range params {
		q := qualifier(p)
		expected, ok := rules.MandatoryFixedParameters[q]
		if ok && childText(p, "value") != expected {
			result.AddError("Parameter '%s' must have value '%s'", q, expected)
		}
	}

	if rules.RequiresCarrierCreditorNumber && childText(t.order, "carrier_creditor_number") == "" {
		result.AddError("%s: carrier_creditor_number is required", label)
	}

	if rules.OrderItems != nil {
		checkOrderItems(t.order, *rules.OrderItems, result)
	}
}

func checkStopCount(order *etree.Element, label string, rules ruleset.TypeRules, result *validation.Result) {
	stopsElement := child(order, "stops")
	if stopsElement == nil {
		return
	}
	count := len(children(stopsElement, "stop"))
	if count < rules.MinStops {
		result.AddError("%s: Minimum %d stops required, found %d", label, rules.MinStops, count)
	}
	if rules.MaxStops > 0 && count > rules.MaxStops {
		result.AddError("%s: Maximum %d stops allowed, found %d", label, rules.MaxStops, count)
	}
}

func checkOrderItems(order *etree.Element, rules ruleset.OrderItemRules, result *validation.Result) {
	items := children(child(orderDetails(order), "order_items"), "order_item")
	for i, item := range items {
		n := i + 1
		for _, field := range rules.RequiredFields {
			if childText(item, field) == "" {
				result.AddError("Order item %d: Missing required field '%s'", n, field)
			}
		}

		if quantities := child(item, "quantities"); quantities != nil {
			present := make(map[string]bool)
			for _, quantity := range children(quantities, "quantity") {
				if q := childText(quantity, "qualifier"); q != "" {
					present[q] = true
				}
			}
			for _, q := range rules.RecommendedQuantities {
				if !present[q] {
					result.AddWarning("Order item %d: Recommended quantity '%s' is missing", n, q)
				}
			}
		}

		if section := child(item, "parameters"); section != nil {
			present := qualifiers(children(section, "parameter"))
			for _, q := range rules.RecommendedParameters {
				if !present[q] {
					result.AddWarning("Order item %d: Recommended parameter '%s' is missing", n, q)
				}
			}
		}
	}
}

func (b *Business) crossField(t *tree, result *validation.Result) {
	if carrier := childText(t.order, "carrier_creditor_number"); carrier != "" {
		for _, p := range parameters(t.order) {
			if qualifier(p) != transportorder.PreassignedCarrierParam {
				continue
			}
			if value := child(p, "value"); value != nil && text(value) != carrier {
				result.AddWarning("Carrier creditor number inconsistency between transport and order levels")
				break
			}
		}
	}

	stopElements := stops(t.order)
	checkDateSequence(stopElements, result)
	checkIndexSequence(stopElements, result)
}

// checkDateSequence compares stop start instants in document order.
// Unparsable timestamps are left to the structure stage.
func checkDateSequence(stopElements []*etree.Element, result *validation.Result) {
	var previous time.Time
	for _, stop := range stopElements {
		start, err := kernel.ParseTimestamp(childText(child(stop, "date_time_period"), "start"))
		if err != nil {
			continue
		}
		if !previous.IsZero() && start.Before(previous) {
			result.AddWarning("Stop dates may not be in logical sequence - verify pickup and delivery order")
			return
		}
		previous = start
	}
}

func checkIndexSequence(stopElements []*etree.Element, result *validation.Result) {
	var indices []int
	for _, stop := range stopElements {
		value := childText(stop, "index")
		if value == "" {
			continue
		}
		index, err := strconv.Atoi(value)
		if err != nil {
			result.AddError("Stop index must be a number")
			continue
		}
		indices = append(indices, index)
	}
	if len(indices) == 0 {
		return
	}

	slices.Sort(indices)
	if indices[0] != 0 {
		result.AddError("Stop indices should start from 0")
	}
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			result.AddError("Stop indices should be sequential")
			break
		}
	}
}

func (b *Business) oceanCompleteness(t *tree, result *validation.Result) {
	if childText(t.order, "scheduling_unit") != oceanSchedulingUnit {
		return
	}
	if len(parameterSections(t.order)) == 0 {
		result.AddError("Ocean visibility orders must have parameters section")
		return
	}

	params := parameters(t.order)
	present := qualifiers(params)
	for _, q := range requiredOceanParameters {
		if !present[q] {
			result.AddError("Ocean visibility: Missing required parameter '%s'", q)
		}
	}

	for _, p := range params {
		value := childText(p, "value")
		switch qualifier(p) {
		case transportorder.VisibilityFlagQualifier:
			if value != "true" {
				result.AddError("Ocean visibility parameter must be 'true'")
			}
		case transportorder.ScacQualifier:
			if value != "" && !collector.IsScac(value) {
				result.AddError("Invalid SCAC code format: %s", value)
			}
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
