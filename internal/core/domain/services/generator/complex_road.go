package generator

import (
	"regexp"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/assembler"
	"transportorder/internal/core/ports"
)

const (
	complexRoadMinStops = 2
	complexRoadMaxStops = 20
)

var carrierCreditorPattern = regexp.MustCompile(`^[0-9]{10}$`)

var complexRoadCapabilities = Capabilities{
	DocumentType:       kernel.ComplexRoad,
	TransportType:      kernel.ComplexRoad.String(),
	Description:        "Complex Road Freight - Advanced transport orders with order items, parameters, and carrier information",
	RequiredFields:     []string{"number", "status", "scheduling_unit", "carrier_creditor_number"},
	SupportsOrderItems: true,
}

// Qualifiers rendered under order_details; everything else listed in
// transportParameterQualifiers goes to the transport level. Parameters in
// neither list are dropped.
var orderParameterQualifiers = []string{
	transportorder.PreassignedCarrierParam,
	"salesorderNumber",
	"shuttleTransport",
	"shuttleTransportAuto",
	"CPUrecipient",
	"CSRName",
	"CSREmail",
	"CSRPhone",
	"OrderDate",
	"transportMode",
	"shippingPoint",
	"ShipTo",
	"material",
	"route",
	"purchaseOrderNumber",
	"PGIDate",
}

var transportParameterQualifiers = []string{
	"numberofCombinedDeliveries",
	"combinedloadnumber",
	"transport.salesorderNumber",
	"transport.purchaseOrderNumber",
	"transport.customerPONumber",
	"custom.resend.carrierprint",
	"transport.shipperBillTo",
}

var defaultRecommendedItemParameters = []string{"material", "plantCode", "unitOfMeasurement"}

// checkComplexRoad needs the item definitions, so it is bound to a store.
func checkComplexRoad(store ports.RuleStore) func(transportorder.Input, *InputValidation) {
	return func(input transportorder.Input, v *InputValidation) {
		stops := len(input.Objects("stops"))
		switch {
		case stops < complexRoadMinStops:
			v.addError("Complex road freight requires at least 2 stops")
		case stops > complexRoadMaxStops:
			v.addError("Complex road freight supports maximum 20 stops")
		}

		carrier := input.Text("carrier_creditor_number")
		if carrier != "" && !carrierCreditorPattern.MatchString(carrier) {
			v.addError("Carrier creditor number must be 10 digits")
		}

		forbidOceanQualifiers(input, v, "complex road freight")

		required, recommended := itemRules(store)
		for i, item := range input.Objects("order_items") {
			checkOrderItem(i+1, item, required, recommended, v)
		}

		for _, p := range input.Objects("parameters") {
			if p.Text("qualifier") == transportorder.PreassignedCarrierParam && p.Text("value") != carrier {
				v.addWarning("Carrier creditor number inconsistency between transport and order levels")
			}
		}
	}
}

func itemRules(store ports.RuleStore) (required, recommended []string) {
	required = []string{"number", "short_description", "material_number"}
	recommended = defaultRecommendedItemParameters

	defs, err := store.ParameterDefinitions(ruleset.ItemParameters)
	if err != nil {
		return required, recommended
	}
	set := defs.For(kernel.ComplexRoad.String())
	if len(set.RequiredFields) > 0 {
		required = required[:0:0]
		for _, f := range set.RequiredFields {
			required = append(required, f.Name)
		}
	}
	if len(set.RecommendedParameters) > 0 {
		recommended = set.RecommendedParameters
	}
	return required, recommended
}

func checkOrderItem(position int, item transportorder.Input, required, recommended []string, v *InputValidation) {
	for _, field := range required {
		if item.Text(field) == "" {
			v.addError("Order item %d: Required field '%s' is missing", position, field)
		}
	}

	quantities := item.Objects("quantities")
	if len(quantities) == 0 {
		v.addWarning("Order item %d: No quantities specified", position)
	}
	for _, q := range quantities {
		if q.Text("qualifier") == "" {
			v.addError("Order item %d: Quantity qualifier is required", position)
		}
	}

	present := make(map[string]struct{})
	for _, p := range item.Objects("parameters") {
		present[p.Text("qualifier")] = struct{}{}
	}
	for _, q := range recommended {
		if _, ok := present[q]; !ok {
			v.addWarning("Order item %d: Recommended parameter '%s' is missing", position, q)
		}
	}
}

func augmentComplexRoad(draft *transportorder.Draft, s *assembler.Staging) {
	info := draft.TransportInfo

	s.SetFragment("weight_element", assembler.ValueElement("weight", textOr(info.String("weight_value"), "0"), ""))
	s.SetFragment("volume_element", assembler.ValueElement("volume", textOr(info.String("volume_value"), "0"), ""))
	if draft.OrderDetails.IsSet("incoterms") {
		s.SetFragment("incoterms_element", assembler.TextElement("incoterms", draft.OrderDetails.String("incoterms")))
	}
	if items := assembler.OrderItemsElement(draft.OrderItems); items != nil {
		s.SetFragment("order_items_element", items)
	}
	if params := assembler.ParametersElement(draft.ParametersIn(orderParameterQualifiers)); params != nil {
		s.SetFragment("order_parameters_element", params)
	}
	if params := assembler.ParametersElement(draft.ParametersIn(transportParameterQualifiers)); params != nil {
		s.SetFragment("transport_parameters_element", params)
	}
}

func complexRoadMetadata(draft *transportorder.Draft) map[string]any {
	return map[string]any{
		"has_order_items":  len(draft.OrderItems) > 0,
		"order_item_count": len(draft.OrderItems),
		"stop_count":       len(draft.Stops),
		"parameter_count":  len(draft.Parameters),
	}
}
