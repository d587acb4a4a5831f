package generator

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/assembler"
)

const (
	simpleRoadMinStops = 2
	simpleRoadMaxStops = 10
)

var simpleRoadCapabilities = Capabilities{
	DocumentType:    kernel.SimpleRoad,
	TransportType:   kernel.SimpleRoad.String(),
	Description:     "Simple/Standard Road Freight - Basic transport orders with stops, optional pricing and vehicle info",
	RequiredFields:  []string{"number", "status", "scheduling_unit"},
	SupportsPricing: true,
	SupportsVehicle: true,
}

func checkSimpleRoad(input transportorder.Input, v *InputValidation) {
	stops := len(input.Objects("stops"))
	switch {
	case stops < simpleRoadMinStops:
		v.addError("Simple road freight requires at least 2 stops (loading and unloading)")
	case stops > simpleRoadMaxStops:
		v.addWarning("More than 10 stops is unusual for simple road freight")
	}

	forbidOceanQualifiers(input, v, "simple road freight")

	if input.Has("price_reference") {
		if price, ok := input.Number("price_reference"); !ok || price <= 0 {
			v.addError("Price reference must be positive")
		}
	}
	if input.Has("weight_value") {
		if weight, ok := input.Number("weight_value"); !ok || weight < 0 {
			v.addError("Weight value cannot be negative")
		}
	}
}

func augmentSimpleRoad(draft *transportorder.Draft, s *assembler.Staging) {
	info, order := draft.TransportInfo, draft.OrderDetails

	if info.IsSet("vehicle") {
		s.SetFragment("vehicle_element", assembler.TextElement("vehicle", info.String("vehicle")))
	}
	if info.IsSet("price_reference") {
		s.SetFragment("prices_element", assembler.PricesElement(
			info.String("price_reference"),
			textOr(info.String("price_currency"), "EUR"),
			textOr(info.String("price_mode"), "DEFAULT"),
		))
	}
	if order.IsSet("weight_value") {
		s.SetFragment("weight_element", assembler.ValueElement("weight", order.String("weight_value"), "kg"))
	}
	s.SetFragment("loading_meter_element", assembler.ValueElement("loading_meter", "", "m"))
	if order.IsSet("distance_value") {
		s.SetFragment("distance_element", assembler.ValueElement("distance", order.String("distance_value"), "km"))
	}
	if order.IsSet("comment") {
		s.SetFragment("comment_element", assembler.TextElement("comment", order.String("comment")))
	}
	if params := assembler.ParametersElement(draft.Parameters); params != nil {
		s.SetFragment("parameters_element", params)
	}
}

func simpleRoadMetadata(draft *transportorder.Draft) map[string]any {
	return map[string]any{
		"has_pricing":     draft.TransportInfo.IsSet("price_reference"),
		"has_vehicle":     draft.TransportInfo.IsSet("vehicle"),
		"stop_count":      len(draft.Stops),
		"parameter_count": len(draft.Parameters),
	}
}
