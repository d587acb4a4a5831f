package generator

import (
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/assembler"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/ports"
)

const (
	departureStopID = "Departure"
	arrivalStopID   = "Arrival"
)

var oceanVisibilityCapabilities = Capabilities{
	DocumentType:   kernel.OceanVisibility,
	TransportType:  kernel.OceanVisibility.String(),
	Description:    "Ocean Visibility Transport - Maritime shipment tracking with mandatory ocean-specific parameters",
	RequiredFields: []string{"number"},
}

var requiredOceanQualifiers = []string{
	transportorder.ScacQualifier,
	transportorder.BillOfLadingQualifier,
	transportorder.ContainerQualifier,
}

func checkOceanVisibility(input transportorder.Input, v *InputValidation) {
	stops := len(input.Objects("stops"))
	switch {
	case stops == 0 && !hasRouteLocations(input):
		v.addError("Ocean visibility requires either 2 stops OR departure_location and arrival_location data")
	case stops > 0 && stops != 2:
		v.addError("Ocean visibility requires exactly 2 stops (Departure and Arrival)")
	}

	for _, q := range requiredOceanQualifiers {
		if !input.Has(q) {
			v.addError("Required ocean parameter '%s' is missing", q)
		}
	}

	if scac := input.Text(transportorder.ScacQualifier); scac != "" {
		switch {
		case len(scac) != 4:
			v.addError("SCAC code must be exactly 4 characters")
		case !collector.IsScac(scac):
			v.addError("SCAC code must contain only uppercase letters and numbers")
		}
	}

	for _, section := range []string{"vehicle", "prices", "order_items"} {
		if input.Has(section) {
			v.addWarning("'%s' is not used in ocean visibility transport orders", section)
		}
	}
	for _, p := range input.Objects("parameters") {
		if q := p.Text("qualifier"); !transportorder.IsOceanQualifier(q) {
			v.addWarning("Parameter '%s' is not typically used in ocean visibility orders", q)
		}
	}
}

func hasRouteLocations(input transportorder.Input) bool {
	return input.Has("departure_location") && input.Has("arrival_location")
}

// prepareOceanVisibility forces the fixed transport values, fixes the stop
// references to Departure and Arrival and builds those two stops from the
// route locations when the input does not carry exactly two stops.
func prepareOceanVisibility(store ports.RuleStore) func(transportorder.Input) transportorder.Input {
	return func(input transportorder.Input) transportorder.Input {
		if defs, err := store.ParameterDefinitions(ruleset.FixedParameters); err == nil {
			for name, value := range defs.For(kernel.OceanVisibility.String()).FixedValues {
				input[name] = value
			}
		}
		if !input.Has("order_number") {
			input["order_number"] = input.Text("number")
		}

		if len(input.Objects("stops")) != 2 && hasRouteLocations(input) {
			input["stops"] = []any{
				map[string]any{
					"id":               departureStopID,
					"index":            0,
					"location":         map[string]any(input.Object("departure_location")),
					"date_time_period": map[string]any(input.Object("departure_date")),
				},
				map[string]any{
					"id":               arrivalStopID,
					"index":            1,
					"location":         map[string]any(input.Object("arrival_location")),
					"date_time_period": map[string]any(input.Object("arrival_date")),
				},
			}
		}

		input["loading_stop_ids"] = []any{departureStopID}
		input["unloading_stop_ids"] = []any{arrivalStopID}
		return input
	}
}

func augmentOceanVisibility(draft *transportorder.Draft, s *assembler.Staging) {
	if len(draft.Stops) >= 2 {
		stageRouteStop(s, "departure", draft.Stops[0])
		stageRouteStop(s, "arrival", draft.Stops[1])
	}

	s.Set("scac_code", draft.Ocean[transportorder.ScacQualifier])
	s.Set("bl_number", draft.Ocean[transportorder.BillOfLadingQualifier])
	s.Set("container_number", draft.Ocean[transportorder.ContainerQualifier])
	s.Set("booking_number", draft.Ocean[transportorder.BookingQualifier])
}

func stageRouteStop(s *assembler.Staging, prefix string, stop transportorder.Stop) {
	loc := stop.Location
	s.Set(prefix+"_company_name", loc.CompanyName())
	s.Set(prefix+"_street", loc.Street())
	s.Set(prefix+"_zip", loc.Zip())
	s.Set(prefix+"_city", loc.City())
	s.Set(prefix+"_country", loc.Country())
	s.Set(prefix+"_start_date", stop.Period.Start())
	s.Set(prefix+"_end_date", stop.Period.End())
}

func oceanVisibilityMetadata(draft *transportorder.Draft) map[string]any {
	return map[string]any{
		"scac_code":        draft.Ocean[transportorder.ScacQualifier],
		"bl_number":        draft.Ocean[transportorder.BillOfLadingQualifier],
		"container_number": draft.Ocean[transportorder.ContainerQualifier],
		"booking_number":   draft.Ocean[transportorder.BookingQualifier],
		"stop_count":       len(draft.Stops),
	}
}
