package collector_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"transportorder/internal/adapters/out/rulestore"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/domain/services/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCollector(t *testing.T) (*collector.Collector, *rulestore.Store) {
	t.Helper()
	store, err := rulestore.New(rulestore.Embedded())
	require.NoError(t, err)
	engine := rules.NewEngine(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return collector.New(store, engine), store
}

func exampleInput(t *testing.T, store *rulestore.Store, documentType kernel.DocumentType) transportorder.Input {
	t.Helper()
	input, err := store.ExampleInput(documentType)
	require.NoError(t, err)
	return input
}

func stop(id string, country string) map[string]any {
	return map[string]any{
		"id": id,
		"location": map[string]any{
			"company_name": "Acme",
			"city":         "Berlin",
			"country":      country,
		},
		"date_time_period": map[string]any{
			"start": "2025-09-25T08:00:00+02:00",
			"end":   "2025-09-25T10:00:00+02:00",
		},
	}
}

func TestCollect_SimpleRoadExample(t *testing.T) {
	c, store := newCollector(t)

	draft, err := c.Collect(kernel.SimpleRoad, exampleInput(t, store, kernel.SimpleRoad))
	require.NoError(t, err)

	assert.Equal(t, "1404338", draft.Number())
	assert.Equal(t, "1404338", draft.OrderNumber())
	assert.Equal(t, "N", draft.TransportInfo.String("status"))
	assert.Equal(t, "Wörth", draft.TransportInfo.String("scheduling_unit"))
	assert.Equal(t, "845", draft.TransportInfo.String("price_reference"))
	assert.Equal(t, []string{"1"}, draft.OrderDetails.Strings("loading_stop_ids"))
	assert.Equal(t, "23106", draft.OrderDetails.String("weight_value"))

	require.Len(t, draft.Stops, 2)
	assert.Equal(t, "2", draft.Stops[1].ID)
	assert.Equal(t, "1", draft.Stops[1].Index)
	assert.Equal(t, "ZF: 12:00", draft.Stops[1].Location.Comment())
	assert.Equal(t, "Europe/Berlin", draft.Stops[0].Period.Timezone())

	require.Len(t, draft.Parameters, 1)
	assert.Equal(t, "custom.important.info", draft.Parameters[0].Qualifier)
	assert.Empty(t, draft.OrderItems)
	assert.Nil(t, draft.Ocean)
}

func TestCollect_ComplexRoadItems(t *testing.T) {
	c, store := newCollector(t)

	draft, err := c.Collect(kernel.ComplexRoad, exampleInput(t, store, kernel.ComplexRoad))
	require.NoError(t, err)

	require.Len(t, draft.OrderItems, 1)
	item := draft.OrderItems[0]
	assert.Equal(t, "0205LB", item.MaterialNumber)
	require.Len(t, item.Quantities, 2)
	assert.Equal(t, transportorder.Quantity{Qualifier: "weight", Value: "45000", Unit: "LBR"}, item.Quantities[0])
	assert.Equal(t, "0", item.Quantities[1].Value)
	assert.Equal(t, "YES", item.Parameters[0].ShipperVisibility)
	assert.Equal(t, "DAP", draft.OrderDetails.String("incoterms"))
}

func TestCollect_OceanParameters(t *testing.T) {
	c, store := newCollector(t)

	input := exampleInput(t, store, kernel.OceanVisibility)
	delete(input, "ocean.booking.no")

	ocean, err := c.OceanParameters(kernel.OceanVisibility, input)
	require.NoError(t, err)
	assert.Equal(t, "MAEU", ocean[transportorder.ScacQualifier])
	assert.Contains(t, ocean, transportorder.BookingQualifier)
	assert.Empty(t, ocean[transportorder.BookingQualifier])

	info, err := c.TransportInfo(kernel.OceanVisibility, input)
	require.NoError(t, err)
	assert.Equal(t, "Ocean Visibility", info.String("scheduling_unit"))
	assert.Equal(t, "Ocean", info.String("carrier_creditor_number"))
	assert.Equal(t, "NTO", info.String("status"))
}

func TestCollect_OceanParameterErrors(t *testing.T) {
	c, store := newCollector(t)

	t.Run("missing scac", func(t *testing.T) {
		input := exampleInput(t, store, kernel.OceanVisibility)
		delete(input, "ocean.scac.no")

		_, err := c.OceanParameters(kernel.OceanVisibility, input)

		var fieldErr *collector.FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.ErrorIs(t, err, collector.ErrMissingRequiredField)
		assert.Equal(t, "ocean.scac.no", fieldErr.Field)
	})

	t.Run("malformed scac", func(t *testing.T) {
		input := exampleInput(t, store, kernel.OceanVisibility)
		input["ocean.scac.no"] = "maeu"

		_, err := c.OceanParameters(kernel.OceanVisibility, input)
		assert.ErrorIs(t, err, collector.ErrInvalidParameter)
	})

	t.Run("road types have none", func(t *testing.T) {
		ocean, err := c.OceanParameters(kernel.SimpleRoad, transportorder.Input{})
		require.NoError(t, err)
		assert.Nil(t, ocean)
	})
}

func TestTransportInfo(t *testing.T) {
	c, _ := newCollector(t)

	t.Run("status defaults", func(t *testing.T) {
		info, err := c.TransportInfo(kernel.SimpleRoad, transportorder.Input{"number": "1", "scheduling_unit": "X"})
		require.NoError(t, err)
		assert.Equal(t, "N", info.String("status"))
		assert.False(t, info.Has("vehicle"))
	})

	t.Run("carrier mapping forces status", func(t *testing.T) {
		info, err := c.TransportInfo(kernel.SimpleRoad,
			transportorder.Input{"number": "1", "scheduling_unit": "X", "carrier_id": "0000203512"})
		require.NoError(t, err)
		assert.Equal(t, "0000203512", info.String("carrier_creditor_number"))
		assert.Equal(t, "NTO", info.String("status"))
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := c.TransportInfo(kernel.SimpleRoad, transportorder.Input{"number": "1"})

		assert.ErrorIs(t, err, collector.ErrMissingRequiredField)
		assert.EqualError(t, err, "Required field 'scheduling_unit' not provided for simple_road")
	})
}

func TestOrderDetails_MissingRequired(t *testing.T) {
	c, _ := newCollector(t)

	_, err := c.OrderDetails(kernel.ComplexRoad, transportorder.Input{"loading_stop_ids": []any{"A"}})

	assert.ErrorIs(t, err, collector.ErrMissingRequiredField)
	assert.EqualError(t, err, "Required order field 'unloading_stop_ids' not provided")
}

func TestStops(t *testing.T) {
	c, _ := newCollector(t)

	t.Run("defaults id and index", func(t *testing.T) {
		stops, err := c.Stops(transportorder.Input{"stops": []any{stop("", "DE"), stop("B", "PL")}})
		require.NoError(t, err)
		require.Len(t, stops, 2)
		assert.Equal(t, "stop_1", stops[0].ID)
		assert.Equal(t, "0", stops[0].Index)
		assert.Equal(t, "B", stops[1].ID)
		assert.Equal(t, "1", stops[1].Index)
	})

	t.Run("invalid country", func(t *testing.T) {
		_, err := c.Stops(transportorder.Input{"stops": []any{stop("A", "de")}})
		assert.ErrorIs(t, err, collector.ErrInvalidLocation)
	})

	t.Run("invalid date", func(t *testing.T) {
		s := stop("A", "DE")
		s["date_time_period"] = map[string]any{"start": "2025-09-25", "end": "2025-09-25T10:00:00Z"}

		_, err := c.Stops(transportorder.Input{"stops": []any{s}})

		var fieldErr *collector.FieldError
		require.True(t, errors.As(err, &fieldErr))
		assert.ErrorIs(t, err, collector.ErrInvalidDateTime)
		assert.Equal(t, "stops[0].date_time_period", fieldErr.Field)
	})
}

func TestOrderItems_MissingField(t *testing.T) {
	c, _ := newCollector(t)

	_, err := c.OrderItems(kernel.ComplexRoad, transportorder.Input{
		"order_items": []any{map[string]any{"number": "10", "short_description": "Paper"}},
	})

	var fieldErr *collector.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "order_items[0].material_number", fieldErr.Field)
}

func TestParameters_SkipsUnqualified(t *testing.T) {
	c, _ := newCollector(t)

	params := c.Parameters(transportorder.Input{"parameters": []any{
		map[string]any{"value": "orphan"},
		map[string]any{"qualifier": "transportMode", "value": "RO", "export_to_carrier": true},
	}})

	require.Len(t, params, 1)
	assert.Equal(t, transportorder.Parameter{Qualifier: "transportMode", Value: "RO", ExportToCarrier: "true"}, params[0])
}

func TestMissingFieldPrompts(t *testing.T) {
	c, _ := newCollector(t)

	prompts := c.MissingFieldPrompts(kernel.OceanVisibility, transportorder.Input{"number": "1", "ocean.bl.no": "B"})

	assert.Equal(t, []string{
		"Please provide Standard Carrier Alpha Code of the shipping line (ocean.scac.no) - Example: MAEU",
		"Please provide Container number (ocean.container.no) - Example: MMAU1291440",
	}, prompts)

	prompts = c.MissingFieldPrompts(kernel.SimpleRoad, transportorder.Input{})
	assert.Contains(t, prompts, "Please provide Transport order number (number) - Example: 1404338")
	assert.Contains(t, prompts, `Please provide Ids of the stops where goods are loaded (loading_stop_ids) - Example: ["1"]`)
}

func TestSuggestOptionalFields(t *testing.T) {
	c, _ := newCollector(t)

	assert.Contains(t, c.SuggestOptionalFields(kernel.SimpleRoad), "Optional: Vehicle type (vehicle) - Example: MEGA:Stehend")
	assert.Empty(t, c.SuggestOptionalFields(kernel.OceanVisibility))
}

func TestMissingFieldPrompts_SkipsDefaulted(t *testing.T) {
	c, _ := newCollector(t)

	prompts := c.MissingFieldPrompts(kernel.SimpleRoad, transportorder.Input{
		"number": "1", "scheduling_unit": "X", "loading_stop_ids": []any{"1"}, "unloading_stop_ids": []any{"2"},
	})

	assert.Empty(t, prompts)
}
