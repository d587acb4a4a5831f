package transportorder_test

import (
	"encoding/json"
	"testing"

	"transportorder/internal/core/domain/model/transportorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) transportorder.Input {
	t.Helper()
	var in transportorder.Input
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return in
}

func TestInput_Accessors(t *testing.T) {
	in := decode(t, `{
		"number": "1404338",
		"price_reference": 845.5,
		"weight_value": 23106,
		"loading_stop_ids": ["1", 2],
		"stops": [{"id": "1"}, "garbage"],
		"departure_location": {"city": "Ca Mau City"},
		"empty": null
	}`)

	assert.Equal(t, "1404338", in.Text("number"))
	assert.Equal(t, "845.5", in.Text("price_reference"))
	assert.Equal(t, "23106", in.Text("weight_value"))

	price, ok := in.Number("price_reference")
	require.True(t, ok)
	assert.InDelta(t, 845.5, price, 0.0001)

	_, ok = in.Number("number")
	assert.True(t, ok, "numeric strings are numbers")

	assert.Equal(t, []string{"1", "2"}, in.Strings("loading_stop_ids"))

	stops := in.Objects("stops")
	require.Len(t, stops, 2)
	assert.Equal(t, "1", stops[0].Text("id"))
	assert.Empty(t, stops[1])

	assert.Equal(t, "Ca Mau City", in.Object("departure_location").Text("city"))

	assert.True(t, in.Has("empty"))
	_, ok = in.String("empty")
	assert.False(t, ok)
}

func TestText_NormalizesUnicode(t *testing.T) {
	decomposed := "Wo\u0308rth"
	assert.Equal(t, "W\u00f6rth", transportorder.Text(decomposed))
}

func TestInput_CloneIsShallow(t *testing.T) {
	in := transportorder.Input{"number": "1"}
	clone := in.Clone()
	clone["number"] = "2"

	assert.Equal(t, "1", in.Text("number"))
}

func TestFields(t *testing.T) {
	f := transportorder.NewFields()
	f.Set("number", 42)
	f.Set("loading_stop_ids", []any{"A", "B"})
	f.Set("comment", "")

	assert.Equal(t, "42", f.String("number"))
	assert.Equal(t, []string{"A", "B"}, f.Strings("loading_stop_ids"))
	assert.True(t, f.Has("comment"))
	assert.False(t, f.IsSet("comment"))
	assert.Empty(t, f.String("loading_stop_ids"))
}

func TestDraft_ParametersIn(t *testing.T) {
	d := transportorder.Draft{
		TransportInfo: transportorder.Fields{"number": "0081310198"},
		OrderDetails:  transportorder.Fields{},
		Parameters: []transportorder.Parameter{
			{Qualifier: "transportMode", Value: "RO"},
			{Qualifier: "transport.salesorderNumber", Value: "0001076772"},
			{Qualifier: "unknown"},
		},
	}

	got := d.ParametersIn([]string{"transport.salesorderNumber", "transportMode"})

	require.Len(t, got, 2)
	assert.Equal(t, "transportMode", got[0].Qualifier)
	assert.Equal(t, "0081310198", d.OrderNumber())
}

func TestIsOceanQualifier(t *testing.T) {
	assert.True(t, transportorder.IsOceanQualifier("ocean.scac.no"))
	assert.True(t, transportorder.IsOceanQualifier("visibility.ocean.product"))
	assert.False(t, transportorder.IsOceanQualifier("transportMode"))
}
