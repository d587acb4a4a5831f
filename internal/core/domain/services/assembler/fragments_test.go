package assembler

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
)

func render(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el)
	out, err := doc.WriteToString()
	require.NoError(t, err)
	return out
}

func TestStopElement(t *testing.T) {
	location, err := kernel.NewLocation(kernel.Address{CompanyName: "Acme", City: "Berlin", Country: "DE", Zip: "10115"})
	require.NoError(t, err)
	period, err := kernel.NewDateTimePeriod("2025-09-25T08:00:00Z", "2025-09-25T10:00:00Z", "")
	require.NoError(t, err)

	out := render(t, StopElement(transportorder.Stop{ID: "stop_1", Index: "0", Location: location, Period: period}))

	assert.Equal(t,
		"<stop><id>stop_1</id><index>0</index>"+
			"<location><company_name>Acme</company_name><zip>10115</zip><city>Berlin</city><country>DE</country></location>"+
			"<date_time_period><start>2025-09-25T08:00:00Z</start><end>2025-09-25T10:00:00Z</end></date_time_period></stop>",
		out)
}

func TestParameterElement(t *testing.T) {
	out := render(t, ParameterElement(transportorder.Parameter{
		Qualifier:         "material",
		Value:             "M-1",
		ShipperVisibility: "true",
	}))
	assert.Equal(t, `<parameter qualifier="material" shipperVisibility="true"><value>M-1</value></parameter>`, out)

	out = render(t, ParameterElement(transportorder.Parameter{Qualifier: "flag"}))
	assert.Equal(t, `<parameter qualifier="flag"/>`, out)

	assert.Nil(t, ParametersElement(nil))
}

func TestValueElement(t *testing.T) {
	assert.Equal(t, `<weight unit="kg"><value>12.5</value></weight>`, render(t, ValueElement("weight", "12.5", "kg")))
	assert.Equal(t, `<loading_meter unit="m"/>`, render(t, ValueElement("loading_meter", "", "m")))
	assert.Equal(t, `<volume><value>0</value></volume>`, render(t, ValueElement("volume", "0", "")))
}

func TestOrderItemsElement(t *testing.T) {
	assert.Nil(t, OrderItemsElement(nil))

	out := render(t, OrderItemsElement([]transportorder.OrderItem{{
		Number:           "10",
		ShortDescription: "Paper",
		MaterialNumber:   "M1",
		Quantities:       []transportorder.Quantity{{Qualifier: "weight", Value: "100", Unit: "kg"}},
		Parameters:       []transportorder.Parameter{{Qualifier: "plantCode", Value: "P1"}},
	}}))

	assert.Equal(t,
		"<order_items><order_item><number>10</number><short_description>Paper</short_description>"+
			"<material_number>M1</material_number>"+
			"<quantities><quantity><qualifier>weight</qualifier><value>100</value><unit>kg</unit></quantity></quantities>"+
			`<parameters><parameter qualifier="plantCode"><value>P1</value></parameter></parameters>`+
			"</order_item></order_items>",
		out)
}

func TestStopIDElements(t *testing.T) {
	list := StopIDElements("loading_stop_id", []string{"1", "2"})
	require.Len(t, list, 2)
	assert.Equal(t, "<loading_stop_id>2</loading_stop_id>", render(t, list[1]))
}
