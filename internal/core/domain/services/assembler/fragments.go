package assembler

import (
	"github.com/beevik/etree"

	"transportorder/internal/core/domain/model/transportorder"
)

// TextElement builds <tag>text</tag>.
func TextElement(tag, text string) *etree.Element {
	el := etree.NewElement(tag)
	el.SetText(text)
	return el
}

// ValueElement builds a measured value such as <weight unit="kg"><value>1</value></weight>.
// An empty unit is omitted; an empty value leaves the element empty.
func ValueElement(tag, value, unit string) *etree.Element {
	el := etree.NewElement(tag)
	if unit != "" {
		el.CreateAttr("unit", unit)
	}
	if value != "" {
		el.AddChild(TextElement("value", value))
	}
	return el
}

// StopIDElements builds one <tag> per id, for loading_stop_ids and
// unloading_stop_ids.
func StopIDElements(tag string, ids []string) []*etree.Element {
	list := make([]*etree.Element, 0, len(ids))
	for _, id := range ids {
		list = append(list, TextElement(tag, id))
	}
	return list
}

// StopElement renders a stop. Optional location parts and the timezone are
// only written when present.
func StopElement(stop transportorder.Stop) *etree.Element {
	el := etree.NewElement("stop")
	el.AddChild(TextElement("id", stop.ID))
	el.AddChild(TextElement("index", stop.Index))

	loc := stop.Location
	location := el.CreateElement("location")
	location.AddChild(TextElement("company_name", loc.CompanyName()))
	addOptional(location, "street", loc.Street())
	addOptional(location, "zip", loc.Zip())
	location.AddChild(TextElement("city", loc.City()))
	addOptional(location, "state", loc.State())
	location.AddChild(TextElement("country", loc.Country()))
	addOptional(location, "comment", loc.Comment())

	period := el.CreateElement("date_time_period")
	period.AddChild(TextElement("start", stop.Period.Start()))
	period.AddChild(TextElement("end", stop.Period.End()))
	addOptional(period, "timezone", stop.Period.Timezone())

	return el
}

// StopElements renders stops in order.
func StopElements(stops []transportorder.Stop) []*etree.Element {
	list := make([]*etree.Element, 0, len(stops))
	for _, s := range stops {
		list = append(list, StopElement(s))
	}
	return list
}

// ParameterElement builds <parameter qualifier="..."> with optional flags and value.
func ParameterElement(p transportorder.Parameter) *etree.Element {
	el := etree.NewElement("parameter")
	el.CreateAttr("qualifier", p.Qualifier)
	if p.ShipperVisibility != "" {
		el.CreateAttr("shipperVisibility", p.ShipperVisibility)
	}
	if p.ExportToCarrier != "" {
		el.CreateAttr("exportToCarrier", p.ExportToCarrier)
	}
	addOptional(el, "value", p.Value)
	return el
}

// ParametersElement wraps params in <parameters>. It returns nil for an
// empty list so nothing is rendered.
func ParametersElement(params []transportorder.Parameter) *etree.Element {
	if len(params) == 0 {
		return nil
	}
	el := etree.NewElement("parameters")
	for _, p := range params {
		el.AddChild(ParameterElement(p))
	}
	return el
}

// PricesElement builds the pricing block.
func PricesElement(reference, currency, mode string) *etree.Element {
	el := etree.NewElement("prices")
	el.AddChild(TextElement("reference", reference))
	el.AddChild(TextElement("currency", currency))
	el.AddChild(TextElement("mode", mode))
	return el
}

func quantityElement(q transportorder.Quantity) *etree.Element {
	el := etree.NewElement("quantity")
	el.AddChild(TextElement("qualifier", q.Qualifier))
	el.AddChild(TextElement("value", q.Value))
	addOptional(el, "unit", q.Unit)
	return el
}

// OrderItemElement renders one order item.
func OrderItemElement(item transportorder.OrderItem) *etree.Element {
	el := etree.NewElement("order_item")
	el.AddChild(TextElement("number", item.Number))
	el.AddChild(TextElement("short_description", item.ShortDescription))
	el.AddChild(TextElement("material_number", item.MaterialNumber))

	if len(item.Quantities) > 0 {
		quantities := el.CreateElement("quantities")
		for _, q := range item.Quantities {
			quantities.AddChild(quantityElement(q))
		}
	}
	if params := ParametersElement(item.Parameters); params != nil {
		el.AddChild(params)
	}
	return el
}

// OrderItemsElement wraps items in <order_items>, or returns nil when there
// are none.
func OrderItemsElement(items []transportorder.OrderItem) *etree.Element {
	if len(items) == 0 {
		return nil
	}
	el := etree.NewElement("order_items")
	for _, item := range items {
		el.AddChild(OrderItemElement(item))
	}
	return el
}

func addOptional(parent *etree.Element, tag, text string) {
	if text != "" {
		parent.AddChild(TextElement(tag, text))
	}
}
