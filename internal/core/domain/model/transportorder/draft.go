package transportorder

import (
	"strings"

	"transportorder/internal/core/domain/model/kernel"
)

// Stop is a normalized pickup or delivery point. Index is kept as text so a
// foreign value passes through unchanged.
type Stop struct {
	ID       string
	Index    string
	Location kernel.Location
	Period   kernel.DateTimePeriod
}

// Parameter is a qualified custom attribute. Empty visibility and export
// flags are omitted from the document.
type Parameter struct {
	Qualifier         string
	Value             string
	ShipperVisibility string
	ExportToCarrier   string
}

// Quantity is one measured amount of an order item, e.g. weight in KGM.
type Quantity struct {
	Qualifier string
	Value     string
	Unit      string
}

// OrderItem is one line of a complex_road order.
type OrderItem struct {
	Number           string
	ShortDescription string
	MaterialNumber   string
	Quantities       []Quantity
	Parameters       []Parameter
}

// Draft is the complete, normalized parameter set a document is rendered
// from.
type Draft struct {
	DocumentType  kernel.DocumentType
	TransportInfo Fields
	OrderDetails  Fields
	Stops         []Stop
	Parameters    []Parameter
	OrderItems    []OrderItem
	// Ocean holds ocean qualifiers (ocean.scac.no, ...) by name.
	Ocean map[string]string
}

// Number is the transport number.
func (d *Draft) Number() string {
	return d.TransportInfo.String("number")
}

// OrderNumber falls back to the transport number.
func (d *Draft) OrderNumber() string {
	if n := d.OrderDetails.String("order_number"); n != "" {
		return n
	}
	return d.Number()
}

// ParametersIn returns the parameters whose qualifier is in allowed, in
// input order.
func (d *Draft) ParametersIn(allowed []string) []Parameter {
	set := make(map[string]struct{}, len(allowed))
	for _, q := range allowed {
		set[q] = struct{}{}
	}
	var out []Parameter
	for _, p := range d.Parameters {
		if _, ok := set[p.Qualifier]; ok {
			out = append(out, p)
		}
	}
	return out
}

// IsOceanQualifier reports whether q belongs to the ocean visibility
// vocabulary.
func IsOceanQualifier(q string) bool {
	return strings.HasPrefix(q, "ocean.") || q == VisibilityFlagQualifier
}

// Qualifiers with a fixed meaning in the exchange vocabulary.
const (
	// ScacQualifier carries the carrier SCAC code.
	ScacQualifier = "ocean.scac.no"
	// BillOfLadingQualifier carries the bill of lading number.
	BillOfLadingQualifier = "ocean.bl.no"
	// ContainerQualifier carries the container number.
	ContainerQualifier = "ocean.container.no"
	// BookingQualifier carries the booking number.
	BookingQualifier = "ocean.booking.no"
	// VisibilityFlagQualifier switches on ocean visibility tracking. Its
	// value is "true".
	VisibilityFlagQualifier = "visibility.ocean.product"
	// PreassignedCarrierParam names the creditor number of a carrier that is
	// fixed in advance.
	PreassignedCarrierParam = "custom.preassignedCarrierCreditorNumber"
)

// OceanOnlyQualifiers may not appear on road documents.
func OceanOnlyQualifiers() []string {
	return []string{ScacQualifier, BillOfLadingQualifier, ContainerQualifier, VisibilityFlagQualifier}
}
