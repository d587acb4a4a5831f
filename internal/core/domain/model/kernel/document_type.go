package kernel

import (
	"fmt"

	"transportorder/internal/pkg/errs"
)

// DocumentType is the closed set of transport-order variants the service
// can generate and validate.
type DocumentType int

const (
	// UnknownDocumentType is the zero value and never valid.
	UnknownDocumentType DocumentType = iota

	// SimpleRoad is a road transport with carrier and stops only.
	SimpleRoad

	// ComplexRoad adds order items with quantities and material data.
	ComplexRoad

	// OceanVisibility tracks a maritime shipment by SCAC, bill of lading,
	// container and booking numbers.
	OceanVisibility
)

func getDocumentTypeNames() map[DocumentType]string {
	//nolint:exhaustive // UnknownDocumentType has no wire name
	return map[DocumentType]string{
		SimpleRoad:      "simple_road",
		ComplexRoad:     "complex_road",
		OceanVisibility: "ocean_visibility",
	}
}

// AllDocumentTypes returns the valid types in declaration order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{SimpleRoad, ComplexRoad, OceanVisibility}
}

// ParseDocumentType maps a wire name such as "ocean_visibility" to its type.
// Names are case sensitive.
//
// Example:
//
//	t, err := kernel.ParseDocumentType("air_freight")
//	// err: unsupported document type "air_freight", expected one of [...]
func ParseDocumentType(name string) (DocumentType, error) {
	for t, n := range getDocumentTypeNames() {
		if n == name {
			return t, nil
		}
	}
	return UnknownDocumentType, errs.NewValueIsInvalidErrorWithCause(
		"document type", fmt.Errorf("unsupported document type %q, expected one of %v", name, AllDocumentTypes()))
}

// Validate rejects UnknownDocumentType and out-of-range values.
func (t DocumentType) Validate() error {
	if _, ok := getDocumentTypeNames()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("document type", fmt.Errorf("%d is not a valid document type", t))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
func (t DocumentType) String() string {
	if name, ok := getDocumentTypeNames()[t]; ok {
		return name
	}
	return "unknown"
}
