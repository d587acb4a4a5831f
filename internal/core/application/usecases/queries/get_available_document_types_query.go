package queries

import (
	"errors"

	"transportorder/internal/pkg/guard"
)

// ErrGetAvailableDocumentTypesQueryIsNotConstructed is returned by Validate on
// a zero-value query.
var ErrGetAvailableDocumentTypesQueryIsNotConstructed = errors.New(
	"GetAvailableDocumentTypesQuery must be created via NewGetAvailableDocumentTypesQuery constructor",
)

// GetAvailableDocumentTypesQuery lists every document type with its
// description.
type GetAvailableDocumentTypesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDocumentTypesQuery takes no parameters and cannot fail.
func NewGetAvailableDocumentTypesQuery() GetAvailableDocumentTypesQuery {
	return GetAvailableDocumentTypesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDocumentTypesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDocumentTypesQueryIsNotConstructed)
}

// DocumentTypeSummary is one entry of the type listing.
type DocumentTypeSummary struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// GetAvailableDocumentTypesQueryResponse lists the supported types.
//
// Example JSON:
//
//	{
//	  "transport_types": [
//	    {"type": "simple_road", "description": "Basic road transport ..."}
//	  ],
//	  "total_count": 3
//	}
type GetAvailableDocumentTypesQueryResponse struct {
	Types      []DocumentTypeSummary `json:"transport_types"`
	TotalCount int                   `json:"total_count"`
}
