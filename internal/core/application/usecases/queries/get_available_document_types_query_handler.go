package queries

import "context"

// GetAvailableDocumentTypesQueryHandler reads the generator catalog; it does
// not touch the database.
type GetAvailableDocumentTypesQueryHandler struct {
	catalog DocumentTypeCatalog
}

// NewGetAvailableDocumentTypesQueryHandler creates the handler.
func NewGetAvailableDocumentTypesQueryHandler(catalog DocumentTypeCatalog) GetAvailableDocumentTypesQueryHandler {
	return GetAvailableDocumentTypesQueryHandler{catalog: catalog}
}

// Handle returns the types in declaration order.
func (h GetAvailableDocumentTypesQueryHandler) Handle(
	_ context.Context,
	query GetAvailableDocumentTypesQuery,
) (GetAvailableDocumentTypesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAvailableDocumentTypesQueryResponse{}, err
	}

	types := h.catalog.Types()
	response := GetAvailableDocumentTypesQueryResponse{
		Types:      make([]DocumentTypeSummary, 0, len(types)),
		TotalCount: len(types),
	}
	for _, t := range types {
		gen, err := h.catalog.Get(t)
		if err != nil {
			return GetAvailableDocumentTypesQueryResponse{}, err
		}
		response.Types = append(response.Types, DocumentTypeSummary{
			Type:        t.String(),
			Description: gen.Capabilities().Description,
		})
	}
	return response, nil
}
