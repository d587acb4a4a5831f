package queries

import "context"

// GetDocumentTypeInfoQueryHandler combines the generator catalog with the rule
// engine's view of a type.
type GetDocumentTypeInfoQueryHandler struct {
	catalog DocumentTypeCatalog
	rules   RuleSummaries
}

// NewGetDocumentTypeInfoQueryHandler creates the handler.
func NewGetDocumentTypeInfoQueryHandler(catalog DocumentTypeCatalog, rules RuleSummaries) GetDocumentTypeInfoQueryHandler {
	return GetDocumentTypeInfoQueryHandler{catalog: catalog, rules: rules}
}

// Handle fails only when the rule data cannot be read.
func (h GetDocumentTypeInfoQueryHandler) Handle(
	_ context.Context,
	query GetDocumentTypeInfoQuery,
) (GetDocumentTypeInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDocumentTypeInfoQueryResponse{}, err
	}

	gen, err := h.catalog.Get(query.DocumentType())
	if err != nil {
		return GetDocumentTypeInfoQueryResponse{}, err
	}
	example, err := gen.ExampleInput()
	if err != nil {
		return GetDocumentTypeInfoQueryResponse{}, err
	}

	return GetDocumentTypeInfoQueryResponse{
		Capabilities:  gen.Capabilities(),
		BusinessRules: h.rules.Summary(query.DocumentType()),
		ExampleInput:  example,
	}, nil
}
