package queries

import (
	"context"

	"transportorder/internal/core/ports"
)

// GetDocumentExampleQueryHandler serves examples from the rule store.
type GetDocumentExampleQueryHandler struct {
	store ports.RuleStore
}

// NewGetDocumentExampleQueryHandler creates the handler.
func NewGetDocumentExampleQueryHandler(store ports.RuleStore) GetDocumentExampleQueryHandler {
	return GetDocumentExampleQueryHandler{store: store}
}

// Handle returns errs.ErrObjectNotFound when the rule data has no example for
// the type.
func (h GetDocumentExampleQueryHandler) Handle(
	_ context.Context,
	query GetDocumentExampleQuery,
) (GetDocumentExampleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDocumentExampleQueryResponse{}, err
	}

	input, err := h.store.ExampleInput(query.DocumentType())
	if err != nil {
		return GetDocumentExampleQueryResponse{}, err
	}
	xml, err := h.store.Example(query.DocumentType())
	if err != nil {
		return GetDocumentExampleQueryResponse{}, err
	}

	return GetDocumentExampleQueryResponse{
		DocumentType: query.DocumentType().String(),
		Input:        input,
		XML:          xml,
	}, nil
}
