package queries

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/pkg/guard"
)

// ErrGetDocumentExampleQueryIsNotConstructed is returned by Validate on a
// zero-value query.
var ErrGetDocumentExampleQueryIsNotConstructed = errors.New(
	"GetDocumentExampleQuery must be created via NewGetDocumentExampleQuery constructor",
)

// GetDocumentExampleQuery returns the example input of a type together
// with the complete document it describes.
type GetDocumentExampleQuery struct { //nolint:recvcheck //using for validation
	documentType kernel.DocumentType

	guard guard.ConstructorGuard
}

// NewGetDocumentExampleQuery rejects unknown document types.
func NewGetDocumentExampleQuery(documentType kernel.DocumentType) (GetDocumentExampleQuery, error) {
	if err := documentType.Validate(); err != nil {
		return GetDocumentExampleQuery{}, err
	}
	return GetDocumentExampleQuery{documentType: documentType, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDocumentExampleQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentExampleQueryIsNotConstructed)
}

// DocumentType returns the type whose example is requested.
func (q GetDocumentExampleQuery) DocumentType() kernel.DocumentType {
	return q.documentType
}

// GetDocumentExampleQueryResponse pairs the example input with the document
// generated from it. Input is a fresh copy.
type GetDocumentExampleQueryResponse struct {
	DocumentType string               `json:"transport_type"`
	Input        transportorder.Input `json:"example_input"`
	XML          string               `json:"example_xml"`
}
