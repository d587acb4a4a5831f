package queries

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/domain/services/rules"
	"transportorder/internal/pkg/guard"
)

// ErrGetDocumentTypeInfoQueryIsNotConstructed is returned by Validate on a
// zero-value query.
var ErrGetDocumentTypeInfoQueryIsNotConstructed = errors.New(
	"GetDocumentTypeInfoQuery must be created via NewGetDocumentTypeInfoQuery constructor",
)

// GetDocumentTypeInfoQuery describes one document type: its capability row,
// the business rules applied during generation and an example input.
type GetDocumentTypeInfoQuery struct { //nolint:recvcheck //using for validation
	documentType kernel.DocumentType

	guard guard.ConstructorGuard
}

// NewGetDocumentTypeInfoQuery rejects unknown document types.
func NewGetDocumentTypeInfoQuery(documentType kernel.DocumentType) (GetDocumentTypeInfoQuery, error) {
	if err := documentType.Validate(); err != nil {
		return GetDocumentTypeInfoQuery{}, err
	}
	return GetDocumentTypeInfoQuery{documentType: documentType, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDocumentTypeInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentTypeInfoQueryIsNotConstructed)
}

// DocumentType returns the type to describe.
func (q GetDocumentTypeInfoQuery) DocumentType() kernel.DocumentType {
	return q.documentType
}

// GetDocumentTypeInfoQueryResponse flattens the capability row and adds the
// rules in the order the engine applies them.
type GetDocumentTypeInfoQueryResponse struct {
	generator.Capabilities
	BusinessRules []rules.Summary      `json:"business_rules"`
	ExampleInput  transportorder.Input `json:"example_input"`
}
