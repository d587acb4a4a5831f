package queries

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/pkg/guard"
)

// ErrGetParameterRequirementsQueryIsNotConstructed is returned by Validate on
// a zero-value query.
var ErrGetParameterRequirementsQueryIsNotConstructed = errors.New(
	"GetParameterRequirementsQuery must be created via NewGetParameterRequirementsQuery constructor",
)

// GetParameterRequirementsQuery lists the field definitions of a type.
type GetParameterRequirementsQuery struct { //nolint:recvcheck //using for validation
	documentType kernel.DocumentType

	guard guard.ConstructorGuard
}

// NewGetParameterRequirementsQuery rejects unknown document types.
func NewGetParameterRequirementsQuery(documentType kernel.DocumentType) (GetParameterRequirementsQuery, error) {
	if err := documentType.Validate(); err != nil {
		return GetParameterRequirementsQuery{}, err
	}
	return GetParameterRequirementsQuery{documentType: documentType, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetParameterRequirementsQuery) Validate() error {
	return q.guard.Validate(ErrGetParameterRequirementsQueryIsNotConstructed)
}

// DocumentType returns the type whose fields are listed.
func (q GetParameterRequirementsQuery) DocumentType() kernel.DocumentType {
	return q.documentType
}

// GetParameterRequirementsQueryResponse carries item parameters only for
// document types with order items.
type GetParameterRequirementsQueryResponse struct {
	DocumentType string            `json:"transport_type"`
	Transport    ruleset.FieldSet  `json:"transport_parameters"`
	Order        ruleset.FieldSet  `json:"order_parameters"`
	Fixed        ruleset.FieldSet  `json:"fixed_parameters"`
	Item         *ruleset.FieldSet `json:"item_parameters,omitempty"`
}
