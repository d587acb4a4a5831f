package queries

import (
	"context"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/ports"
)

// GetParameterRequirementsQueryHandler reads parameter definitions from the
// rule store.
type GetParameterRequirementsQueryHandler struct {
	store ports.RuleStore
}

// NewGetParameterRequirementsQueryHandler creates the handler.
func NewGetParameterRequirementsQueryHandler(store ports.RuleStore) GetParameterRequirementsQueryHandler {
	return GetParameterRequirementsQueryHandler{store: store}
}

// Handle returns the field set of every parameter table for the requested
// type. Item fields are only read for complex_road.
func (h GetParameterRequirementsQueryHandler) Handle(
	_ context.Context,
	query GetParameterRequirementsQuery,
) (GetParameterRequirementsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParameterRequirementsQueryResponse{}, err
	}

	documentType := query.DocumentType()
	response := GetParameterRequirementsQueryResponse{DocumentType: documentType.String()}

	var err error
	if response.Transport, err = h.fieldSet(ruleset.TransportParameters, documentType); err != nil {
		return GetParameterRequirementsQueryResponse{}, err
	}
	if response.Order, err = h.fieldSet(ruleset.OrderParameters, documentType); err != nil {
		return GetParameterRequirementsQueryResponse{}, err
	}
	if response.Fixed, err = h.fieldSet(ruleset.FixedParameters, documentType); err != nil {
		return GetParameterRequirementsQueryResponse{}, err
	}

	if documentType == kernel.ComplexRoad {
		item, err := h.fieldSet(ruleset.ItemParameters, documentType)
		if err != nil {
			return GetParameterRequirementsQueryResponse{}, err
		}
		response.Item = &item
	}
	return response, nil
}

func (h GetParameterRequirementsQueryHandler) fieldSet(
	kind ruleset.ParameterKind,
	documentType kernel.DocumentType,
) (ruleset.FieldSet, error) {
	defs, err := h.store.ParameterDefinitions(kind)
	if err != nil {
		return ruleset.FieldSet{}, err
	}
	return defs.For(documentType.String()), nil
}
