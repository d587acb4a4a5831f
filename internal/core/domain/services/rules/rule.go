// Package rules applies the declarative business rules to collected
// transport info. Rules are a closed set of variants compiled from their
// stored definition.
package rules

import (
	"slices"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
)

// Rule is implemented by FieldMappingRule and FixedValueRule only.
type Rule interface {
	ID() string
	Description() string
	Priority() int
	AppliesTo(documentType kernel.DocumentType) bool
	apply(input transportorder.Input, fields transportorder.Fields)
}

type base struct {
	id          string
	description string
	priority    int
	appliesTo   []string
}

// ID is the identifier from the rule data, e.g. carrier_id_mapping_rule.
func (b base) ID() string { return b.id }

// Description is shown in the document type info.
func (b base) Description() string { return b.description }

// Priority orders application; lower values run first.
func (b base) Priority() int { return b.priority }

// AppliesTo reports whether the rule is listed for documentType.
func (b base) AppliesTo(documentType kernel.DocumentType) bool {
	return slices.Contains(b.appliesTo, documentType.String())
}

// FieldMappingRule copies the first non-empty source field found in the raw
// input into Target, unless Target is already set.
type FieldMappingRule struct {
	base
	Sources []string
	Target  string
}

func (r FieldMappingRule) apply(input transportorder.Input, fields transportorder.Fields) {
	if fields.IsSet(r.Target) {
		return
	}
	for _, source := range r.Sources {
		if value, ok := input[source]; ok && !transportorder.IsEmpty(value) {
			fields.Set(r.Target, value)
			return
		}
	}
}

// FixedValueRule forces Field to Value once ConditionField holds a value.
type FixedValueRule struct {
	base
	ConditionField string
	Field          string
	Value          string
}

func (r FixedValueRule) apply(_ transportorder.Input, fields transportorder.Fields) {
	if fields.IsSet(r.ConditionField) {
		fields.Set(r.Field, r.Value)
	}
}

// Compile turns stored specs into rules. Specs of an unknown kind or with an
// unsupported operator are skipped and reported in the second result.
func Compile(specs []ruleset.BusinessRuleSpec) ([]Rule, []string) {
	compiled := make([]Rule, 0, len(specs))
	var skipped []string

	for _, spec := range specs {
		b := base{
			id:          spec.ID,
			description: spec.Description,
			priority:    spec.Priority,
			appliesTo:   spec.AppliesTo,
		}

		switch spec.Kind {
		case ruleset.FieldMappingRuleKind:
			if spec.Target == "" || len(spec.Patterns) == 0 {
				skipped = append(skipped, spec.ID)
				continue
			}
			compiled = append(compiled, FieldMappingRule{base: b, Sources: spec.Patterns, Target: spec.Target})
		case ruleset.FixedValueRuleKind:
			if spec.Condition.Operator != "has_value" || spec.Condition.Field == "" || spec.Action.Field == "" {
				skipped = append(skipped, spec.ID)
				continue
			}
			compiled = append(compiled, FixedValueRule{
				base:           b,
				ConditionField: spec.Condition.Field,
				Field:          spec.Action.Field,
				Value:          spec.Action.Value,
			})
		default:
			skipped = append(skipped, spec.ID)
		}
	}

	return compiled, skipped
}
