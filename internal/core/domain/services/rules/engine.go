package rules

import (
	"log/slog"
	"sort"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/ruleset"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/ports"
)

// Summary describes one rule for introspection.
type Summary struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Engine is the Business Rule Engine. Rules are read from the transport
// parameter definitions on every call, so a rule store Reset takes effect on
// the next document without restarting the engine.
type Engine struct {
	store  ports.RuleStore
	logger *slog.Logger
}

// NewEngine creates an engine backed by store.
//
// Example:
//
//	engine := rules.NewEngine(store, logger)
//	fields = engine.Apply(kernel.SimpleRoad, input, fields)
func NewEngine(store ports.RuleStore, logger *slog.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger.With("component", "BusinessRuleEngine"),
	}
}

// Apply folds the rules of documentType over a copy of fields in ascending
// priority order; equal priorities keep their declaration order. It never
// fails: without rules the fields are returned unchanged.
func (e *Engine) Apply(
	documentType kernel.DocumentType,
	input transportorder.Input,
	fields transportorder.Fields,
) transportorder.Fields {
	result := fields.Clone()
	if result == nil {
		result = transportorder.NewFields()
	}

	for _, rule := range e.rulesFor(documentType) {
		rule.apply(input, result)
	}
	return result
}

// Summary lists the rules that apply to documentType in execution order.
func (e *Engine) Summary(documentType kernel.DocumentType) []Summary {
	applicable := e.rulesFor(documentType)
	out := make([]Summary, 0, len(applicable))
	for _, r := range applicable {
		out = append(out, Summary{ID: r.ID(), Description: r.Description(), Priority: r.Priority()})
	}
	return out
}

func (e *Engine) rulesFor(documentType kernel.DocumentType) []Rule {
	defs, err := e.store.ParameterDefinitions(ruleset.TransportParameters)
	if err != nil {
		e.logger.Warn("business rules unavailable", "document_type", documentType.String(), "error", err)
		return nil
	}

	compiled, skipped := Compile(defs.BusinessRules)
	if len(skipped) > 0 {
		e.logger.Debug("ignoring unsupported business rules", "rule_ids", skipped)
	}

	applicable := make([]Rule, 0, len(compiled))
	for _, r := range compiled {
		if r.AppliesTo(documentType) {
			applicable = append(applicable, r)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority() < applicable[j].Priority()
	})
	return applicable
}
