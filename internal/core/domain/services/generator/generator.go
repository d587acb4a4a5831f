// Package generator builds transport order documents. The three document
// types share one assembly pipeline and differ in their capability row,
// their input checks and the way they stage type-specific sections.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/core/domain/services/assembler"
	"transportorder/internal/core/domain/services/collector"
	"transportorder/internal/core/ports"
)

// ErrorKind classifies a failed Result.
type ErrorKind string

const (
	// ValidationError means the caller's input was rejected.
	ValidationError ErrorKind = "validation_error"
	// GenerationError means assembly failed on configuration or templates.
	GenerationError ErrorKind = "generation_error"
)

// Capabilities is one row of the capability table.
type Capabilities struct {
	DocumentType       kernel.DocumentType `json:"-"`
	TransportType      string              `json:"transport_type"`
	Description        string              `json:"description"`
	RequiredFields     []string            `json:"required_fields"`
	SupportsPricing    bool                `json:"supports_pricing"`
	SupportsOrderItems bool                `json:"supports_order_items"`
	SupportsVehicle    bool                `json:"supports_vehicle"`
}

// InputValidation is the outcome of the pre-assembly input check.
type InputValidation struct {
	IsValid           bool     `json:"is_valid"`
	Errors            []string `json:"errors"`
	Warnings          []string `json:"warnings"`
	MissingRequired   []string `json:"missing_required"`
	SuggestedOptional []string `json:"suggested_optional"`
}

func newInputValidation() *InputValidation {
	return &InputValidation{
		IsValid:           true,
		Errors:            make([]string, 0),
		Warnings:          make([]string, 0),
		MissingRequired:   make([]string, 0),
		SuggestedOptional: make([]string, 0),
	}
}

func (v *InputValidation) addError(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
	v.IsValid = false
}

func (v *InputValidation) addWarning(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Result is the outcome of Generate. On success XML holds the document;
// otherwise ErrorKind tells bad input from bad configuration.
type Result struct {
	Success           bool           `json:"success"`
	ErrorKind         ErrorKind      `json:"error_type,omitempty"`
	ErrorMessage      string         `json:"error_message,omitempty"`
	DocumentType      string         `json:"transport_type"`
	OrderNumber       string         `json:"order_number,omitempty"`
	XML               string         `json:"xml_content,omitempty"`
	Errors            []string       `json:"errors,omitempty"`
	Warnings          []string       `json:"warnings,omitempty"`
	MissingRequired   []string       `json:"missing_required,omitempty"`
	SuggestedOptional []string       `json:"suggested_optional,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

// Generator produces documents of one type.
//
// Generate validates the input first and never returns an error: failures are
// reported in Result with an ErrorKind.
type Generator interface {
	// Capabilities returns the capability row of the type.
	Capabilities() Capabilities
	// ValidateInput checks raw input without assembling anything.
	ValidateInput(input transportorder.Input) InputValidation
	// Generate assembles a document from input.
	Generate(ctx context.Context, input transportorder.Input) Result
	// ExampleInput returns the stored example input of the type.
	ExampleInput() (transportorder.Input, error)
}

// variant is the single Generator implementation; the per-type behavior
// lives in its function fields.
type variant struct {
	capabilities Capabilities
	store        ports.RuleStore
	collector    *collector.Collector
	logger       *slog.Logger

	// check adds type-specific findings to a validation of the raw input.
	check func(input transportorder.Input, v *InputValidation)
	// prepare rewrites raw input before collection.
	prepare func(input transportorder.Input) transportorder.Input
	// augment stages the type-specific template sections.
	augment func(draft *transportorder.Draft, staging *assembler.Staging)
	// metadata describes a generated document.
	metadata func(draft *transportorder.Draft) map[string]any
}

var _ Generator = (*variant)(nil)

// Capabilities implements Generator.
func (g *variant) Capabilities() Capabilities {
	return g.capabilities
}

// ValidateInput reports missing required fields, suggests optional ones and
// runs the type-specific checks.
func (g *variant) ValidateInput(input transportorder.Input) InputValidation {
	documentType := g.capabilities.DocumentType
	v := newInputValidation()

	v.MissingRequired = g.collector.MissingFieldPrompts(documentType, input)
	if len(v.MissingRequired) > 0 {
		v.IsValid = false
	}
	v.SuggestedOptional = g.collector.SuggestOptionalFields(documentType)

	if g.check != nil {
		g.check(input, v)
	}
	return *v
}

// ExampleInput implements Generator.
func (g *variant) ExampleInput() (transportorder.Input, error) {
	return g.store.ExampleInput(g.capabilities.DocumentType)
}

// Generate implements Generator.
func (g *variant) Generate(ctx context.Context, input transportorder.Input) Result {
	documentType := g.capabilities.DocumentType
	logger := g.logger.With("document_type", documentType.String())

	validation := g.ValidateInput(input)
	if !validation.IsValid {
		logger.InfoContext(ctx, "input rejected",
			"errors", len(validation.Errors), "missing", len(validation.MissingRequired))
		return Result{
			ErrorKind:         ValidationError,
			DocumentType:      documentType.String(),
			Errors:            validation.Errors,
			Warnings:          validation.Warnings,
			MissingRequired:   validation.MissingRequired,
			SuggestedOptional: validation.SuggestedOptional,
		}
	}

	prepared := input
	if g.prepare != nil {
		prepared = g.prepare(input.Clone())
	}

	draft, err := g.collector.Collect(documentType, prepared)
	if err != nil {
		var fieldErr *collector.FieldError
		if errors.As(err, &fieldErr) {
			logger.InfoContext(ctx, "input rejected", "field", fieldErr.Field, "error", err)
			return Result{
				ErrorKind:         ValidationError,
				DocumentType:      documentType.String(),
				Errors:            []string{err.Error()},
				Warnings:          validation.Warnings,
				MissingRequired:   validation.MissingRequired,
				SuggestedOptional: validation.SuggestedOptional,
			}
		}
		return g.failed(ctx, logger, err)
	}

	staging := baseStaging(draft)
	if g.augment != nil {
		g.augment(draft, staging)
	}

	template, err := g.store.Template(documentType)
	if err != nil {
		return g.failed(ctx, logger, err)
	}
	xml, err := assembler.Render(template, staging)
	if err != nil {
		return g.failed(ctx, logger, err)
	}

	logger.InfoContext(ctx, "document generated", "number", draft.Number(), "stops", len(draft.Stops))

	var metadata map[string]any
	if g.metadata != nil {
		metadata = g.metadata(draft)
	}
	return Result{
		Success:      true,
		DocumentType: documentType.String(),
		OrderNumber:  draft.Number(),
		XML:          xml,
		Warnings:     validation.Warnings,
		Metadata:     metadata,
	}
}

func (g *variant) failed(ctx context.Context, logger *slog.Logger, err error) Result {
	logger.ErrorContext(ctx, "document generation failed", "error", err)
	return Result{
		ErrorKind:    GenerationError,
		ErrorMessage: err.Error(),
		DocumentType: g.capabilities.DocumentType.String(),
	}
}

// baseStaging stages the sections every template shares.
func baseStaging(draft *transportorder.Draft) *assembler.Staging {
	s := assembler.NewStaging()
	info := draft.TransportInfo

	s.Set("transport_number", draft.Number())
	s.Set("status", info.String("status"))
	s.SetDefault("status", "N")
	s.Set("scheduling_unit", info.String("scheduling_unit"))
	s.Set("order_number", draft.OrderNumber())
	s.Set("carrier_creditor_number", info.String("carrier_creditor_number"))
	for key := range info {
		s.SetDefault(key, info.String(key))
	}

	s.SetFragment("stops", assembler.StopElements(draft.Stops)...)
	s.SetFragment("loading_stop_ids",
		assembler.StopIDElements("loading_stop_id", draft.OrderDetails.Strings("loading_stop_ids"))...)
	s.SetFragment("unloading_stop_ids",
		assembler.StopIDElements("unloading_stop_id", draft.OrderDetails.Strings("unloading_stop_ids"))...)
	return s
}

// forbidOceanQualifiers rejects ocean-only parameters on road documents.
func forbidOceanQualifiers(input transportorder.Input, v *InputValidation, label string) {
	forbidden := make(map[string]struct{})
	for _, q := range transportorder.OceanOnlyQualifiers() {
		forbidden[q] = struct{}{}
	}
	for _, p := range input.Objects("parameters") {
		q := p.Text("qualifier")
		if _, ok := forbidden[q]; ok {
			v.addError("Ocean parameter '%s' not allowed in %s", q, label)
		}
	}
}

func textOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
