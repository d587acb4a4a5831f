package commands

import (
	"context"
	"log/slog"
	"time"

	"transportorder/internal/core/domain/model/validation"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/metrics"
)

// ValidateDocumentCommandHandler validates a document, consulting the
// report cache first when one is configured. Cache failures are logged and
// never fail the command.
type ValidateDocumentCommandHandler struct {
	validator DocumentValidator
	cache     ports.ValidationCache
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewValidateDocumentCommandHandler accepts a nil cache.
func NewValidateDocumentCommandHandler(
	validator DocumentValidator,
	cache ports.ValidationCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) ValidateDocumentCommandHandler {
	return ValidateDocumentCommandHandler{
		validator: validator,
		cache:     cache,
		metrics:   m,
		logger:    logger.With("component", "ValidateDocumentCommandHandler"),
	}
}

// Handle returns the cached report when there is one. Otherwise it validates
// and stores the fresh report. An invalid document is a report with Valid
// false, never an error.
func (h ValidateDocumentCommandHandler) Handle(ctx context.Context, cmd ValidateDocumentCommand) (validation.Report, error) {
	if err := cmd.Validate(); err != nil {
		return validation.Report{}, err
	}

	if h.cache != nil {
		report, ok, err := h.cache.Get(ctx, cmd.DocumentType(), cmd.XML())
		switch {
		case err != nil:
			h.metrics.ObserveCacheLookup("error")
			h.logger.WarnContext(ctx, "validation cache lookup failed", "error", err)
		case ok:
			h.metrics.ObserveCacheLookup("hit")
			return report, nil
		default:
			h.metrics.ObserveCacheLookup("miss")
		}
	}

	start := time.Now()
	report := h.validator.Validate(cmd.XML(), cmd.DocumentType())
	h.metrics.ObserveValidation(report.DocumentType, report.IsValid, time.Since(start))

	if h.cache != nil {
		if err := h.cache.Put(ctx, cmd.DocumentType(), cmd.XML(), report); err != nil {
			h.logger.WarnContext(ctx, "validation cache update failed", "error", err)
		}
	}
	return report, nil
}
