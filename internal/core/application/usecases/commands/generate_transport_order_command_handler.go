package commands

import (
	"context"
	"log/slog"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/services/generator"
	"transportorder/internal/core/ports"
	"transportorder/internal/pkg/metrics"
)

// GenerateTransportOrderResponse wraps the generator result. DocumentID and
// Status are only set when the document was archived.
type GenerateTransportOrderResponse struct {
	generator.Result
	DocumentID string `json:"document_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

// GenerateTransportOrderCommandHandler generates a document and, when the
// command asks for it, archives or queues it in one transaction. Rejected
// input is a regular response, not an error; errors are reserved for
// infrastructure failures.
type GenerateTransportOrderCommandHandler struct {
	generators Generators
	uowFactory ports.UnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewGenerateTransportOrderCommandHandler creates a handler for document
// generation. m may be nil.
func NewGenerateTransportOrderCommandHandler(
	generators Generators,
	uowFactory ports.UnitOfWorkFactory,
	m *metrics.Metrics,
	logger *slog.Logger,
) GenerateTransportOrderCommandHandler {
	return GenerateTransportOrderCommandHandler{
		generators: generators,
		uowFactory: uowFactory,
		metrics:    m,
		logger:     logger.With("component", "GenerateTransportOrderCommandHandler"),
	}
}

// Handle runs the generator. A successful result is archived (and queued when
// cmd.Submit is set) inside one transaction; an unsuccessful one is returned
// as is and never stored.
func (h GenerateTransportOrderCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateTransportOrderCommand,
) (GenerateTransportOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return GenerateTransportOrderResponse{}, err
	}

	gen, err := h.generators.Get(cmd.DocumentType())
	if err != nil {
		return GenerateTransportOrderResponse{}, err
	}

	result := gen.Generate(ctx, cmd.Input())
	if !result.Success {
		h.metrics.ObserveGeneration(result.DocumentType, string(result.ErrorKind))
		return GenerateTransportOrderResponse{Result: result}, nil
	}
	h.metrics.ObserveGeneration(result.DocumentType, "success")

	response := GenerateTransportOrderResponse{Result: result}
	if !cmd.Persist() {
		return response, nil
	}

	doc, err := document.NewDocument(kernel.NewUUID(), cmd.DocumentType(), result.OrderNumber, result.XML, result.Warnings)
	if err != nil {
		return GenerateTransportOrderResponse{}, err
	}
	if cmd.Submit() {
		if err = doc.Queue(); err != nil {
			return GenerateTransportOrderResponse{}, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return GenerateTransportOrderResponse{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DocumentRepository().Add(ctx, doc); err != nil {
		return GenerateTransportOrderResponse{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return GenerateTransportOrderResponse{}, err
	}

	h.logger.InfoContext(ctx, "document archived",
		"document_id", doc.ID().String(), "status", doc.Status().String())

	response.DocumentID = doc.ID().String()
	response.Status = doc.Status().String()
	return response, nil
}
