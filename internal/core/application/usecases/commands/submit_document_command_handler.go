package commands

import (
	"context"
	"log/slog"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/ports"
)

// SubmitDocumentCommandHandler delivers a stored document. A document that
// was only archived is queued first; submitted and rejected documents are
// refused. A nil client refuses every command.
type SubmitDocumentCommandHandler struct {
	uowFactory  ports.UnitOfWorkFactory
	client      ports.ExchangeClient
	maxAttempts int
	logger      *slog.Logger
}

// NewSubmitDocumentCommandHandler creates the handler. maxAttempts bounds how
// often a transient failure keeps the document queued.
func NewSubmitDocumentCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	client ports.ExchangeClient,
	maxAttempts int,
	logger *slog.Logger,
) SubmitDocumentCommandHandler {
	return SubmitDocumentCommandHandler{
		uowFactory:  uowFactory,
		client:      client,
		maxAttempts: maxAttempts,
		logger:      logger.With("component", "SubmitDocumentCommandHandler"),
	}
}

// Handle returns ErrExchangeNotConfigured without a client and
// errs.ErrObjectNotFound for an unknown id. A rejection by the exchange is
// reported in the response, not as an error.
func (h SubmitDocumentCommandHandler) Handle(ctx context.Context, cmd SubmitDocumentCommand) (DeliveryResponse, error) {
	if err := cmd.Validate(); err != nil {
		return DeliveryResponse{}, err
	}
	if h.client == nil {
		return DeliveryResponse{}, ErrExchangeNotConfigured
	}

	doc, err := h.uowFactory.Create().DocumentRepository().Get(ctx, cmd.DocumentID())
	if err != nil {
		return DeliveryResponse{}, err
	}
	if doc.Status() == document.Generated {
		if err = doc.Queue(); err != nil {
			return DeliveryResponse{}, err
		}
	}

	response, err := deliver(ctx, h.uowFactory, h.client, doc, h.maxAttempts)
	if err != nil {
		return DeliveryResponse{}, err
	}

	h.logger.InfoContext(ctx, "document delivery attempted",
		"document_id", response.DocumentID, "status", response.Status, "accepted", response.Accepted)
	return response, nil
}
