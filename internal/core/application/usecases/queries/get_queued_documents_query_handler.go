package queries

import (
	"context"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetQueuedDocumentsQueryHandler reads the delivery queue straight from the
// database without loading the document bodies.
type GetQueuedDocumentsQueryHandler struct {
	db *gorm.DB
}

// NewGetQueuedDocumentsQueryHandler creates a handler reading through db.
func NewGetQueuedDocumentsQueryHandler(db *gorm.DB) GetQueuedDocumentsQueryHandler {
	return GetQueuedDocumentsQueryHandler{db: db}
}

// Handle never returns nil for an empty queue, so the HTTP layer encodes [].
func (h GetQueuedDocumentsQueryHandler) Handle(
	ctx context.Context,
	query GetQueuedDocumentsQuery,
) ([]GetQueuedDocumentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	documents := make([]GetQueuedDocumentsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			document_type,
			order_number,
			attempts,
			last_error,
			created_at
		FROM transport_documents
		WHERE status = ?
		ORDER BY created_at
		LIMIT ?
	`, int(document.Queued), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetQueuedDocumentsQueryResponse
		var id uuid.UUID
		var documentType string

		err = rows.Scan(
			&id,
			&documentType,
			&resp.OrderNumber,
			&resp.Attempts,
			&resp.LastError,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.DocumentType, err = kernel.ParseDocumentType(documentType)
		if err != nil {
			return nil, err
		}
		documents = append(documents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return documents, nil
}
