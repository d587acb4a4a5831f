package queries

import (
	"errors"
	"time"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrGetQueuedDocumentsQueryIsNotConstructed is returned by Validate on a
// zero-value query.
var ErrGetQueuedDocumentsQueryIsNotConstructed = errors.New(
	"GetQueuedDocumentsQuery must be created via NewGetQueuedDocumentsQuery constructor",
)

// GetQueuedDocumentsQuery lists documents waiting for delivery, oldest
// first.
//
// Example:
//
//	query, _ := NewGetQueuedDocumentsQuery(100)
//	documents, err := handler.Handle(ctx, query)
//	for _, doc := range documents {
//	    fmt.Printf("%s %s attempts=%d\n", doc.ID, doc.OrderNumber, doc.Attempts)
//	}
type GetQueuedDocumentsQuery struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewGetQueuedDocumentsQuery accepts a limit between 1 and 1000.
func NewGetQueuedDocumentsQuery(limit int) (GetQueuedDocumentsQuery, error) {
	if limit <= 0 || limit > 1000 {
		return GetQueuedDocumentsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, 1000)
	}
	return GetQueuedDocumentsQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetQueuedDocumentsQueryIsNotConstructed if validation fails.
func (q GetQueuedDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrGetQueuedDocumentsQueryIsNotConstructed)
}

// Limit returns the maximum number of rows returned.
func (q GetQueuedDocumentsQuery) Limit() int {
	return q.limit
}

// GetQueuedDocumentsQueryResponse is one queued document without its XML.
// LastError is empty until a delivery attempt failed.
type GetQueuedDocumentsQueryResponse struct {
	ID           kernel.UUID
	DocumentType kernel.DocumentType
	OrderNumber  string
	Attempts     int
	LastError    string
	CreatedAt    time.Time
}
