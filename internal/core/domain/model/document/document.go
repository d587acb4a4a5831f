package document

import (
	"errors"
	"strings"
	"time"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/errs"
)

// ErrDocumentIsNotConstructed is returned by Validate for a Document that was
// not created through NewDocument or Restore.
var ErrDocumentIsNotConstructed = errors.New("Document must be created via NewDocument constructor")

// Document is a generated transport order together with its delivery state.
// It is the aggregate root persisted by ports.DocumentRepository.
//
// Document follows these invariants:
//   - id, document type, order number and XML are set and never change
//   - attempts only grows, by one per delivery attempt
//   - status transitions follow Status
//   - lastError is cleared by a successful delivery
type Document struct {
	id           kernel.UUID
	documentType kernel.DocumentType

	// orderNumber is the transport number, kept for listing the queue
	// without parsing the XML.
	orderNumber string
	xml         string

	// warnings are the non-fatal validation findings of generation.
	warnings []string

	status    Status
	attempts  int
	lastError string
	createdAt time.Time

	isConstructed bool
}

// NewDocument archives a freshly generated document in Generated status.
//
// Example:
//
//	doc, err := document.NewDocument(kernel.NewUUID(), kernel.SimpleRoad, "1404338", xml, result.Warnings)
func NewDocument(
	id kernel.UUID,
	documentType kernel.DocumentType,
	orderNumber string,
	xml string,
	warnings []string,
) (*Document, error) {
	doc := &Document{
		status:        Generated,
		warnings:      append([]string(nil), warnings...),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		doc.setID(id),
		doc.setDocumentType(documentType),
		doc.setOrderNumber(orderNumber),
		doc.setXML(xml),
	); err != nil {
		return nil, err
	}

	return doc, nil
}

// Restore rebuilds a document from storage. Invariants are checked the same
// way as in NewDocument.
func Restore(
	id kernel.UUID,
	documentType kernel.DocumentType,
	orderNumber string,
	xml string,
	warnings []string,
	status Status,
	attempts int,
	lastError string,
	createdAt time.Time,
) (*Document, error) {
	doc, err := NewDocument(id, documentType, orderNumber, xml, warnings)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", attempts, 0, "unbounded")
	}

	doc.status = status
	doc.attempts = attempts
	doc.lastError = lastError
	doc.createdAt = createdAt
	return doc, nil
}

// Validate ensures the document was created through a constructor. A nil
// document is not constructed either.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier of the document.
func (d *Document) ID() kernel.UUID { return d.id }

// DocumentType returns the generator variant that produced the XML.
func (d *Document) DocumentType() kernel.DocumentType { return d.documentType }

// OrderNumber returns the transport number of the order.
func (d *Document) OrderNumber() string { return d.orderNumber }

// XML returns the document body sent to the exchange.
func (d *Document) XML() string { return d.xml }

// Status returns the current delivery state.
func (d *Document) Status() Status { return d.status }

// Attempts returns how many deliveries were tried, successful or not.
func (d *Document) Attempts() int { return d.attempts }

// LastError returns the reason of the latest failed delivery, or "".
func (d *Document) LastError() string { return d.lastError }

// CreatedAt returns the generation time in UTC.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// Warnings returns a copy of the generation warnings.
func (d *Document) Warnings() []string {
	return append([]string(nil), d.warnings...)
}

// Queue marks a Generated document for delivery. Queuing twice is an error,
// so callers check Status first when the document may already be queued.
func (d *Document) Queue() error {
	next, err := d.status.Queue()
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

// MarkSubmitted records a delivery the exchange accepted.
func (d *Document) MarkSubmitted() error {
	next, err := d.status.Submit()
	if err != nil {
		return err
	}
	d.attempts++
	d.status = next
	d.lastError = ""
	return nil
}

// RecordFailure counts a failed delivery attempt. A non-retryable failure,
// or one that uses up maxAttempts, rejects the document; otherwise it stays
// queued for the next dispatch run.
func (d *Document) RecordFailure(reason string, retryable bool, maxAttempts int) error {
	if d.status != Queued {
		_, err := d.status.Reject()
		return err
	}

	d.attempts++
	d.lastError = reason

	if retryable && (maxAttempts <= 0 || d.attempts < maxAttempts) {
		return nil
	}

	next, err := d.status.Reject()
	if err != nil {
		return err
	}
	d.status = next
	return nil
}

func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Document) setDocumentType(documentType kernel.DocumentType) error {
	if err := documentType.Validate(); err != nil {
		return err
	}
	d.documentType = documentType
	return nil
}

func (d *Document) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	d.orderNumber = orderNumber
	return nil
}

func (d *Document) setXML(xml string) error {
	if strings.TrimSpace(xml) == "" {
		return errs.NewValueIsRequiredError("xml")
	}
	d.xml = xml
	return nil
}
