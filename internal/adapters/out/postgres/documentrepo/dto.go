// Package documentrepo persists generated transport order documents and
// their delivery state.
package documentrepo

import (
	"time"

	"transportorder/internal/core/domain/model/document"
	"transportorder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DocumentDTO is the row of the document archive. The status index serves
// the dispatch job's queue scan.
type DocumentDTO struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DocumentType string         `gorm:"type:varchar(32);not null"`
	OrderNumber  string         `gorm:"type:varchar(64);not null;index"`
	XML          string         `gorm:"column:xml;type:text;not null"`
	Warnings     pq.StringArray `gorm:"type:text[]"`
	Status       int            `gorm:"index:idx_documents_queue,priority:1"`
	Attempts     int
	LastError    string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index:idx_documents_queue,priority:2"`
}

// TableName overrides the GORM default "document_dtos".
func (DocumentDTO) TableName() string {
	return "transport_documents"
}

func fromDomain(doc *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:           doc.ID().Value(),
		DocumentType: doc.DocumentType().String(),
		OrderNumber:  doc.OrderNumber(),
		XML:          doc.XML(),
		Warnings:     pq.StringArray(doc.Warnings()),
		Status:       int(doc.Status()),
		Attempts:     doc.Attempts(),
		LastError:    doc.LastError(),
		CreatedAt:    doc.CreatedAt(),
	}
}

func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	documentType, err := kernel.ParseDocumentType(dto.DocumentType)
	if err != nil {
		return nil, err
	}

	return document.Restore(
		id,
		documentType,
		dto.OrderNumber,
		dto.XML,
		[]string(dto.Warnings),
		document.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt,
	)
}
