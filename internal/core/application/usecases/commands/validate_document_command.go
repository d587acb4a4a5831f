package commands

import (
	"errors"
	"strings"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrValidateDocumentCommandIsNotConstructed is returned by Validate on a
// zero-value command.
var ErrValidateDocumentCommandIsNotConstructed = errors.New(
	"ValidateDocumentCommand must be created via NewValidateDocumentCommand constructor",
)

// ValidateDocumentCommand runs the validation pipeline on an existing
// document.
type ValidateDocumentCommand struct { //nolint:recvcheck //using for validation
	xml          string
	documentType kernel.DocumentType

	guard guard.ConstructorGuard
}

// NewValidateDocumentCommand rejects blank XML and unknown document types.
// Well-formedness is left to the pipeline so that it shows up in the report.
func NewValidateDocumentCommand(xml string, documentType kernel.DocumentType) (ValidateDocumentCommand, error) {
	cmd := ValidateDocumentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setXML(xml),
		cmd.setDocumentType(documentType),
	); err != nil {
		return ValidateDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateDocumentCommand) Validate() error {
	return c.guard.Validate(ErrValidateDocumentCommandIsNotConstructed)
}

// XML returns the document exactly as received.
func (c ValidateDocumentCommand) XML() string {
	return c.xml
}

// DocumentType selects the type-specific rules applied by the pipeline.
func (c ValidateDocumentCommand) DocumentType() kernel.DocumentType {
	return c.documentType
}

func (c *ValidateDocumentCommand) setXML(xml string) error {
	if strings.TrimSpace(xml) == "" {
		return errs.NewValueIsRequiredError("xml")
	}
	c.xml = xml
	return nil
}

func (c *ValidateDocumentCommand) setDocumentType(documentType kernel.DocumentType) error {
	if err := documentType.Validate(); err != nil {
		return err
	}
	c.documentType = documentType
	return nil
}
