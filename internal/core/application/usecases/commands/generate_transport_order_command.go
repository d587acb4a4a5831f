package commands

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/core/domain/model/transportorder"
	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrGenerateTransportOrderCommandIsNotConstructed is returned by Validate on
// a zero-value command.
var ErrGenerateTransportOrderCommandIsNotConstructed = errors.New(
	"GenerateTransportOrderCommand must be created via NewGenerateTransportOrderCommand constructor",
)

// GenerateTransportOrderCommand asks for one transport order document.
// Persist archives the generated document; Submit additionally queues it
// for delivery to the exchange and implies Persist.
//
// Example:
//
//	cmd, err := NewGenerateTransportOrderCommand(kernel.SimpleRoad, input, false, true)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, cmd)
type GenerateTransportOrderCommand struct { //nolint:recvcheck //using for validation
	documentType kernel.DocumentType
	input        transportorder.Input
	persist      bool
	submit       bool

	guard guard.ConstructorGuard
}

// NewGenerateTransportOrderCommand validates the document type and requires a
// non-nil input. The content of input is checked by the generator, which
// reports every problem at once.
func NewGenerateTransportOrderCommand(
	documentType kernel.DocumentType,
	input transportorder.Input,
	persist bool,
	submit bool,
) (GenerateTransportOrderCommand, error) {
	cmd := GenerateTransportOrderCommand{
		persist: persist || submit,
		submit:  submit,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDocumentType(documentType),
		cmd.setInput(input),
	); err != nil {
		return GenerateTransportOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGenerateTransportOrderCommandIsNotConstructed if validation fails.
func (c GenerateTransportOrderCommand) Validate() error {
	return c.guard.Validate(ErrGenerateTransportOrderCommandIsNotConstructed)
}

// DocumentType selects the generator variant.
func (c GenerateTransportOrderCommand) DocumentType() kernel.DocumentType {
	return c.documentType
}

// Input returns the caller's parameters, keyed by field name or qualifier.
func (c GenerateTransportOrderCommand) Input() transportorder.Input {
	return c.input
}

// Persist reports whether the document is archived. Always true when Submit
// is.
func (c GenerateTransportOrderCommand) Persist() bool {
	return c.persist
}

// Submit reports whether the archived document is queued for delivery.
func (c GenerateTransportOrderCommand) Submit() bool {
	return c.submit
}

func (c *GenerateTransportOrderCommand) setDocumentType(documentType kernel.DocumentType) error {
	if err := documentType.Validate(); err != nil {
		return err
	}
	c.documentType = documentType
	return nil
}

func (c *GenerateTransportOrderCommand) setInput(input transportorder.Input) error {
	if input == nil {
		return errs.NewValueIsRequiredError("input")
	}
	c.input = input
	return nil
}
