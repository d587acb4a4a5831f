package commands

import (
	"errors"

	"transportorder/internal/core/domain/model/kernel"
	"transportorder/internal/pkg/guard"
)

// ErrFormatCredentialsCommandIsNotConstructed is returned by Validate on a
// zero-value command.
var ErrFormatCredentialsCommandIsNotConstructed = errors.New(
	"FormatCredentialsCommand must be created via NewFormatCredentialsCommand constructor",
)

// FormatCredentialsCommand turns the three credential parts into the
// username@company_id:password form the exchange expects.
type FormatCredentialsCommand struct { //nolint:recvcheck //using for validation
	credentials kernel.Credentials

	guard guard.ConstructorGuard
}

// NewFormatCredentialsCommand trims the parts and reports every empty one in a
// single error.
//
// Example:
//
//	cmd, err := NewFormatCredentialsCommand("dispatcher", "", "")
//	// err mentions both "company id" and "password"
func NewFormatCredentialsCommand(username, companyID, password string) (FormatCredentialsCommand, error) {
	credentials, err := kernel.NewCredentials(username, companyID, password)
	if err != nil {
		return FormatCredentialsCommand{}, err
	}
	return FormatCredentialsCommand{credentials: credentials, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFormatCredentialsCommandIsNotConstructed if validation fails.
func (c FormatCredentialsCommand) Validate() error {
	return c.guard.Validate(ErrFormatCredentialsCommandIsNotConstructed)
}

// Credentials returns the validated credential value.
func (c FormatCredentialsCommand) Credentials() kernel.Credentials {
	return c.credentials
}
