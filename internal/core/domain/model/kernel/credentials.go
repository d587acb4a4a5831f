package kernel

import (
	"errors"
	"strings"

	"transportorder/internal/pkg/errs"
	"transportorder/internal/pkg/guard"
)

// ErrCredentialsAreNotConstructed is returned by Validate on a zero value.
var ErrCredentialsAreNotConstructed = errs.NewValueIsRequiredError("credentials must be created via NewCredentials constructor")

// Credentials authenticate against the exchange platform. The wire form is
// username@company_id:password.
type Credentials struct { //nolint:recvcheck // Validate uses a value receiver
	username  string
	companyID string
	password  string
	guard     guard.ConstructorGuard
}

// NewCredentials trims every part and rejects empty ones. All violations are
// reported together.
//
// Example:
//
//	creds, err := kernel.NewCredentials("dispatcher", "318877", "s3cret")
//	creds.String()    // "dispatcher@318877:s3cret"
//	creds.Principal() // "dispatcher@318877"
func NewCredentials(username, companyID, password string) (Credentials, error) {
	c := Credentials{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setUsername(username),
		c.setCompanyID(companyID),
		c.setPassword(password),
	); err != nil {
		return Credentials{}, err
	}

	return c, nil
}

// Validate ensures the credentials were created through NewCredentials.
func (c Credentials) Validate() error {
	return c.guard.Validate(ErrCredentialsAreNotConstructed)
}

// Username returns the trimmed user name.
func (c Credentials) Username() string { return c.username }

// CompanyID returns the exchange company identifier.
func (c Credentials) CompanyID() string { return c.companyID }

// Password returns the secret. Never log it; use Principal instead.
func (c Credentials) Password() string { return c.password }

// Principal is the credential without the password, safe to log.
func (c Credentials) Principal() string {
	return c.username + "@" + c.companyID
}

// String returns the wire form, password included.
func (c Credentials) String() string {
	return c.Principal() + ":" + c.password
}

func (c *Credentials) setUsername(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("username")
	}
	c.username = value
	return nil
}

func (c *Credentials) setCompanyID(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("company id")
	}
	c.companyID = value
	return nil
}

func (c *Credentials) setPassword(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError("password")
	}
	c.password = value
	return nil
}
