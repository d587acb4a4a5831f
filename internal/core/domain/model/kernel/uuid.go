package kernel

import (
	"fmt"

	"transportorder/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the nil UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID or UUIDFromString")

// UUID identifies a stored transport-order document. The zero value is the
// nil UUID and is rejected by Validate.
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString accepts every textual form understood by uuid.Parse,
// including the braced and urn:uuid: variants.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	result := UUID{id: id}
	if err = result.Validate(); err != nil {
		return UUID{}, err
	}
	return result, nil
}

// UUIDFromBytes rebuilds an identifier from its 16 byte form as stored in
// the database.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID bytes: %w", err))
	}
	result := UUID{id: id}
	if err = result.Validate(); err != nil {
		return UUID{}, err
	}
	return result, nil
}

// String returns the canonical lower-case form.
func (u UUID) String() string {
	return u.id.String()
}

// Value exposes the underlying google/uuid value for persistence adapters.
func (u UUID) Value() uuid.UUID {
	return u.id
}

// IsEqual compares two identifiers by value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate rejects the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
