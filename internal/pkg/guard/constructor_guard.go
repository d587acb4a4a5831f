package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil error for a zero-value guard.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks values that went through their constructor. Embed it
// in a value object or command and check it in Validate:
//
//	type Location struct {
//	    city  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (l Location) Validate() error {
//	    return l.guard.Validate(ErrLocationNotConstructed)
//	}
//
// A zero-value struct carries a zero-value guard and fails validation.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes Validate.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for constructed values and validationError (or
// ErrDefaultConstructorGuard when it is nil) otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
