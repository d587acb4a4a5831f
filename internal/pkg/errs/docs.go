// Package errs holds the error vocabulary shared by the transport-order
// service.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound,
// ...) with a struct carrying the details. The struct unwraps to its
// sentinel, so callers branch with errors.Is and inspect with errors.As:
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
package errs
