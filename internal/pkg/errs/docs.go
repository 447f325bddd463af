// Package errs provides the structured error types shared by the ordering service.
//
// Each type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired) with a struct carrying the offending
// parameter, so callers can branch with errors.Is and still log the details:
//
//	status, err := repo.GetStatus(ctx, orderID)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no tracking record for this order
//	}
//
// Constructors come in two flavours, with and without a cause. Unwrap always
// returns the sentinel; the cause is only part of the message.
package errs
