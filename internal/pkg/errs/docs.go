// Package errs provides the typed errors shared by the domain, application and
// adapter layers of the sales order service.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid, ErrAccessDenied)
// with a struct carrying the details and an optional cause. Unwrap always
// returns the sentinel, so callers classify failures with errors.Is and the
// result package maps them onto envelope classifications.
package errs
