// Package errors provides the classified error primitives used across redirectgen.
//
// Errors carry a category, a severity and a free-form context map so that the
// generation pipeline can decide whether a failure aborts the run, skips a
// single redirect page, or is only worth a warning.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryRedirect, "target is not a valid URI").
//		Warning().
//		WithContext("target", to).
//		WithCause(parseErr).
//		Build()
package errors
