package ensure

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of field names to their validation errors, as
// returned by [Policy.Validate]. It is an alias for [validation.Errors] from
// ozzo-validation.
type ValidationErrors = validation.Errors

var (
	// ErrInvalidArgument is returned when a chain is started without a
	// target or a terminal method receives more than one pad value.
	ErrInvalidArgument = errors.New("ensure: invalid argument")

	// ErrPropertyNotFound is returned when a path segment given to
	// [ThatPath] does not resolve.
	ErrPropertyNotFound = errors.New("ensure: could not find property")

	// ErrInvalidTarget is returned when the resolved target is not a slice
	// of the chain's element type that can be written back.
	ErrInvalidTarget = errors.New("ensure: target is not a settable slice")

	// ErrIncompleteChain is returned when a terminal method runs before
	// HasAtLeast or HasNoMoreThan.
	ErrIncompleteChain = errors.New("ensure: no comparison configured")
)
