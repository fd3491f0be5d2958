package ensure

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Rule checks a value without mutating it and documents the same constraint
// in an OpenAPI schema. Every Rule is also an ozzo-validation
// [validation.Rule].
type Rule interface {
	Validate(value any) error
	Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
}

var (
	// ErrTooShort is the validation error returned by AtLeast rules.
	ErrTooShort = validation.NewError("validation_ensure_too_short", "must have at least {{.quantity}} elements")
	// ErrTooLong is the validation error returned by NoMoreThan rules.
	ErrTooLong = validation.NewError("validation_ensure_too_long", "must have no more than {{.quantity}} elements")
)

type sizeRule struct {
	cmp      Comparison
	quantity int
}

// AtLeast returns a rule that checks a slice, array, map or string has at
// least n elements.
func AtLeast(n int) Rule {
	return sizeRule{cmp: CompareAtLeast, quantity: n}
}

// NoMoreThan returns a rule that checks a slice, array, map or string has no
// more than n elements.
func NoMoreThan(n int) Rule {
	return sizeRule{cmp: CompareNoMoreThan, quantity: n}
}

// Validate checks value against the rule. Nil values pass; combine with
// validation.Required to reject them.
func (r sizeRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	n, err := validation.LengthOfValue(value)
	if err != nil {
		return err
	}
	p := Policy{Comparison: r.cmp, Quantity: r.quantity}
	if p.compare(n) == 0 {
		return nil
	}
	e := ErrTooLong
	if r.cmp == CompareAtLeast {
		e = ErrTooShort
	}
	return e.SetParams(map[string]any{"quantity": r.quantity})
}

func (r sizeRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.quantity < 0 {
		return fmt.Errorf("%w: negative quantity %d", ErrInvalidArgument, r.quantity)
	}
	q := uint64(r.quantity)
	switch r.cmp {
	case CompareAtLeast:
		ref.Value.MinItems = q
	case CompareNoMoreThan:
		ref.Value.MaxItems = &q
	default:
		return ErrIncompleteChain
	}
	return nil
}
