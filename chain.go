package ensure

import (
	"fmt"
	"slices"
)

// Chain is a fluent description of how a slice should be normalized. Chains
// are values: every step returns a modified copy and leaves the receiver
// untouched, so a partially configured chain can be reused and distinct
// chains never share state.
//
// A chain is started with [That] or [ThatPath], configured with
// [Chain.HasAtLeast] or [Chain.HasNoMoreThan] and [Chain.Elements], and
// resolved by one of the terminal methods [Chain.ByPopping],
// [Chain.ByPushing], [Chain.ByShifting] or [Chain.ByUnshifting].
type Chain[T any] struct {
	target target[T]
	policy Policy
	err    error
}

// target is a read/write handle on the slice being normalized.
type target[T any] struct {
	get func() []T
	set func([]T)
}

// pad is the value inserted when growing a slice. When set is false no pad
// was supplied and the zero value of T is inserted.
type pad[T any] struct {
	value T
	set   bool
}

func padOf[T any](values []T) (pad[T], error) {
	switch len(values) {
	case 0:
		return pad[T]{}, nil
	case 1:
		return pad[T]{value: values[0], set: true}, nil
	}
	return pad[T]{}, fmt.Errorf("%w: at most one pad value, got %d", ErrInvalidArgument, len(values))
}

func (p pad[T]) fill(n int) []T {
	s := make([]T, n)
	if p.set {
		for i := range s {
			s[i] = p.value
		}
	}
	return s
}

// That starts a chain on the slice pointed to by s. The slice is updated in
// place when the chain resolves.
//
//	ensure.That(&history).HasNoMoreThan(3).Elements().ByShifting()
func That[T any](s *[]T) Chain[T] {
	if s == nil {
		return Chain[T]{err: fmt.Errorf("%w: nil target", ErrInvalidArgument)}
	}
	return Chain[T]{target: target[T]{
		get: func() []T { return *s },
		set: func(v []T) { *s = v },
	}}
}

// HasAtLeast requires the target to measure at least quantity.
func (c Chain[T]) HasAtLeast(quantity int) Chain[T] {
	c.policy.Comparison = CompareAtLeast
	c.policy.Quantity = quantity
	return c
}

// HasNoMoreThan requires the target to measure no more than quantity.
func (c Chain[T]) HasNoMoreThan(quantity int) Chain[T] {
	c.policy.Comparison = CompareNoMoreThan
	c.policy.Quantity = quantity
	return c
}

// Elements measures the target by its element count.
func (c Chain[T]) Elements() Chain[T] {
	c.policy.Filter = FilterElements
	return c
}

// Policy replaces the chain configuration with p. Use [Chain.Execute] to
// resolve a chain whose transform came from a policy.
func (c Chain[T]) Policy(p Policy) Chain[T] {
	c.policy = p
	return c
}

// ByPopping trims the target from the end.
func (c Chain[T]) ByPopping() ([]T, error) {
	return c.by(TransformPop, nil)
}

// ByPushing grows the target at the end, inserting the optional pad value
// or the zero value of T.
func (c Chain[T]) ByPushing(padding ...T) ([]T, error) {
	return c.by(TransformPush, padding)
}

// ByShifting trims the target from the start.
func (c Chain[T]) ByShifting() ([]T, error) {
	return c.by(TransformShift, nil)
}

// ByUnshifting grows the target at the start, inserting the optional pad
// value or the zero value of T.
func (c Chain[T]) ByUnshifting(padding ...T) ([]T, error) {
	return c.by(TransformUnshift, padding)
}

func (c Chain[T]) by(t Transform, padding []T) ([]T, error) {
	c.policy.Transform = t
	return c.Execute(padding...)
}

// Execute resolves the chain with the transform already configured, which
// is how policy-driven chains are run. It returns the target, mutated if it
// was out of bounds.
func (c Chain[T]) Execute(padding ...T) ([]T, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.target.get == nil {
		return nil, fmt.Errorf("%w: chain has no target, start it with That or ThatPath", ErrInvalidArgument)
	}
	s := c.target.get()
	p, err := padOf(padding)
	if err != nil {
		return s, err
	}
	if c.policy.Comparison == comparisonUnset {
		return s, ErrIncompleteChain
	}
	if err := c.policy.Validate(); err != nil {
		return s, err
	}
	n := c.policy.compare(len(s))
	if n == 0 {
		return s, nil
	}
	s = transform(s, c.policy.Transform, n, p)
	c.target.set(s)
	return s, nil
}

// Apply runs policy p against the slice pointed to by s.
func Apply[T any](s *[]T, p Policy, padding ...T) ([]T, error) {
	return That(s).Policy(p).Execute(padding...)
}

// transform applies t to s n times. Removal stops once s is empty.
func transform[T any](s []T, t Transform, n int, p pad[T]) []T {
	switch t {
	case TransformPop:
		n = min(n, len(s))
		clear(s[len(s)-n:])
		return s[:len(s)-n]
	case TransformShift:
		return slices.Delete(s, 0, min(n, len(s)))
	case TransformPush:
		return append(s, p.fill(n)...)
	case TransformUnshift:
		return slices.Insert(s, 0, p.fill(n)...)
	}
	panic("ensure: unknown transform " + t.String())
}
