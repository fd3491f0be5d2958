package ensure

import "fmt"

type (
	// Comparison decides how the measured size of a target is judged
	// against the chain quantity.
	Comparison int

	// Filter decides what is measured on a target.
	Filter int

	// Transform decides which end of the target is trimmed or padded when
	// the comparison fails.
	Transform int
)

// The zero value of each mode means "not configured".
const (
	comparisonUnset Comparison = iota
	// CompareAtLeast accepts targets whose size is >= the quantity.
	CompareAtLeast
	// CompareNoMoreThan accepts targets whose size is <= the quantity.
	CompareNoMoreThan
)

const (
	filterUnset Filter = iota
	// FilterElements measures a target by its element count.
	FilterElements
)

const (
	transformUnset Transform = iota
	// TransformPop removes elements from the end.
	TransformPop
	// TransformPush appends padding at the end.
	TransformPush
	// TransformShift removes elements from the start.
	TransformShift
	// TransformUnshift prepends padding at the start.
	TransformUnshift
)

var (
	comparisons = []Comparison{CompareAtLeast, CompareNoMoreThan}
	filters     = []Filter{FilterElements}
	transforms  = []Transform{TransformPop, TransformPush, TransformShift, TransformUnshift}
)

func (c Comparison) String() string {
	switch c {
	case CompareAtLeast:
		return "at_least"
	case CompareNoMoreThan:
		return "no_more_than"
	case comparisonUnset:
		return ""
	}
	return fmt.Sprintf("Comparison(%d)", int(c))
}

func (f Filter) String() string {
	switch f {
	case FilterElements:
		return "elements"
	case filterUnset:
		return ""
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

func (t Transform) String() string {
	switch t {
	case TransformPop:
		return "pop"
	case TransformPush:
		return "push"
	case TransformShift:
		return "shift"
	case TransformUnshift:
		return "unshift"
	case transformUnset:
		return ""
	}
	return fmt.Sprintf("Transform(%d)", int(t))
}

// MarshalText implements [encoding.TextMarshaler].
func (c Comparison) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText implements [encoding.TextMarshaler].
func (f Filter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// MarshalText implements [encoding.TextMarshaler].
func (t Transform) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Comparison) UnmarshalText(text []byte) error {
	return parseMode(c, "comparison", text, comparisons)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Filter) UnmarshalText(text []byte) error {
	return parseMode(f, "filter", text, filters)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *Transform) UnmarshalText(text []byte) error {
	return parseMode(t, "transform", text, transforms)
}

// parseMode sets *dst to the mode whose name is text. Empty text leaves the
// mode unset.
func parseMode[M interface {
	~int
	String() string
}](dst *M, kind string, text []byte, modes []M) error {
	if len(text) == 0 {
		*dst = 0
		return nil
	}
	for _, m := range modes {
		if m.String() == string(text) {
			*dst = m
			return nil
		}
	}
	return fmt.Errorf("%w: unknown %s %q", ErrInvalidArgument, kind, text)
}

// size measures a sequence of n elements. An unset filter measures
// elements, the only filter there is.
func (f Filter) size(n int) int {
	switch f {
	case filterUnset, FilterElements:
		return n
	}
	panic("ensure: unknown filter " + f.String())
}
