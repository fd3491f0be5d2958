package ensure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Policy is the declarative form of a chain: how to measure a target, how
// to judge it and how to correct it. The zero Filter measures elements.
//
// Policies decode from YAML or JSON:
//
//	comparison: no_more_than
//	quantity: 3
//	transform: shift
type Policy struct {
	Comparison Comparison `json:"comparison" yaml:"comparison"`
	Quantity   int        `json:"quantity" yaml:"quantity"`
	Filter     Filter     `json:"filter,omitempty" yaml:"filter,omitempty"`
	Transform  Transform  `json:"transform" yaml:"transform"`
}

// Validate checks that every mode is set to a known value and that the
// quantity is not negative. Errors are keyed by json field name.
func (p Policy) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Comparison, validation.Required, validation.In(CompareAtLeast, CompareNoMoreThan)),
		validation.Field(&p.Quantity, validation.Min(0)),
		validation.Field(&p.Filter, validation.In(FilterElements)),
		validation.Field(&p.Transform, validation.Required,
			validation.In(TransformPop, TransformPush, TransformShift, TransformUnshift)),
	)
}

// compare returns how many elements a target of the given length lies
// outside the bound. Zero means the target is acceptable.
func (p Policy) compare(length int) int {
	measured := p.Filter.size(length)
	switch p.Comparison {
	case CompareNoMoreThan:
		if measured <= p.Quantity {
			return 0
		}
		return measured - p.Quantity
	case CompareAtLeast:
		if measured >= p.Quantity {
			return 0
		}
		return p.Quantity - measured
	}
	return 0
}

// Rule returns the size check of p as a validation rule that never mutates.
func (p Policy) Rule() Rule {
	return sizeRule{cmp: p.Comparison, quantity: p.Quantity}
}

// String renders p in the tag form accepted by [ParseTag].
func (p Policy) String() string {
	var parts []string
	if p.Comparison != comparisonUnset {
		parts = append(parts, fmt.Sprintf("%s=%d", p.Comparison, p.Quantity))
	}
	if p.Filter != filterUnset {
		parts = append(parts, p.Filter.String())
	}
	if p.Transform != transformUnset {
		parts = append(parts, p.Transform.String())
	}
	return strings.Join(parts, ",")
}

// ParsePolicy decodes a single YAML or JSON policy document and validates it.
// Unknown keys are rejected.
func ParsePolicy(b []byte) (Policy, error) {
	var p Policy
	if err := decodeStrict(b, &p); err != nil {
		return Policy{}, err
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// ParsePolicies decodes a YAML or JSON mapping of names to policies and
// validates each one. Validation failures are reported as [ValidationErrors]
// keyed by policy name.
func ParsePolicies(b []byte) (map[string]Policy, error) {
	var m map[string]Policy
	if err := decodeStrict(b, &m); err != nil {
		return nil, err
	}
	errs := validation.Errors{}
	for name, p := range m {
		if err := p.Validate(); err != nil {
			errs[name] = err
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return m, nil
}

func decodeStrict(b []byte, dst any) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty policy document", ErrInvalidArgument)
		}
		return err
	}
	return nil
}

// ParseTag parses the compact policy form used in `ensure` struct tags:
// a comma separated list holding one comparison with its quantity, an
// optional filter and one transform. Empty and repeated parts are rejected.
//
//	no_more_than=3,shift
//	at_least=6,elements,push
func ParseTag(tag string) (Policy, error) {
	var p Policy
	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)
		name, value, hasValue := strings.Cut(part, "=")
		switch {
		case part == "":
			return Policy{}, fmt.Errorf("%w: empty part in tag %q", ErrInvalidArgument, tag)
		case hasValue:
			if p.Comparison != comparisonUnset {
				return Policy{}, fmt.Errorf("%w: repeated comparison %q in tag %q", ErrInvalidArgument, part, tag)
			}
			if err := p.Comparison.UnmarshalText([]byte(name)); err != nil {
				return Policy{}, err
			}
			n, ok := atoi(value)
			if !ok {
				return Policy{}, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalidArgument, value)
			}
			p.Quantity = n
		case name == FilterElements.String():
			if p.Filter != filterUnset {
				return Policy{}, fmt.Errorf("%w: repeated filter %q in tag %q", ErrInvalidArgument, part, tag)
			}
			p.Filter = FilterElements
		default:
			if p.Transform != transformUnset {
				return Policy{}, fmt.Errorf("%w: repeated transform %q in tag %q", ErrInvalidArgument, part, tag)
			}
			if err := p.Transform.UnmarshalText([]byte(name)); err != nil {
				return Policy{}, err
			}
		}
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
