package ensure

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to create a fresh schema + ref for each test
func newTestSchemaRef() (*openapi3.Schema, *openapi3.SchemaRef) {
	schema := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{
		Value: openapi3.NewArraySchema(),
	}
	return schema, ref
}

func TestSizeRule_Validate(t *testing.T) {
	tests := []struct {
		name        string
		rule        Rule
		value       any
		expectError bool
	}{
		{name: "at least ok", rule: AtLeast(2), value: []int{1, 2}},
		{name: "at least short", rule: AtLeast(3), value: []int{1, 2}, expectError: true},
		{name: "no more than ok", rule: NoMoreThan(2), value: []string{"a"}},
		{name: "no more than long", rule: NoMoreThan(1), value: []string{"a", "b"}, expectError: true},
		{name: "no more than zero", rule: NoMoreThan(0), value: []string{"a"}, expectError: true},
		{name: "array", rule: AtLeast(4), value: [3]int{}, expectError: true},
		{name: "map", rule: NoMoreThan(1), value: map[string]int{"a": 1, "b": 2}, expectError: true},
		{name: "string", rule: AtLeast(2), value: "ab"},
		{name: "pointer to slice", rule: NoMoreThan(1), value: &[]int{1, 2}, expectError: true},
		{name: "nil slice passes", rule: AtLeast(1), value: []int(nil)},
		{name: "nil pointer passes", rule: AtLeast(1), value: (*[]int)(nil)},
		{name: "not measurable", rule: AtLeast(1), value: 5, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate(tt.value)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSizeRule_DoesNotMutate(t *testing.T) {
	s := []int{1, 2, 3}
	require.Error(t, NoMoreThan(1).Validate(s))
	assert.Equal(t, []int{1, 2, 3}, s)
}

func TestSizeRule_ErrorCodes(t *testing.T) {
	err := AtLeast(3).Validate([]int{1})
	var verr validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation_ensure_too_short", verr.Code())
	assert.Equal(t, "must have at least 3 elements", verr.Error())

	err = NoMoreThan(1).Validate([]int{1, 2})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation_ensure_too_long", verr.Code())
	assert.Equal(t, "must have no more than 1 elements", verr.Error())
}

func TestSizeRule_WithOzzo(t *testing.T) {
	hand := []string{"A", "B", "C", "D"}
	err := validation.Validate(hand, validation.Required, NoMoreThan(3))
	assert.EqualError(t, err, "must have no more than 3 elements")

	type player struct {
		Hand []string
	}
	p := player{Hand: hand}
	err = validation.ValidateStruct(&p, validation.Field(&p.Hand, AtLeast(5)))
	assert.EqualError(t, err, "Hand: must have at least 5 elements.")
}

func TestDescribe_AtLeast(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := AtLeast(2).Describe("hand", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), ref.Value.MinItems)
	assert.Nil(t, ref.Value.MaxItems)
}

func TestDescribe_NoMoreThan(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := NoMoreThan(5).Describe("hand", schema, ref)
	require.NoError(t, err)

	require.NotNil(t, ref.Value.MaxItems)
	assert.Equal(t, uint64(5), *ref.Value.MaxItems)
}

func TestDescribe_PolicyRuleBounds(t *testing.T) {
	schema, ref := newTestSchemaRef()

	lo := Policy{Comparison: CompareAtLeast, Quantity: 1, Transform: TransformPush}
	hi := Policy{Comparison: CompareNoMoreThan, Quantity: 3, Transform: TransformShift}
	for _, r := range []Rule{lo.Rule(), hi.Rule()} {
		require.NoError(t, r.Describe("history", schema, ref))
	}

	assert.Equal(t, uint64(1), ref.Value.MinItems)
	require.NotNil(t, ref.Value.MaxItems)
	assert.Equal(t, uint64(3), *ref.Value.MaxItems)
	assert.NoError(t, ref.Value.VisitJSON([]any{"a", "b"}))
	assert.Error(t, ref.Value.VisitJSON([]any{"a", "b", "c", "d"}))
}

func TestDescribe_Errors(t *testing.T) {
	schema, ref := newTestSchemaRef()

	assert.ErrorIs(t, AtLeast(-1).Describe("x", schema, ref), ErrInvalidArgument)
	assert.ErrorIs(t, Policy{}.Rule().Describe("x", schema, ref), ErrIncompleteChain)
}
