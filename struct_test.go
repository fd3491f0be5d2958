package ensure_test

import (
	"testing"

	"github.com/Gobd/ensure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============ Test types ============

type seat struct {
	Recent []string `ensure:"no_more_than=2,pop"`
}

type player struct {
	History []string `ensure:"no_more_than=3,shift"`
	Slots   []*seat  `ensure:"at_least=3,elements,push"`
	Ignored []int    `ensure:"-"`
	Plain   []int
	Seat    seat
	Partner *player
	Seats   map[string]seat
	ByID    map[int]*seat
	Bench   []seat
}

type badTag struct {
	Items []int `ensure:"at_least=2"`
}

type badKind struct {
	Name string `ensure:"at_least=2,push"`
}

// ============ Tests ============

func TestStruct(t *testing.T) {
	p := &player{
		History: []string{"A", "B", "C", "D"},
		Slots:   []*seat{{Recent: []string{"x", "y", "z"}}},
		Ignored: []int{1, 2, 3, 4, 5},
		Plain:   []int{1},
		Seat:    seat{Recent: []string{"a", "b", "c"}},
		Partner: &player{History: []string{"1", "2", "3", "4", "5"}},
		Seats:   map[string]seat{"north": {Recent: []string{"n1", "n2", "n3", "n4"}}},
		ByID:    map[int]*seat{7: {Recent: []string{"s1", "s2", "s3"}}},
		Bench:   []seat{{Recent: []string{"b1", "b2", "b3"}}},
	}

	require.NoError(t, ensure.Struct(p))

	assert.Equal(t, []string{"B", "C", "D"}, p.History)
	require.Len(t, p.Slots, 3)
	assert.Equal(t, []string{"x", "y"}, p.Slots[0].Recent)
	assert.Nil(t, p.Slots[1])
	assert.Nil(t, p.Slots[2])
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Ignored)
	assert.Equal(t, []int{1}, p.Plain)
	assert.Equal(t, []string{"a", "b"}, p.Seat.Recent)
	assert.Equal(t, []string{"3", "4", "5"}, p.Partner.History)
	assert.Len(t, p.Partner.Slots, 3)
	assert.Equal(t, []string{"n1", "n2"}, p.Seats["north"].Recent)
	assert.Equal(t, []string{"s1", "s2"}, p.ByID[7].Recent)
	assert.Equal(t, []string{"b1", "b2"}, p.Bench[0].Recent)
}

func TestStruct_PointerCycle(t *testing.T) {
	p := &player{History: []string{"A", "B", "C", "D"}}
	p.Partner = p
	shared := &seat{Recent: []string{"x", "y", "z"}}
	p.ByID = map[int]*seat{1: shared, 2: shared}

	require.NoError(t, ensure.Struct(p))
	assert.Same(t, p, p.Partner)
	assert.Equal(t, []string{"B", "C", "D"}, p.History)
	assert.Len(t, p.Slots, 3)
	assert.Equal(t, []string{"x", "y"}, shared.Recent)
}

func TestStruct_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   any
		err  error
	}{
		{name: "nil", in: nil, err: ensure.ErrInvalidArgument},
		{name: "not a pointer", in: player{}, err: ensure.ErrInvalidArgument},
		{name: "nil pointer", in: (*player)(nil), err: ensure.ErrInvalidArgument},
		{name: "pointer to slice", in: &[]int{}, err: ensure.ErrInvalidArgument},
		{name: "tag on non-slice", in: &badKind{Name: "x"}, err: ensure.ErrInvalidTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ensure.Struct(tt.in), tt.err)
		})
	}
}

func TestStruct_BadTag(t *testing.T) {
	err := ensure.Struct(&badTag{Items: []int{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badTag.Items")

	var verrs ensure.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "transform")
}
