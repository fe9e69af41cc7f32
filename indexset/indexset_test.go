package indexset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s, err := New(4, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, 4, s.Capacity())
		assert.Equal(t, 2, s.Cardinality())
		assert.True(t, s.Contains(0))
		assert.False(t, s.Contains(1))
		assert.True(t, s.Contains(2))
		assert.False(t, s.Contains(3))
	})

	t.Run("empty", func(t *testing.T) {
		s, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Cardinality())
	})

	t.Run("negative capacity", func(t *testing.T) {
		_, err := New(-1)
		var ec *ErrInvalidCapacity
		require.ErrorAs(t, err, &ec)
		assert.Equal(t, -1, ec.Capacity)
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := New(2, 2)
		var er *ErrIndexOutOfRange
		require.ErrorAs(t, err, &er)
		assert.Equal(t, 2, er.Index)
		assert.Equal(t, 2, er.Capacity)
	})
}

func TestContains_PanicsOutOfRange(t *testing.T) {
	s := MustNew(3, 1)
	assert.Panics(t, func() { s.Contains(3) })
	assert.Panics(t, func() { s.Contains(-1) })
}

func TestIsSupersetOf(t *testing.T) {
	tests := []struct {
		name  string
		super *Set
		sub   *Set
		want  bool
	}{
		{name: "reflexive", super: MustNew(4, 0, 2), sub: MustNew(4, 0, 2), want: true},
		{name: "strict superset", super: MustNew(4, 0, 1, 2), sub: MustNew(4, 0, 2), want: true},
		{name: "disjoint", super: MustNew(4, 0), sub: MustNew(4, 1), want: false},
		{name: "partial overlap", super: MustNew(4, 0, 1), sub: MustNew(4, 1, 2), want: false},
		{name: "empty subset", super: MustNew(4), sub: MustNew(4), want: true},
		{name: "empty never covers nonempty", super: MustNew(4), sub: MustNew(4, 3), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.super.IsSupersetOf(tt.sub))
		})
	}
}

func TestIsSupersetOf_PanicsOnCapacityMismatch(t *testing.T) {
	a := MustNew(2, 0)
	b := MustNew(3, 0)
	assert.Panics(t, func() { a.IsSupersetOf(b) })
}

func TestExtendedTo(t *testing.T) {
	s := MustNew(3, 0, 2)

	ext := s.ExtendedTo(6)
	require.Equal(t, 6, ext.Capacity())

	// Membership below the old capacity is preserved bit for bit.
	for i := 0; i < s.Capacity(); i++ {
		assert.Equal(t, s.Contains(i), ext.Contains(i), "position %d", i)
	}
	// No position in the extension becomes a member.
	for i := s.Capacity(); i < 6; i++ {
		assert.False(t, ext.Contains(i), "position %d", i)
	}

	assert.Equal(t, s.Cardinality(), ext.Cardinality())
}

func TestExtendedTo_SameCapacity(t *testing.T) {
	s := MustNew(3, 1)
	assert.True(t, s.Equal(s.ExtendedTo(3)))
}

func TestExtendedTo_PanicsOnShrink(t *testing.T) {
	s := MustNew(3, 1)
	assert.Panics(t, func() { s.ExtendedTo(2) })
}

func TestEqual(t *testing.T) {
	assert.True(t, MustNew(4, 1, 3).Equal(MustNew(4, 3, 1)))
	assert.False(t, MustNew(4, 1).Equal(MustNew(4, 1, 3)))
	// Equality compares capacity, not just membership.
	assert.False(t, MustNew(4, 1).Equal(MustNew(5, 1)))
	assert.False(t, MustNew(4, 1).Equal(nil))
}

func TestIndicesAndString(t *testing.T) {
	s := MustNew(5, 3, 0, 1)
	assert.Equal(t, []int{0, 1, 3}, s.Indices())
	assert.Equal(t, "{0, 1, 3}/5", s.String())
	assert.Equal(t, "{}/2", MustNew(2).String())
}
