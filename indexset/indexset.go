package indexset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrInvalidCapacity indicates a negative set capacity.
type ErrInvalidCapacity struct {
	Capacity int
}

func (e *ErrInvalidCapacity) Error() string {
	return fmt.Sprintf("invalid capacity: %d", e.Capacity)
}

// ErrIndexOutOfRange indicates a member position outside [0, capacity).
type ErrIndexOutOfRange struct {
	Index    int
	Capacity int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for capacity %d", e.Index, e.Capacity)
}

// Set is an immutable membership set over positions [0, capacity).
// It wraps the official roaring implementation.
type Set struct {
	rb       *roaring.Bitmap
	capacity int
}

// New creates a Set of the given capacity containing exactly the given
// positions. It returns an error if the capacity is negative or any
// position falls outside [0, capacity).
func New(capacity int, indices ...int) (*Set, error) {
	if capacity < 0 {
		return nil, &ErrInvalidCapacity{Capacity: capacity}
	}
	rb := roaring.New()
	for _, i := range indices {
		if i < 0 || i >= capacity {
			return nil, &ErrIndexOutOfRange{Index: i, Capacity: capacity}
		}
		rb.Add(uint32(i))
	}
	return &Set{rb: rb, capacity: capacity}, nil
}

// MustNew is like New but panics on invalid input. Intended for tests and
// compile-time-known literals.
func MustNew(capacity int, indices ...int) *Set {
	s, err := New(capacity, indices...)
	if err != nil {
		panic(fmt.Sprintf("indexset: %v", err))
	}
	return s
}

// Capacity returns the exclusive upper bound of representable positions.
func (s *Set) Capacity() int {
	return s.capacity
}

// Contains reports whether position i is a member.
// It panics if i is outside [0, capacity).
func (s *Set) Contains(i int) bool {
	if i < 0 || i >= s.capacity {
		panic(fmt.Sprintf("indexset: position %d out of range for capacity %d", i, s.capacity))
	}
	return s.rb.Contains(uint32(i))
}

// Cardinality returns the number of member positions.
func (s *Set) Cardinality() int {
	return int(s.rb.GetCardinality())
}

// IsSupersetOf reports whether every member of other is also a member of s.
// Both sets must have equal capacity; callers comparing across numbering
// spaces must align capacities with ExtendedTo first. It panics on a
// capacity mismatch.
func (s *Set) IsSupersetOf(other *Set) bool {
	if s.capacity != other.capacity {
		panic(fmt.Sprintf("indexset: superset test across capacities %d and %d", s.capacity, other.capacity))
	}
	return other.rb.AndCardinality(s.rb) == other.rb.GetCardinality()
}

// ExtendedTo returns a Set of the new capacity with identical membership.
// No new positions become members. It panics if newCapacity is smaller
// than the current capacity.
func (s *Set) ExtendedTo(newCapacity int) *Set {
	if newCapacity < s.capacity {
		panic(fmt.Sprintf("indexset: cannot extend capacity %d to %d", s.capacity, newCapacity))
	}
	if newCapacity == s.capacity {
		return s
	}
	return &Set{rb: s.rb.Clone(), capacity: newCapacity}
}

// Equal reports whether both sets have the same capacity and membership.
func (s *Set) Equal(other *Set) bool {
	if other == nil {
		return false
	}
	return s.capacity == other.capacity && s.rb.Equals(other.rb)
}

// Indices returns the member positions in ascending order.
func (s *Set) Indices() []int {
	out := make([]int, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// String renders the set as "{0, 2}/4" (members / capacity).
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for n, i := range s.Indices() {
		if n > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteString("}/")
	b.WriteString(strconv.Itoa(s.capacity))
	return b.String()
}
