package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/indexset"
)

func TestTextConstraint_Equal(t *testing.T) {
	assert.True(t, TextConstraint("T: Differentiable").Equal(TextConstraint("T: Differentiable")))
	assert.False(t, TextConstraint("T: Differentiable").Equal(TextConstraint("U: Differentiable")))
	assert.False(t, TextConstraint("T: Differentiable").Equal(nil))
}

func TestSignatureLowerer(t *testing.T) {
	lowerer := SignatureLowerer{}

	t.Run("scalar parameters lower one to one", func(t *testing.T) {
		decl := NewDecl("f", []Param{{Name: "x", Width: 1}, {Name: "y", Width: 1}})

		got, err := lowerer.LowerParameterIndices(decl, indexset.MustNew(2, 1))
		require.NoError(t, err)
		assert.True(t, got.Equal(indexset.MustNew(2, 1)))
	})

	t.Run("tuple parameter explodes to consecutive positions", func(t *testing.T) {
		decl := NewDecl("g", []Param{
			{Name: "x", Width: 1},
			{Name: "pair", Width: 2},
			{Name: "z", Width: 1},
		})

		// Declaration-relative {1} covers both halves of the pair.
		got, err := lowerer.LowerParameterIndices(decl, indexset.MustNew(3, 1))
		require.NoError(t, err)
		assert.True(t, got.Equal(indexset.MustNew(4, 1, 2)))

		// Order-preserving: {0, 2} skips the exploded pair.
		got, err = lowerer.LowerParameterIndices(decl, indexset.MustNew(3, 0, 2))
		require.NoError(t, err)
		assert.True(t, got.Equal(indexset.MustNew(4, 0, 3)))
	})

	t.Run("capacity beyond parameter count", func(t *testing.T) {
		decl := NewDecl("h", []Param{{Name: "x", Width: 1}})

		_, err := lowerer.LowerParameterIndices(decl, indexset.MustNew(2, 0))
		assert.Error(t, err)
	})

	t.Run("invalid width", func(t *testing.T) {
		decl := NewDecl("h", []Param{{Name: "x", Width: 0}})

		_, err := lowerer.LowerParameterIndices(decl, indexset.MustNew(1, 0))
		assert.Error(t, err)
	})

	t.Run("foreign declaration type", func(t *testing.T) {
		_, err := lowerer.LowerParameterIndices(fakeDecl{}, indexset.MustNew(1, 0))
		assert.Error(t, err)
	})
}

func TestFunc_Declaration_NilSafe(t *testing.T) {
	fn := NewFunc("thunk", false, nil)
	// Must be an untyped nil, not a typed-nil interface.
	assert.Nil(t, fn.Declaration())

	decl := NewDecl("f", []Param{{Name: "x", Width: 1}})
	fn = NewFunc("f", true, decl)
	require.NotNil(t, fn.Declaration())
	assert.Equal(t, "f", fn.Declaration().Name())
}

type fakeDecl struct{}

func (fakeDecl) Name() string { return "fake" }

func (fakeDecl) Annotations() []autodiff.Annotation { return nil }
