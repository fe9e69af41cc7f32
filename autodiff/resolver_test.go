package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/indexset"
	"github.com/hupe1980/gradir/ir"
)

func newResolver() *autodiff.Resolver {
	return autodiff.NewResolver(ir.SignatureLowerer{}, nil)
}

// externalFunc builds an external-declaration function with one annotation
// covering the given declaration-relative indices over n scalar parameters.
func externalFunc(name string, n int, covered ...int) *ir.Func {
	ann := ir.NewAnnotation(indexset.MustNew(n, covered...), nil)
	decl := ir.NewDecl(name, scalarParams(n), ann)
	return ir.NewFunc(name, true, decl)
}

func TestResolveOrSynthesize_SingleResultRestriction(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 2, 0, 1)

	tests := []struct {
		name    string
		results *indexset.Set
	}{
		{name: "capacity two", results: indexset.MustNew(2, 0)},
		{name: "capacity one without position zero", results: indexset.MustNew(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), tt.results)
			require.NoError(t, err)
			assert.Nil(t, w)
		})
	}
	assert.Equal(t, 0, reg.Len())
}

func TestResolveOrSynthesize_NoDeclaration(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := ir.NewFunc("thunk", true, nil)

	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(1, 0), indexset.MustNew(1, 0))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestResolveOrSynthesize_NoQualifyingAnnotation(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 3, 0) // covers only {0}

	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(3, 1), indexset.MustNew(1, 0))
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Equal(t, 0, reg.Len())
}

func TestResolveOrSynthesize_FindsExistingWitness(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 2, 0, 1)

	cfg := config(indexset.MustNew(2, 0, 1), indexset.MustNew(1, 0), nil)
	existing := autodiff.NewDefinedWitness(autodiff.LinkagePublic, "f", cfg, "f_jvp", "f_vjp")
	_, created := reg.InsertIfAbsent(existing)
	require.True(t, created)

	// Requesting {0} lowers to the minimal annotation config {0,1}.
	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), indexset.MustNew(1, 0))
	require.NoError(t, err)
	assert.Same(t, existing, w)
	assert.Equal(t, 1, reg.Len())
}

func TestResolveOrSynthesize_SynthesizesForExternalDeclaration(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 2, 0, 1)

	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), indexset.MustNew(1, 0))
	require.NoError(t, err)
	require.NotNil(t, w)

	assert.Equal(t, "f", w.FunctionName)
	assert.True(t, w.IsDeclarationOnly())
	assert.Equal(t, autodiff.LinkagePublicExternal, w.Linkage)
	// The witness carries the minimal lowered config, not the request.
	assert.True(t, w.Config.Parameters.Equal(indexset.MustNew(2, 0, 1)))
	assert.True(t, w.Config.Results.Equal(indexset.MustNew(1, 0)))
	assert.Equal(t, 1, reg.Len())
}

func TestResolveOrSynthesize_Idempotent(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 2, 0, 1)

	first, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), indexset.MustNew(1, 0))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), indexset.MustNew(1, 0))
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, reg.Len())
}

func TestResolveOrSynthesize_DefinedFunctionWithoutWitnessIsFatal(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()

	// The function has a body (not an external declaration) and an
	// annotation promising a witness, but the registry holds none.
	ann := ir.NewAnnotation(indexset.MustNew(2, 0, 1), nil)
	decl := ir.NewDecl("f", scalarParams(2), ann)
	fn := ir.NewFunc("f", false, decl)

	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 0), indexset.MustNew(1, 0))
	assert.Nil(t, w)

	var ie *autodiff.InconsistencyError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "f", ie.Function)

	// Never patched over: nothing was synthesized.
	assert.Equal(t, 0, reg.Len())
}

func TestResolveOrSynthesize_ConstraintCarriedIntoConfig(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()

	constraint := ir.TextConstraint("T: Differentiable")
	ann := ir.NewAnnotation(indexset.MustNew(2, 0, 1), constraint)
	decl := ir.NewDecl("f", scalarParams(2), ann)
	fn := ir.NewFunc("f", true, decl)

	w, err := resolver.ResolveOrSynthesize(reg, fn, indexset.MustNew(2, 1), indexset.MustNew(1, 0))
	require.NoError(t, err)
	require.NotNil(t, w)
	require.NotNil(t, w.Config.Constraint)
	assert.True(t, w.Config.Constraint.Equal(constraint))
}

func TestExactWitnessLookup(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("f", 2, 0)

	params := indexset.MustNew(2, 0)
	results := indexset.MustNew(1, 0)
	cfg := config(params, results, nil)
	w := autodiff.NewDefinedWitness(autodiff.LinkagePublic, "f", cfg, "f_jvp", "f_vjp")
	reg.InsertIfAbsent(w)

	assert.Same(t, w, resolver.ExactWitnessLookup(reg, fn, params, results))

	// Superset parameter sets do not match.
	assert.Nil(t, resolver.ExactWitnessLookup(reg, fn, indexset.MustNew(2, 0, 1), results))
}

func TestExactWitnessLookup_IgnoresConstraint(t *testing.T) {
	resolver := newResolver()
	reg := autodiff.NewRegistry()
	fn := externalFunc("g", 2, 0)

	params := indexset.MustNew(2, 0)
	results := indexset.MustNew(1, 0)

	// The witness was materialized under a derivative generic constraint;
	// an exact-sets query without one must still find it.
	cfg := config(params, results, ir.TextConstraint("T: Differentiable"))
	w := autodiff.NewDefinedWitness(autodiff.LinkagePublic, "g", cfg, "g_jvp", "g_vjp")
	reg.InsertIfAbsent(w)

	assert.Same(t, w, resolver.ExactWitnessLookup(reg, fn, params, results))
}
