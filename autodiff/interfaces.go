package autodiff

import (
	"github.com/hupe1980/gradir/indexset"
)

// Constraint is an opaque generic constraint attached to a derivative
// configuration. Equality is delegated to the implementing representation.
type Constraint interface {
	Equal(other Constraint) bool
	String() string
}

// constraintsEqual compares two possibly-nil constraints.
func constraintsEqual(a, b Constraint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Annotation is one differentiability annotation declared on a source
// declaration. Its parameter indices are declaration-relative: they have
// not been lowered to the flattened function-parameter numbering.
type Annotation interface {
	// ParameterIndices returns the declared parameter set.
	ParameterIndices() *indexset.Set

	// Constraint returns the derivative generic constraint, or nil.
	Constraint() Constraint
}

// Declaration is a source declaration carrying an ordered annotation list.
// The order is significant: the matcher breaks cardinality ties by keeping
// the earliest-declared candidate.
type Declaration interface {
	Name() string
	Annotations() []Annotation
}

// Function is the compiled-function view this package needs from the IR
// layer: a registry key, a body/declaration distinction, and an optional
// non-owning back-reference to the originating declaration.
type Function interface {
	Name() string

	// IsExternalDeclaration reports whether the function has no body in
	// the current module.
	IsExternalDeclaration() bool

	// Declaration returns the originating source declaration, or nil when
	// the function was not produced from one.
	Declaration() Declaration
}

// Lowerer translates declaration-relative parameter indices into the
// flattened numbering of the compiled function representation. The mapping
// is injective and order-preserving.
type Lowerer interface {
	LowerParameterIndices(decl Declaration, declRelative *indexset.Set) (*indexset.Set, error)
}
