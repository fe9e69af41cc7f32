package ir

import (
	"fmt"

	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/indexset"
)

// TextConstraint is a derivative generic constraint compared by its
// textual form. Snapshot round-trips restore constraints as this type.
type TextConstraint string

// Equal implements autodiff.Constraint.
func (c TextConstraint) Equal(other autodiff.Constraint) bool {
	o, ok := other.(TextConstraint)
	return ok && o == c
}

func (c TextConstraint) String() string {
	return string(c)
}

// Annotation is a differentiability annotation attached to a declaration.
type Annotation struct {
	parameters *indexset.Set
	constraint autodiff.Constraint
}

// NewAnnotation creates an annotation over declaration-relative parameter
// indices with an optional (nil) derivative constraint.
func NewAnnotation(parameters *indexset.Set, constraint autodiff.Constraint) *Annotation {
	return &Annotation{
		parameters: parameters,
		constraint: constraint,
	}
}

// ParameterIndices implements autodiff.Annotation.
func (a *Annotation) ParameterIndices() *indexset.Set {
	return a.parameters
}

// Constraint implements autodiff.Annotation.
func (a *Annotation) Constraint() autodiff.Constraint {
	return a.constraint
}

// Param describes one declaration parameter and how many consecutive
// flattened positions it lowers to.
type Param struct {
	Name  string
	Width int // flattened positions, >= 1; 1 for scalar parameters
}

// Decl is a source declaration: an ordered annotation list plus the
// parameter table SignatureLowerer consumes.
type Decl struct {
	name        string
	params      []Param
	annotations []autodiff.Annotation
}

// NewDecl creates a declaration. Annotation order is preserved; the
// matcher relies on it for deterministic tie-breaking.
func NewDecl(name string, params []Param, annotations ...*Annotation) *Decl {
	anns := make([]autodiff.Annotation, len(annotations))
	for i, a := range annotations {
		anns[i] = a
	}
	return &Decl{
		name:        name,
		params:      params,
		annotations: anns,
	}
}

// Name implements autodiff.Declaration.
func (d *Decl) Name() string {
	return d.name
}

// Annotations implements autodiff.Declaration.
func (d *Decl) Annotations() []autodiff.Annotation {
	return d.annotations
}

// Params returns the declaration parameter table.
func (d *Decl) Params() []Param {
	return d.params
}

// Func is a compiled function: a name, a body flag, and an optional
// non-owning back-reference to its originating declaration.
type Func struct {
	name     string
	external bool
	decl     *Decl
}

// NewFunc creates a function backed by the given declaration (nil for
// functions without one, e.g. thunks). external marks functions whose
// body lives in another module.
func NewFunc(name string, external bool, decl *Decl) *Func {
	return &Func{
		name:     name,
		external: external,
		decl:     decl,
	}
}

// Name implements autodiff.Function.
func (f *Func) Name() string {
	return f.name
}

// IsExternalDeclaration implements autodiff.Function.
func (f *Func) IsExternalDeclaration() bool {
	return f.external
}

// Declaration implements autodiff.Function. It returns an untyped nil when
// the function has no declaration.
func (f *Func) Declaration() autodiff.Declaration {
	if f.decl == nil {
		return nil
	}
	return f.decl
}

// SignatureLowerer lowers declaration-relative parameter indices through a
// Decl's parameter table.
type SignatureLowerer struct{}

// LowerParameterIndices implements autodiff.Lowerer. The lowered set's
// capacity is the total flattened parameter count of the declaration; each
// member of declRelative contributes every flattened position of the
// corresponding declaration parameter.
func (SignatureLowerer) LowerParameterIndices(decl autodiff.Declaration, declRelative *indexset.Set) (*indexset.Set, error) {
	d, ok := decl.(*Decl)
	if !ok {
		return nil, fmt.Errorf("ir: cannot lower against declaration type %T", decl)
	}

	if declRelative.Capacity() > len(d.params) {
		return nil, fmt.Errorf("ir: annotation capacity %d exceeds %d parameters of %q",
			declRelative.Capacity(), len(d.params), d.name)
	}

	offsets := make([]int, len(d.params))
	total := 0
	for i, p := range d.params {
		if p.Width < 1 {
			return nil, fmt.Errorf("ir: parameter %q of %q has width %d", p.Name, d.name, p.Width)
		}
		offsets[i] = total
		total += p.Width
	}

	var flattened []int
	for _, i := range declRelative.Indices() {
		for w := 0; w < d.params[i].Width; w++ {
			flattened = append(flattened, offsets[i]+w)
		}
	}
	return indexset.New(total, flattened...)
}
