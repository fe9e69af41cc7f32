package autodiff

import (
	"fmt"

	"github.com/hupe1980/gradir/indexset"
)

// FindMinimalAnnotation scans the declaration's annotations in declaration
// order and returns the one whose lowered parameter set covers the request
// with the smallest cardinality, together with that lowered set. Ties keep
// the earliest-declared candidate. It returns (nil, nil, nil) when no
// annotation covers the request.
//
// The lowered set is returned at its own capacity so the resulting config
// matches what code generation registered for the annotation.
func FindMinimalAnnotation(decl Declaration, lowerer Lowerer, requested *indexset.Set) (Annotation, *indexset.Set, error) {
	var (
		minimal        Annotation
		minimalLowered *indexset.Set
	)

	for _, ann := range decl.Annotations() {
		lowered, err := lowerer.LowerParameterIndices(decl, ann.ParameterIndices())
		if err != nil {
			return nil, nil, fmt.Errorf("lower annotation parameters of %q: %w", decl.Name(), err)
		}

		// Annotations inherited from un-partial-applied declarations may
		// carry a larger capacity than the request, and vice versa; align
		// both sides before the superset test. Extension never changes
		// membership, so the test is exact in either direction.
		candidate, request := lowered, requested
		switch {
		case candidate.Capacity() > request.Capacity():
			request = request.ExtendedTo(candidate.Capacity())
		case request.Capacity() > candidate.Capacity():
			candidate = candidate.ExtendedTo(request.Capacity())
		}
		if !candidate.IsSupersetOf(request) {
			continue
		}

		// Strictly fewer differentiated parameters than the best so far;
		// equal cardinality keeps the earlier annotation.
		if minimalLowered == nil || lowered.Cardinality() < minimalLowered.Cardinality() {
			minimal = ann
			minimalLowered = lowered
		}
	}

	return minimal, minimalLowered, nil
}
