package autodiff

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/gradir/indexset"
)

// InconsistencyError reports a function body whose declared annotations
// promise a witness the registry does not hold. Code generation must
// materialize witnesses for every function definition carrying an explicit
// differentiability annotation, so this indicates a failed earlier pass.
// It is never recovered from by synthesizing a placeholder.
type InconsistencyError struct {
	Function string
	Config   Config
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("witness registry inconsistent: function %q has a body but no witness for %s", e.Function, e.Config)
}

// Resolver resolves derivative witnesses against a registry, deriving
// minimal configurations from source annotations on lookup misses.
type Resolver struct {
	lowerer Lowerer
	logger  *slog.Logger
}

// NewResolver creates a resolver using the given lowering service.
// A nil logger disables logging.
func NewResolver(lowerer Lowerer, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		lowerer: lowerer,
		logger:  logger,
	}
}

// ExactWitnessLookup returns the registered witness whose parameter and
// result sets are exactly equal to the requested ones, or nil. The
// derivative generic constraint is deliberately not part of the match:
// callers asking for exact sets accept whatever constraint the witness
// was materialized under. It never mutates the registry.
func (r *Resolver) ExactWitnessLookup(reg *Registry, fn Function, parameters, results *indexset.Set) *Witness {
	return reg.LookupByIndexSets(fn.Name(), parameters, results)
}

// ResolveOrSynthesize resolves a witness for the requested parameter and
// result sets, synthesizing a declaration-only placeholder when the source
// declaration proves one must exist but none has been materialized.
//
// A nil witness with a nil error means the request is not supported:
// multi-result requests, functions without a source declaration, and
// requests no annotation covers all land here. A non-nil error is reserved
// for lowering failures and *InconsistencyError.
func (r *Resolver) ResolveOrSynthesize(reg *Registry, fn Function, requestedParameters, requestedResults *indexset.Set) (*Witness, error) {
	// Witnesses derived from source annotations model exactly one result.
	if requestedResults.Capacity() != 1 || !requestedResults.Contains(0) {
		return nil, nil
	}

	// Only functions originating from a source declaration can carry
	// differentiability annotations.
	decl := fn.Declaration()
	if decl == nil {
		return nil, nil
	}

	annotation, lowered, err := FindMinimalAnnotation(decl, r.lowerer, requestedParameters)
	if err != nil {
		return nil, err
	}
	if annotation == nil {
		r.logger.Debug("no annotation covers request",
			"function", fn.Name(),
			"parameters", requestedParameters.String(),
		)
		return nil, nil
	}

	minimalConfig := Config{
		Parameters: lowered,
		Results:    requestedResults,
		Constraint: annotation.Constraint(),
	}

	if w := reg.LookupExact(fn.Name(), minimalConfig); w != nil {
		r.logger.Debug("resolved existing witness",
			"function", fn.Name(),
			"config", minimalConfig.Key(),
		)
		return w, nil
	}

	if !fn.IsExternalDeclaration() {
		return nil, &InconsistencyError{Function: fn.Name(), Config: minimalConfig}
	}

	w, created := reg.InsertIfAbsent(NewDeclarationWitness(LinkagePublicExternal, fn.Name(), minimalConfig))
	if created {
		r.logger.Debug("synthesized declaration-only witness",
			"function", fn.Name(),
			"config", minimalConfig.Key(),
		)
	}
	return w, nil
}
