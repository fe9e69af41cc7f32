package gradir

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gradir/autodiff"
	"github.com/hupe1980/gradir/blobstore"
	"github.com/hupe1980/gradir/codec"
	"github.com/hupe1980/gradir/indexset"
	"github.com/hupe1980/gradir/ir"
	"github.com/hupe1980/gradir/snapshot"
)

// Module owns a compilation module's function table and witness registry
// and drives resolution against them.
type Module struct {
	name        string
	mu          sync.RWMutex
	functions   map[string]autodiff.Function
	registry    *autodiff.Registry
	resolver    *autodiff.Resolver
	logger      *Logger
	codec       codec.Codec
	compression snapshot.Compression
}

// NewModule creates an empty module.
func NewModule(name string, optFns ...Option) *Module {
	opts := moduleOptions{
		logger:      NoopLogger(),
		lowerer:     ir.SignatureLowerer{},
		codec:       codec.Default,
		compression: snapshot.CompressionZstd,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.logger.WithModule(name)

	return &Module{
		name:        name,
		functions:   make(map[string]autodiff.Function),
		registry:    autodiff.NewRegistry(),
		resolver:    autodiff.NewResolver(opts.lowerer, logger.Logger),
		logger:      logger,
		codec:       opts.codec,
		compression: opts.compression,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return m.name
}

// Registry returns the module's witness registry.
func (m *Module) Registry() *autodiff.Registry {
	return m.registry
}

// AddFunction registers a function with the module.
func (m *Module) AddFunction(fn autodiff.Function) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.functions[fn.Name()]; exists {
		return &ErrDuplicateFunction{Name: fn.Name()}
	}
	m.functions[fn.Name()] = fn
	return nil
}

// Function returns the registered function with the given name.
func (m *Module) Function(name string) (autodiff.Function, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fn, ok := m.functions[name]
	return fn, ok
}

// ResolveWitness resolves (or synthesizes) a witness for the requested
// parameter and result index sets of the named function.
//
// Expected absence (unsupported result shape, no source declaration, or
// no covering annotation) is reported as ErrWitnessNotAvailable.
// A registry inconsistency surfaces as *autodiff.InconsistencyError.
func (m *Module) ResolveWitness(functionName string, parameters, results *indexset.Set) (*autodiff.Witness, error) {
	fn, ok := m.Function(functionName)
	if !ok {
		return nil, &ErrUnknownFunction{Name: functionName}
	}

	w, err := m.resolver.ResolveOrSynthesize(m.registry, fn, parameters, results)
	if err != nil {
		m.logger.LogResolve(functionName, "", err)
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: %s parameters %s", ErrWitnessNotAvailable, functionName, parameters)
	}

	m.logger.LogResolve(functionName, w.Config.Key(), nil)
	return w, nil
}

// ExactWitness returns the witness registered for exactly the given
// parameter and result sets, regardless of its constraint, or nil.
// It never mutates the registry.
func (m *Module) ExactWitness(functionName string, parameters, results *indexset.Set) *autodiff.Witness {
	return m.registry.LookupByIndexSets(functionName, parameters, results)
}

// ResolveRequest names one witness resolution for ResolveAll.
type ResolveRequest struct {
	Function   string
	Parameters *indexset.Set
	Results    *indexset.Set
}

// ResolveAll resolves several requests concurrently. Registry inserts are
// atomic, so parallel synthesis keeps the one-witness-per-config
// invariant. The result slice is index-aligned with the requests; it
// fails fast on the first hard error, while per-request absence is
// reported in place as a nil witness.
func (m *Module) ResolveAll(ctx context.Context, requests []ResolveRequest) ([]*autodiff.Witness, error) {
	witnesses := make([]*autodiff.Witness, len(requests))

	g, _ := errgroup.WithContext(ctx)
	for i, req := range requests {
		g.Go(func() error {
			w, err := m.ResolveWitness(req.Function, req.Parameters, req.Results)
			if err != nil {
				if errors.Is(err, ErrWitnessNotAvailable) {
					return nil
				}
				return err
			}
			witnesses[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return witnesses, nil
}

// SaveSnapshot publishes the registry to the store under name.
func (m *Module) SaveSnapshot(ctx context.Context, store blobstore.Store, name string) error {
	err := snapshot.Publish(ctx, store, name, m.registry,
		snapshot.WithCodec(m.codec),
		snapshot.WithCompression(m.compression),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", name, err)
	}

	m.logger.Debug("snapshot saved", "name", name, "witnesses", m.registry.Len())
	return nil
}

// LoadSnapshot restores witnesses from the named snapshot into the
// registry. Existing entries win. Returns the number of witnesses added.
func (m *Module) LoadSnapshot(ctx context.Context, store blobstore.Store, name string) (int, error) {
	inserted, err := snapshot.Fetch(ctx, store, name, m.registry)
	if err != nil {
		return 0, fmt.Errorf("load snapshot %q: %w", name, err)
	}

	m.logger.Debug("snapshot loaded", "name", name, "inserted", inserted)
	return inserted, nil
}
