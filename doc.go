// Package gradir resolves derivative witnesses for the functions of a
// compilation module.
//
// A witness records that a derivative computation exists (or will exist)
// for a function under a specific parameter/result selection. Resolution
// prefers an exact registry match, falls back to the cheapest declared
// annotation that covers the request, and synthesizes a declaration-only
// placeholder when the declaration proves a witness must exist but none
// has been materialized.
//
// # Quick Start
//
//	decl := ir.NewDecl("f", []ir.Param{{Name: "x", Width: 1}, {Name: "y", Width: 1}},
//	    ir.NewAnnotation(indexset.MustNew(2, 0, 1), nil))
//
//	m := gradir.NewModule("main")
//	_ = m.AddFunction(ir.NewFunc("f", true, decl))
//
//	w, err := m.ResolveWitness("f", indexset.MustNew(2, 0), indexset.MustNew(1, 0))
//
// # Snapshot Caching
//
// Registries can be published to and restored from a blobstore, giving
// repeated builds a shared derivative-witness cache:
//
//	store := blobstore.NewLocalStore("./cache")
//	_ = m.SaveSnapshot(ctx, store, "witnesses.snap")
//	n, _ := m.LoadSnapshot(ctx, store, "witnesses.snap")
package gradir
