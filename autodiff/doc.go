// Package autodiff resolves derivative witnesses for compiled functions.
//
// A witness is a registry record stating that a specific derivative
// computation exists (or will exist) for a function under a specific
// parameter/result selection. Resolution proceeds in three stages:
//
//  1. Exact registry lookup for the requested configuration.
//  2. On miss, the annotation matcher derives the minimal declared
//     configuration that still covers the request ("fewest extra
//     differentiated parameters wins, earliest declaration on ties").
//  3. On a further miss, a declaration-only placeholder witness is
//     synthesized and registered, but only for functions without a body.
//     A function body whose own annotations promise a witness that the
//     registry lacks is an internal inconsistency, surfaced as an
//     *InconsistencyError and never patched over.
//
// Absence of a witness is a normal outcome and is reported as a nil
// witness with a nil error; only lowering failures and registry
// inconsistencies use the error channel.
//
// The IR, declaration, and lowering layers are consumed through the
// Function, Declaration, Annotation, Constraint, and Lowerer interfaces;
// package ir provides in-memory implementations.
package autodiff
