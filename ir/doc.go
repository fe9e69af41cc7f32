// Package ir provides in-memory implementations of the collaborator
// contracts consumed by package autodiff: functions, declarations,
// annotations, constraints, and signature lowering.
//
// A declaration's parameters are described by a lowering table: each
// declaration-relative parameter expands to one or more consecutive
// positions in the flattened function-parameter numbering (tuple
// parameters explode, curried self appends). SignatureLowerer applies
// that table, producing an injective, order-preserving mapping.
package ir
