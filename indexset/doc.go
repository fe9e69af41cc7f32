// Package indexset provides immutable, fixed-capacity membership sets over
// integer positions.
//
// A Set denotes "which parameters (or results) are active" for a derivative
// computation. Capacities differ between numbering spaces: declaration-level
// annotations are expressed against the declaration's own parameter list,
// while resolution requests arrive in the lowered, flattened
// function-parameter numbering. ExtendedTo embeds a set into a larger
// capacity so the two spaces can be compared without truncating or
// misaligning positions.
//
// Sets are immutable after construction and safe for concurrent reads.
// Capacity misuse (out-of-range Contains, IsSupersetOf across mismatched
// capacities, shrinking ExtendedTo) is a caller contract violation and
// panics rather than returning a wrong answer.
package indexset
