// Package approval tracks per-authority entry decisions for a single visit
// purpose and derives the aggregate outcome reported to the calling flow.
//
// A single approval resolves the visit as approved; the visit is denied only
// once every matched authority has denied it.
package approval
