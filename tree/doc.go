// Package tree holds a parsed parameter document: node names mapped to
// per-node parameter tables, each mapping parameter names to a
// variant.Variant.
//
// Both levels are growable tables with an explicit capacity that doubles
// when a new entry does not fit. Lookups are linear scans; documents hold
// tens to a few hundred entries. A name that is already present always
// resolves to its existing slot.
//
// Every name, value and slot is charged to the alloc.Allocator given to
// New, and returned by Finalize.
package tree
