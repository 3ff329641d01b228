// Package alloc provides the allocation strategy a parameter tree charges
// every name, value and table slot against.
//
// The tree, its node tables, the namespace tracker and every value variant
// hold the same Allocator for their whole lifetime. Default never fails;
// Budget caps the bytes in use and is what tests use to force an
// out-of-memory result at an exact point of a parse or a copy.
package alloc
