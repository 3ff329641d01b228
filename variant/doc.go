// Package variant implements the tagged parameter value: a container that
// holds at most one of a boolean, a 64-bit integer, a double, a string, or an
// array of one of those.
//
// A Variant charges the memory it owns to the alloc.Allocator passed to its
// mutating methods, and returns it on Dispose. Assigning a new arm always
// releases the previous one. Arrays grow one element at a time; the first
// element appended fixes the element kind.
package variant
