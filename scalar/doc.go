// Package scalar infers the type of a YAML scalar from its text, its
// quoting style and its explicit tag.
//
// Precedence, first match wins:
//
//  1. an explicit string tag ("!!str") always yields a string;
//  2. single- and double-quoted scalars are strings;
//  3. the fixed boolean spellings (y, Yes, ON, false, off, ...) yield a bool;
//  4. a whole-string C-style integer (decimal, 0x hex, leading-0 octal)
//     yields an int64;
//  5. a whole-string double, including .nan and [+-].inf, yields a double;
//  6. anything else is a string, verbatim.
package scalar
