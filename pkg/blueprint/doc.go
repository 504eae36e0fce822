// Package blueprint models parsed blueprint documents and their part entries.
//
// A [Document] holds the original file bytes plus an ordered list of
// [PartRef] entries locating every part identifier by byte offset. Rewriting
// works by splicing replacement identifiers into the raw buffer, so every
// byte outside the substituted identifiers survives unchanged: whitespace,
// attribute order, comments, and unrelated elements are preserved exactly.
//
// Parsing is format-polymorphic behind the [Parser] interface. The package
// ships an SBC (Space Engineers blueprint XML) parser; additional formats can
// be registered by callers without the rest of the system branching on
// format.
package blueprint
