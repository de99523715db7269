// Package primitives defines the small, value-typed, copy-safe handles the
// lock manager operates on: table, page, and row identities, plus the
// opaque values exchanged with the buffer manager. None of these types
// carry behavior beyond identity and validity — they are meant to be
// cheap to pass by value and safe to use as map keys.
package primitives
