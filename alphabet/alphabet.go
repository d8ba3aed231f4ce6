// Package alphabet supplies the per-token capability the kernel's
// interpreter delegates to for everything that depends on the concrete
// token type: executing OpAlphabet instructions (Char, Range, character
// classes), testing a backreference match, and checking for a present
// token at Any. This is the "tagged-variant instruction type with a
// dispatch switch ... a capability record suffices" design note (§9) made
// concrete, generalized with Go generics instead of the teacher's
// byte-only transition model so the same kernel instantiates over bytes or
// runes.
package alphabet

import "github.com/coregx/pikekernel/inst"

// Capability is the full set of alphabet-specific behavior the kernel needs
// for a token type T. A single implementation value lets the kernel carry
// just one generic parameter instead of three separate collaborators.
type Capability[T any] interface {
	// Execute handles an OpAlphabet instruction's payload against tok.
	// atEnd is true when the buffer has no token at the current position;
	// partial is the kernel's PARTIAL option flag.
	Execute(payload any, tok T, atEnd bool, partial bool) inst.Verdict

	// TestBackref reports whether cur matches ref for Backtrack replay.
	TestBackref(cur, ref T) bool

	// Any reports whether the Any opcode should consume at this position.
	Any(tok T, atEnd bool) bool
}
