// Package token implements the kernel's sliding token buffer and the
// pluggable input-source abstraction it sits on top of. The same buffer
// works over byte streams, Unicode codepoint streams, or any other fixed
// alphabet by parameterizing over the token type T.
package token

// Source is the external, read-only input collaborator the kernel consumes
// (see the core spec's external-interfaces section). Implementations provide
// two read modes: StreamRead for the forward-only scan the kernel drives one
// token at a time, and IndexedRead for the random-access reads backreference
// replay needs to reconstruct a previously captured token range.
type Source[T any] interface {
	// StreamRead copies up to len(buf) tokens starting at the source's
	// current streaming cursor into buf, advancing the cursor by the
	// number of tokens copied. A returned count of 0 with a nil error
	// means the source is exhausted.
	StreamRead(buf []T) (int, error)

	// IndexedRead copies up to len(buf) tokens starting at the absolute
	// index start into buf, independent of the streaming cursor. The
	// returned count is less than len(buf) if the source ends first.
	IndexedRead(buf []T, start int) (int, error)

	// TokenSize reports the width in bytes of one alphabet element.
	TokenSize() int

	// BufferSize reports the desired streaming window size in tokens.
	BufferSize() int
}
