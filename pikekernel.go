// Package pikekernel is a Pike-VM-style regular expression execution
// kernel: the runtime layer a pattern compiler targets, not a pattern
// compiler itself. Callers hand it an already-compiled inst.Pattern (a
// sequence of Match/Jmp/Split/Save/Backtrack/Branch/alphabet instructions)
// and a token source; the kernel simulates every live thread of execution
// in lockstep, breadth-first. In the standard dedup mode at most one thread
// per instruction is admitted per token step, giving O(tokens * instructions)
// time for patterns without backreferences; BacktrackMatching mode and
// Backtrack replays admit more than one thread per instruction, so their
// cost also grows with the number of distinct capture shapes and replays.
//
// The engine is parameterized over its token alphabet via Go generics:
// NewByte drives byte-oriented matching, NewRune drives Unicode-codepoint
// matching, and any other alphabet.Capability[T] implementation plugs in
// the same way.
//
// Basic usage:
//
//	prog := inst.NewProgram(4)
//	prog.SetInst(0, alphabet.Char('a'))
//	prog.SetInst(1, inst.Instruction{Op: inst.Match})
//	k := pikekernel.NewByte(pikekernel.Options{})
//	matches, err := k.Run([]byte("bab"), prog)
//	// matches[0].Start == 1
package pikekernel

import (
	"github.com/coregx/pikekernel/alphabet"
	"github.com/coregx/pikekernel/inst"
	"github.com/coregx/pikekernel/kernel"
	"github.com/coregx/pikekernel/token"
)

// Options mirrors kernel.Options; re-exported here so callers never need to
// import the kernel package directly for the common case.
type Options = kernel.Options

// Match is one completed match against the input: the token index it
// started at and every capture group recorded along the way, keyed by
// capture group id (group 0 is whatever the compiled pattern saved there,
// conventionally the whole-match span).
type Match = kernel.MatchResult

// Engine runs a single compiled inst.Pattern against byte input.
//
// An Engine is not safe for concurrent Run calls; construct one per
// goroutine, or call Reset between sequential uses.
type Engine struct {
	k *kernel.Kernel[byte]
}

// NewByte returns an Engine that matches against raw byte input.
func NewByte(opts Options) *Engine {
	return &Engine{k: kernel.New[byte](alphabet.Byte{}, opts)}
}

// Run executes prog against input starting at offset 0 and returns every
// match found (every, if the pattern and options allow more than one
// distinct result — see kernel.Options.BacktrackMatching).
func (e *Engine) Run(input []byte, prog inst.Pattern) ([]Match, error) {
	return e.RunAt(input, 0, prog)
}

// RunAt executes prog against input starting at the given token offset.
func (e *Engine) RunAt(input []byte, offset int, prog inst.Pattern) ([]Match, error) {
	buf := token.NewBuffer[byte](token.NewMemory(input, 1))
	return e.k.Execute(buf, offset, prog)
}

// Reset clears the Engine's internal state so it can be reused for a fresh
// Run/RunAt call on the same goroutine.
func (e *Engine) Reset() {
	e.k.Reset()
}

// RuneEngine runs a single compiled inst.Pattern against Unicode codepoint
// input, optionally case-folding backreferences (see alphabet.Rune.Fold).
type RuneEngine struct {
	k *kernel.Kernel[rune]
}

// NewRune returns a RuneEngine that matches against rune input. fold
// enables case-insensitive backreference comparison.
func NewRune(opts Options, fold bool) *RuneEngine {
	return &RuneEngine{k: kernel.New[rune](alphabet.Rune{Fold: fold}, opts)}
}

// Run executes prog against input starting at rune offset 0.
func (e *RuneEngine) Run(input []rune, prog inst.Pattern) ([]Match, error) {
	return e.RunAt(input, 0, prog)
}

// RunAt executes prog against input starting at the given rune offset.
func (e *RuneEngine) RunAt(input []rune, offset int, prog inst.Pattern) ([]Match, error) {
	buf := token.NewBuffer[rune](token.NewMemory(input, 4))
	return e.k.Execute(buf, offset, prog)
}

// Reset clears the RuneEngine's internal state so it can be reused for a
// fresh Run/RunAt call on the same goroutine.
func (e *RuneEngine) Reset() {
	e.k.Reset()
}
