// Package trace provides optional run-time observer hooks for the kernel,
// plus a ready-made logging Observer. Hooks are purely diagnostic: a
// Kernel's absence of an Observer, or an Observer with every field nil,
// must not change match outcomes.
//
// The logging Observer's shape (an io.Writer and a fixed message prefix via
// fmt.Fprintf) is adapted from
// KromDaniel-regengo/internal/compiler/logger.go's compile-time verbosity
// logger, retargeted here to run-time kernel tracing.
package trace

import (
	"fmt"
	"io"

	"github.com/coregx/pikekernel/inst"
)

// Observer is a struct of optional callbacks invoked around a kernel run.
// Every field may be left nil; the kernel checks before calling.
type Observer struct {
	Start       func()
	End         func(matchCount int)
	BeforeToken func(sp int)
	AfterToken  func(sp int)
	BeforeInst  func(pc inst.PC, ins inst.Instruction)
	AfterInst   func(pc inst.PC, verdict inst.Verdict)
	OnMatch     func(start int)
	OnFailure   func()
}

// NewLogger returns an Observer that writes one line per event to w for every
// hook except AfterToken, which it leaves nil, mirroring
// the teacher compiler logger's "[prefix] message" formatting but for kernel
// tracing instead of compile-time decisions.
func NewLogger(w io.Writer) Observer {
	const prefix = "[pikekernel]"
	return Observer{
		Start: func() {
			fmt.Fprintf(w, "%s run start\n", prefix)
		},
		End: func(matchCount int) {
			fmt.Fprintf(w, "%s run end: %d match(es)\n", prefix, matchCount)
		},
		BeforeToken: func(sp int) {
			fmt.Fprintf(w, "%s token step sp=%d\n", prefix, sp)
		},
		BeforeInst: func(pc inst.PC, ins inst.Instruction) {
			fmt.Fprintf(w, "%s pc=%d op=%v\n", prefix, pc, ins.Op)
		},
		AfterInst: func(pc inst.PC, verdict inst.Verdict) {
			fmt.Fprintf(w, "%s pc=%d verdict=%v\n", prefix, pc, verdict)
		},
		OnMatch: func(start int) {
			fmt.Fprintf(w, "%s match start=%d\n", prefix, start)
		},
		OnFailure: func() {
			fmt.Fprintf(w, "%s run failed\n", prefix)
		},
	}
}
