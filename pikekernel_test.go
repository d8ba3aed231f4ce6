package pikekernel

import (
	"testing"

	"github.com/coregx/pikekernel/alphabet"
	"github.com/coregx/pikekernel/inst"
)

func TestEngineRunLiteralUnanchored(t *testing.T) {
	prog := inst.NewProgram(4)
	prog.SetInst(0, inst.Instruction{Op: inst.SaveStart, X: 0})
	prog.SetInst(1, alphabet.Char('a'))
	prog.SetInst(2, inst.Instruction{Op: inst.SaveEnd, X: 0})
	prog.SetInst(3, inst.Instruction{Op: inst.Match})

	e := NewByte(Options{})
	matches, err := e.Run([]byte("bab"), prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 1 || matches[0].Start != 1 {
		t.Fatalf("want one match at 1, got %+v", matches)
	}
}

func TestRuneEngineRunFoldedBackref(t *testing.T) {
	// (a)\1 case-folded: "aA" should match with group0=[0,1).
	prog := inst.NewProgram(5)
	prog.SetInst(0, inst.Instruction{Op: inst.SaveStart, X: 0})
	prog.SetInst(1, alphabet.RuneChar('a'))
	prog.SetInst(2, inst.Instruction{Op: inst.SaveEnd, X: 0})
	prog.SetInst(3, inst.Instruction{Op: inst.Backtrack, X: 0})
	prog.SetInst(4, inst.Instruction{Op: inst.Match})

	e := NewRune(Options{Anchored: true}, true)
	matches, err := e.Run([]rune("aA"), prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("want one match, got %+v", matches)
	}
}
