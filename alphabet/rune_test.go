package alphabet

import (
	"testing"

	"github.com/coregx/pikekernel/inst"
)

func TestRuneExecuteChar(t *testing.T) {
	var r Rune
	instr := RuneChar('λ')
	if v := r.Execute(instr.Alpha, 'λ', false, false); v != inst.VerdictConsume {
		t.Errorf("matching rune: got %v", v)
	}
	if v := r.Execute(instr.Alpha, 'x', false, false); v != inst.VerdictDrop {
		t.Errorf("mismatching rune: got %v", v)
	}
}

func TestRuneTestBackrefFold(t *testing.T) {
	plain := Rune{}
	if plain.TestBackref('a', 'A') {
		t.Error("non-folding rune backref should be case-sensitive")
	}

	folding := Rune{Fold: true}
	if !folding.TestBackref('a', 'A') {
		t.Error("folding rune backref should match case-insensitively")
	}
	if !folding.TestBackref('A', 'a') {
		t.Error("folding should be symmetric")
	}
}

func TestRuneClasses(t *testing.T) {
	var r Rune
	word := RuneWord()
	if v := r.Execute(word.Alpha, '_', false, false); v != inst.VerdictConsume {
		t.Errorf("underscore should be a word rune: %v", v)
	}
	space := RuneSpace()
	if v := r.Execute(space.Alpha, ' ', false, false); v != inst.VerdictConsume {
		t.Errorf("space should match RuneSpace: %v", v)
	}
}
