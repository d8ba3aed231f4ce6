package inst

import "testing"

func TestProgramGetSetInst(t *testing.T) {
	p := NewProgram(3)
	p.SetInst(0, Instruction{Op: Jmp, X: 2})
	p.SetInst(1, Instruction{Op: Match})
	p.SetInst(2, Instruction{Op: Any})

	got, ok := p.GetInst(0)
	if !ok || got.Op != Jmp || got.X != 2 {
		t.Fatalf("GetInst(0) = %+v, %v", got, ok)
	}
	if _, ok := p.GetInst(-1); ok {
		t.Error("GetInst(-1) should report false")
	}
	if _, ok := p.GetInst(PC(p.Len())); ok {
		t.Error("GetInst(len) should report false")
	}
}

func TestVerdictHasBits(t *testing.T) {
	v := VerdictConsume | VerdictMatch
	if !v.Has(VerdictConsume) || !v.Has(VerdictMatch) {
		t.Fatal("expected both bits set")
	}
	if v.Has(VerdictHalt) || v.Has(VerdictDrop) {
		t.Fatal("unexpected bits set")
	}
}
