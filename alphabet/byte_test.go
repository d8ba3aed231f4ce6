package alphabet

import (
	"testing"

	"github.com/coregx/pikekernel/inst"
)

func TestByteExecuteChar(t *testing.T) {
	var b Byte
	instr := Char('a')
	if v := b.Execute(instr.Alpha, 'a', false, false); v != inst.VerdictConsume {
		t.Errorf("matching char: got %v, want Consume", v)
	}
	if v := b.Execute(instr.Alpha, 'b', false, false); v != inst.VerdictDrop {
		t.Errorf("mismatching char: got %v, want Drop", v)
	}
}

func TestByteExecuteAtEndRespectsPartial(t *testing.T) {
	var b Byte
	instr := Char('a')
	if v := b.Execute(instr.Alpha, 0, true, false); v != inst.VerdictDrop {
		t.Errorf("at end, no partial: got %v, want Drop", v)
	}
	if v := b.Execute(instr.Alpha, 0, true, true); v != inst.VerdictMatch {
		t.Errorf("at end, partial: got %v, want Match", v)
	}
}

func TestByteRangeAndClasses(t *testing.T) {
	var b Byte
	r := Range('a', 'z')
	if v := b.Execute(r.Alpha, 'm', false, false); v != inst.VerdictConsume {
		t.Errorf("range match: got %v", v)
	}
	if v := b.Execute(r.Alpha, 'M', false, false); v != inst.VerdictDrop {
		t.Errorf("range mismatch: got %v", v)
	}

	digit := Digit()
	if v := b.Execute(digit.Alpha, '5', false, false); v != inst.VerdictConsume {
		t.Errorf("digit match: got %v", v)
	}
	notDigit := NotDigit()
	if v := b.Execute(notDigit.Alpha, '5', false, false); v != inst.VerdictDrop {
		t.Errorf("not-digit on digit: got %v", v)
	}
	if v := b.Execute(notDigit.Alpha, 'x', false, false); v != inst.VerdictConsume {
		t.Errorf("not-digit on letter: got %v", v)
	}
}

func TestByteTestBackref(t *testing.T) {
	var b Byte
	if !b.TestBackref('a', 'a') {
		t.Error("identical bytes should match")
	}
	if b.TestBackref('a', 'A') {
		t.Error("byte backref is case-sensitive")
	}
}

func TestByteAny(t *testing.T) {
	var b Byte
	if !b.Any('x', false) {
		t.Error("Any should be true with a token present")
	}
	if b.Any(0, true) {
		t.Error("Any should be false at end of input")
	}
}
