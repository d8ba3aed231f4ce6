package alphabet

import "github.com/coregx/pikekernel/inst"

// Byte is the alphabet.Capability implementation over raw bytes, the
// engine's default alphabet. Character classes are realized as a [256]bool
// table built once per payload, the table-of-booleans idiom the teacher
// used for its byte-class equivalence tables before the compiler package
// carrying them was trimmed as out of scope — the idiom survives the file.
type Byte struct{}

type charPayload struct{ c byte }

type rangePayload struct{ lo, hi byte }

type byteClassPayload struct {
	table  [256]bool
	negate bool
}

// Char returns an OpAlphabet instruction matching exactly c.
func Char(c byte) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: charPayload{c: c}}
}

// Range returns an OpAlphabet instruction matching any byte in [lo, hi].
func Range(lo, hi byte) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: rangePayload{lo: lo, hi: hi}}
}

func buildTable(pred func(byte) bool) [256]bool {
	var t [256]bool
	for i := 0; i < 256; i++ {
		t[i] = pred(byte(i))
	}
	return t
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigitByte(b byte) bool { return b >= '0' && b <= '9' }

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

// Word returns an OpAlphabet instruction matching [0-9A-Za-z_].
func Word() inst.Instruction { return classInst(isWordByte, false) }

// NotWord returns an OpAlphabet instruction matching anything but [0-9A-Za-z_].
func NotWord() inst.Instruction { return classInst(isWordByte, true) }

// Digit returns an OpAlphabet instruction matching [0-9].
func Digit() inst.Instruction { return classInst(isDigitByte, false) }

// NotDigit returns an OpAlphabet instruction matching anything but [0-9].
func NotDigit() inst.Instruction { return classInst(isDigitByte, true) }

// Space returns an OpAlphabet instruction matching ASCII whitespace.
func Space() inst.Instruction { return classInst(isSpaceByte, false) }

// NotSpace returns an OpAlphabet instruction matching anything but ASCII whitespace.
func NotSpace() inst.Instruction { return classInst(isSpaceByte, true) }

func classInst(pred func(byte) bool, negate bool) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: byteClassPayload{table: buildTable(pred), negate: negate}}
}

func byteMatches(payload any, tok byte) bool {
	switch p := payload.(type) {
	case charPayload:
		return tok == p.c
	case rangePayload:
		return tok >= p.lo && tok <= p.hi
	case byteClassPayload:
		return p.table[tok] != p.negate
	default:
		return false
	}
}

// Execute implements Capability[byte].
func (Byte) Execute(payload any, tok byte, atEnd bool, partial bool) inst.Verdict {
	if atEnd {
		if partial {
			return inst.VerdictMatch
		}
		return inst.VerdictDrop
	}
	if !byteMatches(payload, tok) {
		return inst.VerdictDrop
	}
	return inst.VerdictConsume
}

// TestBackref implements Capability[byte]: case-sensitive byte equality.
func (Byte) TestBackref(cur, ref byte) bool { return cur == ref }

// Any implements Capability[byte]: any token is present, so anything but
// end-of-input satisfies it.
func (Byte) Any(_ byte, atEnd bool) bool { return !atEnd }
