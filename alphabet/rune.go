package alphabet

import (
	"unicode"

	"github.com/coregx/pikekernel/inst"
)

// Rune is the alphabet.Capability implementation over Unicode codepoints.
// Fold enables case-insensitive backreference testing via
// unicode.SimpleFold — the one ambient sub-concern that stays on the
// standard library: no third-party Unicode case-folding library appears
// anywhere in the retrieved corpus (see DESIGN.md).
type Rune struct {
	Fold bool
}

type runeCharPayload struct{ c rune }

type runeRangePayload struct{ lo, hi rune }

type runeClassPayload struct {
	pred   func(rune) bool
	negate bool
}

// RuneChar returns an OpAlphabet instruction matching exactly c.
func RuneChar(c rune) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: runeCharPayload{c: c}}
}

// RuneRange returns an OpAlphabet instruction matching any rune in [lo, hi].
func RuneRange(lo, hi rune) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: runeRangePayload{lo: lo, hi: hi}}
}

// RuneWord returns an OpAlphabet instruction matching word runes (letters,
// digits, underscore, per unicode.IsLetter/IsDigit).
func RuneWord() inst.Instruction { return runeClassInst(isWordRune, false) }

// RuneNotWord negates RuneWord.
func RuneNotWord() inst.Instruction { return runeClassInst(isWordRune, true) }

// RuneDigit returns an OpAlphabet instruction matching unicode.IsDigit.
func RuneDigit() inst.Instruction { return runeClassInst(unicode.IsDigit, false) }

// RuneNotDigit negates RuneDigit.
func RuneNotDigit() inst.Instruction { return runeClassInst(unicode.IsDigit, true) }

// RuneSpace returns an OpAlphabet instruction matching unicode.IsSpace.
func RuneSpace() inst.Instruction { return runeClassInst(unicode.IsSpace, false) }

// RuneNotSpace negates RuneSpace.
func RuneNotSpace() inst.Instruction { return runeClassInst(unicode.IsSpace, true) }

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runeClassInst(pred func(rune) bool, negate bool) inst.Instruction {
	return inst.Instruction{Op: inst.OpAlphabet, Alpha: runeClassPayload{pred: pred, negate: negate}}
}

func runeMatches(payload any, tok rune) bool {
	switch p := payload.(type) {
	case runeCharPayload:
		return tok == p.c
	case runeRangePayload:
		return tok >= p.lo && tok <= p.hi
	case runeClassPayload:
		return p.pred(tok) != p.negate
	default:
		return false
	}
}

// Execute implements Capability[rune].
func (Rune) Execute(payload any, tok rune, atEnd bool, partial bool) inst.Verdict {
	if atEnd {
		if partial {
			return inst.VerdictMatch
		}
		return inst.VerdictDrop
	}
	if !runeMatches(payload, tok) {
		return inst.VerdictDrop
	}
	return inst.VerdictConsume
}

// TestBackref implements Capability[rune]: exact equality, or
// simple-case-folded equality when Fold is set.
func (r Rune) TestBackref(cur, ref rune) bool {
	if cur == ref {
		return true
	}
	if !r.Fold {
		return false
	}
	for f := unicode.SimpleFold(ref); f != ref; f = unicode.SimpleFold(f) {
		if f == cur {
			return true
		}
	}
	return false
}

// Any implements Capability[rune].
func (Rune) Any(_ rune, atEnd bool) bool { return !atEnd }
