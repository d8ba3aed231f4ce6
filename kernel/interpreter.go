package kernel

import (
	"github.com/coregx/pikekernel/alphabet"
	"github.com/coregx/pikekernel/branch"
	"github.com/coregx/pikekernel/inst"
	"github.com/coregx/pikekernel/internal/conv"
)

// interpreter is a pure-ish function of (kernel, thread, instruction,
// current token) producing a verdict bitmask. Unlike the distilled spec's
// framing, PC mutation lives entirely here rather than split between the
// interpreter and the driver's generic "Step: PC+1" handling — Jmp/Split/
// Branch set explicit targets, everything else increments by one, and the
// driver only ever looks at the returned Verdict to decide how to requeue.
// This keeps ownership of "what PC comes next" in one place.
type interpreter[T any] struct {
	alpha alphabet.Capability[T]
}

func (in *interpreter[T]) step(k *Kernel[T], t *Thread[T], ins inst.Instruction, tok T, atEnd bool) inst.Verdict {
	switch ins.Op {
	case inst.Match:
		return inst.VerdictMatch

	case inst.Jmp:
		t.pc = inst.PC(ins.X)
		return inst.VerdictStep

	case inst.Split:
		clone := t.clone(k.graph)
		clone.pc = inst.PC(ins.Y)
		t.pc = inst.PC(ins.X)
		if !k.cur.PushHead(clone) {
			k.dropThread(clone)
		}
		return inst.VerdictStep

	case inst.Any:
		if !in.alpha.Any(tok, atEnd) {
			return inst.VerdictDrop
		}
		t.pc++
		return inst.VerdictConsume

	case inst.SaveStart:
		t.caps = t.caps.SaveStart(conv.IntToUint32(int(ins.X)), k.sp)
		t.pc++
		return inst.VerdictStep

	case inst.SaveEnd:
		t.caps = t.caps.SaveEnd(conv.IntToUint32(int(ins.X)), k.sp)
		t.pc++
		return inst.VerdictStep

	case inst.Start:
		if k.sp != 0 {
			return inst.VerdictDrop
		}
		t.pc++
		return inst.VerdictStep

	case inst.End:
		if !atEnd {
			return inst.VerdictDrop
		}
		t.pc++
		return inst.VerdictStep

	case inst.Backtrack:
		return in.stepBacktrack(k, t, ins, tok, atEnd)

	case inst.Branch:
		j := k.enterBranch(t, inst.PC(ins.X), inst.PC(ins.Y), false)
		if !k.cur.PushHead(j) {
			k.dropThread(j)
		}
		return inst.VerdictStep

	case inst.NegBranch:
		j := k.enterBranch(t, inst.PC(ins.X), inst.PC(ins.Y), true)
		if !k.cur.PushHead(j) {
			k.dropThread(j)
		}
		return inst.VerdictStep

	case inst.OpAlphabet:
		partial := k.opts.Partial && t.ref == branch.None
		v := in.alpha.Execute(ins.Alpha, tok, atEnd, partial)
		if v == inst.VerdictConsume {
			t.pc++
		}
		return v

	default:
		return inst.VerdictHalt
	}
}

// stepBacktrack implements §4.4. On first entry it snapshots the most
// recently completed capture's tokens via an indexed read; on that entry
// and every later one it compares the current token against the next token
// in that snapshot.
func (in *interpreter[T]) stepBacktrack(k *Kernel[T], t *Thread[T], ins inst.Instruction, tok T, atEnd bool) inst.Verdict {
	if t.replay == nil {
		cap, ok := t.caps.Last(conv.IntToUint32(int(ins.X)))
		if !ok || cap.Partial {
			return inst.VerdictDrop
		}
		length := cap.End - cap.Start
		if length == 0 {
			t.pc++
			return inst.VerdictStep
		}
		buf := make([]T, length)
		n := k.buf.ReadIndexed(cap.Start, buf)
		t.replay = &replayBuf[T]{tokens: buf[:n]}
	}

	if atEnd || len(t.replay.tokens) == 0 {
		t.replay = nil
		return inst.VerdictDrop
	}
	if !in.alpha.TestBackref(tok, t.replay.tokens[t.replay.pos]) {
		t.replay = nil
		return inst.VerdictDrop
	}
	t.replay.pos++
	if t.replay.pos >= len(t.replay.tokens) {
		// This comparison examined the live current token, so — like any
		// other consuming instruction — finishing here moves to the next
		// token step rather than staying within this one; the distilled
		// spec's "step and release the buffer" is read as shorthand for
		// "advance PC" rather than the verdict-table's literal Step (which
		// would wrongly re-run this step without consuming sp).
		t.replay = nil
		t.pc++
		return inst.VerdictConsume
	}
	return inst.VerdictBacktrack
}
