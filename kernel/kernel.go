// Package kernel drives the two-list Pike-VM-style simulation: the
// token-by-token loop that alternates current/next ThreadLists, dispatches
// each live thread's instruction through the interpreter, and applies the
// resulting verdict. It fuses the teacher's nfa.PikeVM thread/queue loop
// with the distilled spec's two-list driver and branch-aware admission
// rule — see DESIGN.md for the field-by-field lineage.
package kernel

import (
	"errors"

	"github.com/coregx/pikekernel/alphabet"
	"github.com/coregx/pikekernel/branch"
	"github.com/coregx/pikekernel/capture"
	"github.com/coregx/pikekernel/inst"
	"github.com/coregx/pikekernel/token"
	"github.com/coregx/pikekernel/trace"
)

// ErrUnknownOpcode is returned by Execute when the interpreter hits an
// instruction with no defined semantics — a compiled-pattern defect, fatal
// per §7.
var ErrUnknownOpcode = errors.New("kernel: unknown opcode")

// Options bundles the kernel's run-time flags (§6).
type Options struct {
	// Anchored disables re-seeding a fresh thread at each input position,
	// so only matches starting at the initial offset are found.
	Anchored bool
	// Partial treats end-of-input as satisfying any still-pending
	// alphabet-specific consumer, producing a match instead of a drop.
	Partial bool
	// BacktrackMatching enables the capture-enumerating dedup mode that
	// admits multiple distinct CaptureSet shapes at the same PC.
	BacktrackMatching bool
	// MaxCaptureSets bounds the number of accumulated matches; 0 means
	// unbounded. Once reached, further matches are silently suppressed
	// rather than halting the run (§9 open-question default).
	MaxCaptureSets int
}

// MatchResult is one completed match: the token index the search rooted at,
// the ordered captures recorded for every group, and the backing CaptureSet
// itself (kept alive via its existing reference) for callers who want to
// inspect it directly rather than through the copied Captures map.
type MatchResult struct {
	Start    int
	Captures map[uint32][]capture.Capture
	Set      capture.CaptureSet
}

// Kernel is the per-run driver. It owns the free-standing mutable state a
// single Execute call needs: the current/next ThreadLists, the branch
// graph, and the input position. Not safe for concurrent Execute calls on
// the same instance — like the teacher's PikeVM, a fresh Kernel (or a
// Reset) is required per goroutine.
type Kernel[T any] struct {
	opts  Options
	graph *branch.Graph
	interp interpreter[T]

	buf *token.Buffer[T]
	sp  int
	cur *ThreadList[T]
	nxt *ThreadList[T]

	Observer trace.Observer
}

// New returns a Kernel that executes over token type T using alpha for
// alphabet-specific instructions.
func New[T any](alpha alphabet.Capability[T], opts Options) *Kernel[T] {
	return &Kernel[T]{
		opts:   opts,
		graph:  branch.NewGraph(),
		interp: interpreter[T]{alpha: alpha},
	}
}

// Reset clears a Kernel's mutable state so it can be reused for a fresh
// Execute call on the same goroutine.
func (k *Kernel[T]) Reset() {
	k.graph = branch.NewGraph()
	k.buf = nil
	k.sp = 0
	k.cur = nil
	k.nxt = nil
}

// Execute runs prog against buf starting at offset, per §4.6's algorithm.
func (k *Kernel[T]) Execute(buf *token.Buffer[T], offset int, prog inst.Pattern) ([]MatchResult, error) {
	buf.FastForward(offset)
	k.buf = buf
	k.sp = offset
	k.cur = newThreadList[T](k.graph, k.opts.BacktrackMatching)
	k.nxt = newThreadList[T](k.graph, k.opts.BacktrackMatching)

	k.seed(k.nxt, k.sp)

	if k.Observer.Start != nil {
		k.Observer.Start()
	}

	var matches []MatchResult
	var runErr error

	for {
		k.cur, k.nxt = k.nxt, k.cur
		k.nxt.gen++

		if k.Observer.BeforeToken != nil {
			k.Observer.BeforeToken(k.sp)
		}
		tok, ok := buf.ReadNext()
		atEnd := !ok

		halted := k.drainCurrent(prog, tok, atEnd, &matches)
		if k.Observer.AfterToken != nil {
			k.Observer.AfterToken(k.sp)
		}
		if halted {
			runErr = ErrUnknownOpcode
			if k.Observer.OnFailure != nil {
				k.Observer.OnFailure()
			}
			break
		}

		k.sp++
		if !k.opts.Anchored && !atEnd {
			// Seed at the new sp: the seeded thread's first instruction
			// executes next iteration, when the token read will be the one
			// at this new position — its start must match. Once atEnd, every
			// later iteration would see atEnd again too, so stop reseeding
			// here or the loop would never see nxt go empty.
			k.seed(k.nxt, k.sp)
		}

		if k.nxt.Empty() {
			break
		}
	}

	if k.Observer.End != nil {
		k.Observer.End(len(matches))
	}
	return matches, runErr
}

// drainCurrent processes every thread in the current list for this token
// step, reporting whether a Halt verdict was produced.
func (k *Kernel[T]) drainCurrent(prog inst.Pattern, tok T, atEnd bool, matches *[]MatchResult) bool {
	for {
		t, ok := k.cur.PopHead(k.dropThread)
		if !ok {
			return false
		}
		ins, ok := prog.GetInst(t.pc)
		if !ok {
			k.dropThread(t)
			continue
		}
		if k.Observer.BeforeInst != nil {
			k.Observer.BeforeInst(t.pc, ins)
		}
		pc := t.pc
		v := k.interp.step(k, t, ins, tok, atEnd)
		if k.Observer.AfterInst != nil {
			k.Observer.AfterInst(pc, v)
		}

		switch {
		case v.Has(inst.VerdictHalt):
			k.dropThread(t)
			return true
		case v.Has(inst.VerdictMatch):
			k.handleMatch(t, matches)
		case v.Has(inst.VerdictBacktrack):
			k.nxt.PushTailForce(t)
		case v.Has(inst.VerdictConsume):
			if !k.nxt.PushTail(t) {
				k.dropThread(t)
			}
		case v.Has(inst.VerdictStep):
			if !k.cur.PushHead(t) {
				k.dropThread(t)
			}
		case v.Has(inst.VerdictDrop):
			k.dropThread(t)
		default:
			k.dropThread(t)
		}
	}
}

// handleMatch applies a Match verdict. A thread with no ref branch is a
// genuine main-computation match; one with a ref branch is a lookahead-body
// witness, and its outcome is recorded on the branch graph instead of the
// caller-visible results (§4.5).
func (k *Kernel[T]) handleMatch(t *Thread[T], matches *[]MatchResult) {
	if t.ref != branch.None {
		k.graph.RecordMatch(t.ref, t.deps.list())
		k.dropThread(t)
		return
	}

	if k.opts.MaxCaptureSets > 0 && len(*matches) >= k.opts.MaxCaptureSets {
		k.dropThread(t)
		return
	}

	if k.Observer.OnMatch != nil {
		k.Observer.OnMatch(t.start)
	}
	*matches = append(*matches, MatchResult{
		Start:    t.start,
		Captures: t.caps.Groups(),
		Set:      t.caps,
	})
	k.releaseBranches(t)
}

// seed admits a fresh thread at PC 0, started at pos, onto list.
func (k *Kernel[T]) seed(list *ThreadList[T], pos int) {
	t := newRootThread[T](pos)
	if !list.PushTail(t) {
		t.caps.Deref()
	}
}

// dropThread releases every resource a thread holds: its CaptureSet
// reference and its branch-graph attachments.
func (k *Kernel[T]) dropThread(t *Thread[T]) {
	t.caps.Deref()
	k.releaseBranches(t)
}

// releaseBranches releases a thread's ref and dependency-list branch
// references without touching its CaptureSet, for the case (a completed
// match) where caps ownership transfers to the MatchResult instead.
func (k *Kernel[T]) releaseBranches(t *Thread[T]) {
	if t.ref != branch.None {
		k.graph.DecThreads(t.ref)
		k.graph.Release(t.ref)
	}
	for _, d := range t.deps.list() {
		k.graph.Release(d)
	}
}

// enterBranch implements §4.5's Branch/NegBranch hookup: it mutates t in
// place into the lookahead-body thread and returns the new join thread,
// which the caller is responsible for pushing.
func (k *Kernel[T]) enterBranch(t *Thread[T], bodyPC, joinPC inst.PC, negated bool) *Thread[T] {
	c := k.graph.New(negated)

	j := t.clone(k.graph)
	j.pc = joinPC
	j.replay = nil

	oldRef := t.ref
	if oldRef != branch.None {
		// J depends on B in addition to inheriting B as its own ref from
		// the clone above: a second, distinct strong-ref owner.
		j.deps = j.deps.append(oldRef)
		k.graph.Retain(oldRef)
	}
	j.deps = j.deps.append(c)
	k.graph.Retain(c)

	// T's ref moves from oldRef to C: release the ownership T held as
	// oldRef's ref (distinct from the ownership J just acquired above),
	// then acquire ownership of C as T's new ref.
	if oldRef != branch.None {
		k.graph.Release(oldRef)
	}
	k.graph.Retain(c)
	t.ref = c
	t.pc = bodyPC

	return j
}
