package kernel

import (
	"github.com/coregx/pikekernel/branch"
	"github.com/coregx/pikekernel/capture"
	"github.com/coregx/pikekernel/inst"
)

// Thread is an NFA-simulation execution context: emphatically not an OS
// thread. It carries a program counter, a (possibly shared) CaptureSet, an
// optional in-progress backreference replay buffer, the branch this
// thread's own success feeds (its "ref"), and the list of branches it
// depends on for satisfiability. start records the token index this
// particular unanchored search attempt began at.
type Thread[T any] struct {
	pc     inst.PC
	caps   capture.CaptureSet
	replay *replayBuf[T]
	ref    branch.ID
	deps   *depList
	start  int
}

type replayBuf[T any] struct {
	tokens []T
	pos    int
}

// depList is an ordered, clone-on-write sequence of branch dependencies.
// append never mutates the receiver: it returns a fresh list sharing no
// backing array with the original, giving every distinct dependency chain
// its own stable pointer identity for the thread-list dedup rule (§4.3).
type depList struct {
	ids []branch.ID
}

func (d *depList) append(id branch.ID) *depList {
	var base []branch.ID
	if d != nil {
		base = d.ids
	}
	ids := make([]branch.ID, len(base), len(base)+1)
	copy(ids, base)
	return &depList{ids: append(ids, id)}
}

func (d *depList) list() []branch.ID {
	if d == nil {
		return nil
	}
	return d.ids
}

// newRootThread returns a fresh thread entering the pattern at PC 0 with a
// uniquely-owned empty CaptureSet and no branch attachments.
func newRootThread[T any](start int) *Thread[T] {
	return &Thread[T]{pc: 0, caps: capture.New(), ref: branch.None, start: start}
}

// clone returns a new thread sharing this one's CaptureSet (via Ref) and
// branch attachments (retaining a strong reference to each, since the clone
// is a new owner), used by Split and by the join-thread half of Branch.
func (t *Thread[T]) clone(g *branch.Graph) *Thread[T] {
	c := &Thread[T]{
		pc:    t.pc,
		caps:  t.caps.Ref(),
		ref:   t.ref,
		deps:  t.deps,
		start: t.start,
	}
	if c.ref != branch.None {
		g.Retain(c.ref)
	}
	for _, d := range c.deps.list() {
		g.Retain(d)
	}
	return c
}
