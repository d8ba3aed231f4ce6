package kernel

import (
	"github.com/coregx/pikekernel/branch"
	"github.com/coregx/pikekernel/inst"
)

// dedupEntry is one admitted thread's identity at a given PC this
// generation: the pieces the admission rule (§4.3) compares.
type dedupEntry struct {
	capID   any
	version uint64
	deps    *depList
}

type pcRecord struct {
	gen     uint64
	entries []dedupEntry
}

// ThreadList is an ordered queue of live threads plus a PC-keyed dedup
// table. It implements Thompson's two-list construction via a head stack
// (LIFO, for Jmp/Split/Step) and a tail queue (FIFO, for Consume); popHead
// always drains the head stack before the tail queue, so within one token
// step the leftmost alternative runs first.
type ThreadList[T any] struct {
	front []*Thread[T] // head-pushed; front[len-1] is next to pop
	back  []*Thread[T] // tail-pushed; back[0] is next to pop once front is empty

	dedup             map[inst.PC]*pcRecord
	gen               uint64
	backtrackCaptures bool
	graph             *branch.Graph
}

func newThreadList[T any](g *branch.Graph, backtrackCaptures bool) *ThreadList[T] {
	return &ThreadList[T]{
		dedup:             make(map[inst.PC]*pcRecord),
		backtrackCaptures: backtrackCaptures,
		graph:             g,
	}
}

// Empty reports whether the list has no threads left to process.
func (tl *ThreadList[T]) Empty() bool {
	return len(tl.front) == 0 && len(tl.back) == 0
}

// PushHead admits t at the head of the list (LIFO, current-token-step
// order), applying the PC-keyed admission rule. Reports whether t was
// admitted.
func (tl *ThreadList[T]) PushHead(t *Thread[T]) bool {
	return tl.push(t, true)
}

// PushTail admits t at the tail of the list (FIFO, next-token-step order),
// applying the PC-keyed admission rule. Reports whether t was admitted.
func (tl *ThreadList[T]) PushTail(t *Thread[T]) bool {
	return tl.push(t, false)
}

// PushTailForce admits t at the tail unconditionally, bypassing the
// admission rule entirely. Used by Backtrack replay continuations, whose
// in-progress replay position is not captured by the ordinary admission
// key (PC + CaptureSet identity/version + dependency list), so the ordinary
// rule could wrongly reject a second, distinct replay at the same PC.
func (tl *ThreadList[T]) PushTailForce(t *Thread[T]) {
	tl.commit(t, false)
}

func (tl *ThreadList[T]) push(t *Thread[T], head bool) bool {
	if !tl.admit(t) {
		return false
	}
	tl.commit(t, head)
	return true
}

func (tl *ThreadList[T]) commit(t *Thread[T], head bool) {
	if t.ref != branch.None {
		tl.graph.IncThreads(t.ref)
	}
	if head {
		tl.front = append(tl.front, t)
	} else {
		tl.back = append(tl.back, t)
	}
}

// admit applies the §4.3 rule: a new generation at this PC always admits
// (overwriting the record); within the same generation, standard mode
// rejects outright, while backtrack-capture mode admits whenever no
// existing entry has an identical CaptureSet identity, version, and
// dependency-list identity.
func (tl *ThreadList[T]) admit(t *Thread[T]) bool {
	entry := dedupEntry{capID: t.caps.Identity(), version: t.caps.Version(), deps: t.deps}

	rec, ok := tl.dedup[t.pc]
	if !ok || rec.gen < tl.gen {
		tl.dedup[t.pc] = &pcRecord{gen: tl.gen, entries: []dedupEntry{entry}}
		return true
	}
	if !tl.backtrackCaptures {
		return false
	}
	for _, e := range rec.entries {
		if e.capID == entry.capID && e.version == entry.version && e.deps == entry.deps {
			return false
		}
	}
	rec.entries = append(rec.entries, entry)
	return true
}

// PopHead returns the next thread to execute, filtering out (and reporting
// via onDrop) any thread whose dependency branches have become
// unsatisfiable since it was pushed.
func (tl *ThreadList[T]) PopHead(onDrop func(*Thread[T])) (*Thread[T], bool) {
	for {
		t, ok := tl.rawPop()
		if !ok {
			return nil, false
		}
		if tl.alive(t) {
			return t, true
		}
		onDrop(t)
	}
}

func (tl *ThreadList[T]) rawPop() (*Thread[T], bool) {
	if n := len(tl.front); n > 0 {
		t := tl.front[n-1]
		tl.front = tl.front[:n-1]
		return t, true
	}
	if len(tl.back) > 0 {
		t := tl.back[0]
		tl.back = tl.back[1:]
		return t, true
	}
	return nil, false
}

// alive reports whether every branch in t's dependency list is still
// alive, per §4.5's "a thread is alive iff every branch in its dependency
// list is alive."
func (tl *ThreadList[T]) alive(t *Thread[T]) bool {
	for _, d := range t.deps.list() {
		b := tl.graph.Get(d)
		if b == nil || !b.Alive() {
			return false
		}
	}
	return true
}
