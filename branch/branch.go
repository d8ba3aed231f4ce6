// Package branch implements the lookahead dependency graph: the bookkeeping
// that lets the kernel treat positive and negative lookahead as a dynamic
// intersection between the main NFA and a lookahead NFA, without building
// the product automaton.
//
// Every Branch node corresponds to one in-progress (or resolved) lookahead.
// A main thread waiting on a lookahead's outcome depends on that Branch; the
// thread executing inside the lookahead body names the Branch as its own
// "ref", flagging it matched if the lookahead body reaches Match. Branches
// can end up referencing each other through match-witness snapshots, which
// would keep a naive single-refcount graph alive forever; the two-count
// (strong/weak) scheme below is what breaks those cycles.
package branch

import "github.com/coregx/pikekernel/internal/sparse"

// ID identifies a Branch within a Graph.
type ID uint32

// None is the sentinel ref value for a thread with no ref branch (a main
// thread that has never entered a lookahead).
const None ID = ^ID(0)

// Branch is a node in the lookahead dependency graph.
type Branch struct {
	id         ID
	negated    bool
	matched    bool
	numThreads int
	strongRefs int
	weakRefs   int
	matches    []Snapshot
}

// Snapshot records one witnessing path through an intersection: the
// dependency list of the thread that reached Match while this Branch was its
// ref, taken as weak references to avoid feeding the strong-ref cycle.
type Snapshot struct {
	deps []ID
}

// Negated reports whether this Branch backs a NegBranch (negative lookahead).
func (b *Branch) Negated() bool { return b.negated }

// Matched reports whether any thread has reached Match while this Branch was
// its ref.
func (b *Branch) Matched() bool { return b.matched }

// Alive reports whether this Branch could still influence a match: a
// positive branch is alive while it still has live threads or has already
// matched; a negative branch is alive until it matches (a match poisons it).
func (b *Branch) Alive() bool {
	if b.negated {
		return !b.matched
	}
	return b.numThreads > 0 || b.matched
}

// Succeeded reports whether this Branch's intersection condition is
// currently satisfied: a positive branch succeeds once matched; a negative
// branch succeeds once all its threads are gone without ever matching.
func (b *Branch) Succeeded() bool {
	if b.negated {
		return b.numThreads == 0 && !b.matched
	}
	return b.matched
}

// Graph owns the set of live Branch nodes and the strong/weak reference
// discipline that frees them. It is not safe for concurrent use.
type Graph struct {
	nodes  map[ID]*Branch
	nextID ID
	marked *sparse.SparseSet
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[ID]*Branch), marked: sparse.NewSparseSet(64)}
}

// New creates a fresh Branch (negated selects NegBranch semantics) with zero
// references. The caller is responsible for calling Retain for every thread
// ref/dependency-list entry it creates.
func (g *Graph) New(negated bool) ID {
	id := g.nextID
	g.nextID++
	if uint32(id) >= uint32(g.marked.Capacity()) {
		g.marked.Resize(uint32(id) * 2)
	}
	g.nodes[id] = &Branch{id: id, negated: negated}
	return id
}

// Get returns the Branch for id, or nil if it has already been freed.
func (g *Graph) Get(id ID) *Branch {
	return g.nodes[id]
}

// Retain adds one strong reference: either a thread naming id as its ref, or
// another thread's dependency list containing id.
func (g *Graph) Retain(id ID) {
	if b := g.nodes[id]; b != nil {
		b.strongRefs++
	}
}

// Release drops one strong reference. When the strong count reaches zero the
// Branch eagerly releases the weak references its own match snapshots hold
// (this is what breaks matches-snapshot cycles per the design notes), and is
// freed once both counts are zero.
func (g *Graph) Release(id ID) {
	b := g.nodes[id]
	if b == nil {
		return
	}
	b.strongRefs--
	if b.strongRefs <= 0 {
		for _, snap := range b.matches {
			for _, dep := range snap.deps {
				g.releaseWeak(dep)
			}
		}
		b.matches = nil
		g.maybeFree(b)
	}
}

func (g *Graph) releaseWeak(id ID) {
	b := g.nodes[id]
	if b == nil {
		return
	}
	b.weakRefs--
	g.maybeFree(b)
}

func (g *Graph) maybeFree(b *Branch) {
	if b.strongRefs <= 0 && b.weakRefs <= 0 {
		delete(g.nodes, b.id)
	}
}

// IncThreads registers one live thread whose ref is id (ThreadList admission
// calls this; see package kernel).
func (g *Graph) IncThreads(id ID) {
	if b := g.nodes[id]; b != nil {
		b.numThreads++
	}
}

// DecThreads removes one live thread whose ref was id.
func (g *Graph) DecThreads(id ID) {
	if b := g.nodes[id]; b != nil && b.numThreads > 0 {
		b.numThreads--
	}
}

// RecordMatch marks id as matched and snapshots deps (taken as weak
// references) as one witnessing path through the intersection. It then
// re-checks every recorded witness, most recent first, and reports whether
// at least one still checks out — i.e. whether the Match this thread
// produced should be allowed to propagate.
func (g *Graph) RecordMatch(id ID, deps []ID) bool {
	b := g.nodes[id]
	if b == nil {
		return false
	}
	b.matched = true
	snapDeps := append([]ID(nil), deps...)
	for _, d := range snapDeps {
		if w := g.nodes[d]; w != nil {
			w.weakRefs++
		}
	}
	b.matches = append(b.matches, Snapshot{deps: snapDeps})

	for i := len(b.matches) - 1; i >= 0; i-- {
		if g.checkMatchList(b.matches[i].deps) {
			return true
		}
	}
	return false
}

// checkMatchList recursively verifies that every branch in deps is either
// negated-and-still-unmatched, or positive-and-has-at-least-one-witness-
// snapshot that itself passes checkMatchList. The marked set guards against
// cycles in the snapshot graph by treating a re-entered branch as successful.
func (g *Graph) checkMatchList(deps []ID) bool {
	for _, id := range deps {
		if !g.branchSatisfiable(id) {
			return false
		}
	}
	return true
}

func (g *Graph) branchSatisfiable(id ID) bool {
	if g.marked.Contains(uint32(id)) {
		return true
	}
	b := g.nodes[id]
	if b == nil {
		return true
	}
	if b.negated {
		return !b.matched
	}
	if !b.matched {
		return false
	}
	g.marked.Insert(uint32(id))
	defer g.marked.Remove(uint32(id))

	for i := len(b.matches) - 1; i >= 0; i-- {
		if g.checkMatchList(b.matches[i].deps) {
			return true
		}
	}
	return false
}
