// Package capture implements the kernel's copy-on-write capture bookkeeping.
//
// A CaptureSet is the per-thread record of every interval a running match
// has saved so far. Multiple threads may share one CaptureSet until any of
// them writes to it, at which point the writer detaches its own copy. This
// mirrors the thread-splitting behavior of Split/Jmp: most threads never
// touch captures between a split and the next save, so sharing avoids an
// allocation per split.
package capture

// Capture is a half-open interval [Start, End) over token positions.
//
// Partial is true exactly when one endpoint has been saved and the other
// has not: Start >= 0 and End < 0, or vice versa.
type Capture struct {
	Start   int
	End     int
	Partial bool
}

const unset = -1

func newCapture() Capture {
	return Capture{Start: unset, End: unset, Partial: false}
}

func (c Capture) withStart(pos int) Capture {
	c.Start = pos
	c.Partial = c.End < 0
	return c
}

func (c Capture) withEnd(pos int) Capture {
	c.End = pos
	c.Partial = c.Start < 0
	return c
}

// complete reports whether both endpoints of c have been saved.
func (c Capture) complete() bool {
	return c.Start >= 0 && c.End >= 0
}

// shared is the structural-sharing backing store for a CaptureSet. It is
// never mutated once more than one CaptureSet references it; mutation always
// goes through Detach first.
type shared struct {
	groups  map[uint32][]Capture
	version uint64
	refs    int
}

// CaptureSet is a reference-counted, copy-on-write mapping from capture id to
// an ordered sequence of Captures. The sequence lets a single capture group
// accumulate multiple intervals across a repetition, e.g. `(a)*` against
// `aa` records two captures for group 0.
type CaptureSet struct {
	s *shared
}

// New returns a fresh, uniquely-owned empty CaptureSet.
func New() CaptureSet {
	return CaptureSet{s: &shared{groups: make(map[uint32][]Capture), refs: 1}}
}

// Ref increments the reference count and returns a CaptureSet that refers to
// the same backing store (no copy). Use when a thread is cloned (Split) but
// has not yet diverged on a capture write.
func (cs CaptureSet) Ref() CaptureSet {
	if cs.s == nil {
		return cs
	}
	cs.s.refs++
	return cs
}

// Deref releases one reference. The caller must not use cs after calling
// Deref unless it holds another reference (e.g. via a prior Ref/Detach).
func (cs CaptureSet) Deref() {
	if cs.s == nil {
		return
	}
	cs.s.refs--
}

// Version returns the backing store's mutation counter. Two CaptureSets with
// the same identity (pointer) and the same Version have observed identical
// mutations; this is used by the kernel's thread-list dedup (see package
// kernel's admission rule).
func (cs CaptureSet) Version() uint64 {
	if cs.s == nil {
		return 0
	}
	return cs.s.version
}

// Identity returns an opaque comparable value identifying the backing store.
// Two CaptureSets with equal Identity share storage. The concrete type is
// unexported; callers outside this package may only compare it with == or
// store it, never inspect it.
func (cs CaptureSet) Identity() any {
	return cs.s
}

// detach returns a uniquely-owned CaptureSet: the receiver itself (with its
// version bumped) if it is already the sole owner, or a fresh clone
// otherwise. This is the copy-on-write operation SaveStart/SaveEnd must run
// before mutating.
func (cs CaptureSet) detach() CaptureSet {
	if cs.s == nil {
		return New().detach()
	}
	if cs.s.refs <= 1 {
		cs.s.version++
		return cs
	}
	cloned := make(map[uint32][]Capture, len(cs.s.groups))
	for id, list := range cs.s.groups {
		cloned[id] = append([]Capture(nil), list...)
	}
	cs.s.refs--
	return CaptureSet{s: &shared{groups: cloned, version: 0, refs: 1}}
}

// SaveStart performs the copy-on-write detach and records pos as the start
// of the last Capture for id, appending a new Capture if the last one
// already has both endpoints set (or none exist yet).
func (cs CaptureSet) SaveStart(id uint32, pos int) CaptureSet {
	out := cs.detach()
	list := out.s.groups[id]
	if n := len(list); n > 0 && !list[n-1].complete() {
		list[n-1] = list[n-1].withStart(pos)
	} else {
		list = append(list, newCapture().withStart(pos))
	}
	out.s.groups[id] = list
	return out
}

// SaveEnd performs the copy-on-write detach and records pos as the end of
// the last Capture for id, appending a new Capture if the last one already
// has both endpoints set (or none exist yet).
func (cs CaptureSet) SaveEnd(id uint32, pos int) CaptureSet {
	out := cs.detach()
	list := out.s.groups[id]
	if n := len(list); n > 0 && !list[n-1].complete() {
		list[n-1] = list[n-1].withEnd(pos)
	} else {
		list = append(list, newCapture().withEnd(pos))
	}
	out.s.groups[id] = list
	return out
}

// Last returns the most recently recorded Capture for id, and whether one
// exists at all. Used by Backtrack to find the capture being replayed.
func (cs CaptureSet) Last(id uint32) (Capture, bool) {
	if cs.s == nil {
		return Capture{}, false
	}
	list := cs.s.groups[id]
	if len(list) == 0 {
		return Capture{}, false
	}
	return list[len(list)-1], true
}

// Groups returns a snapshot of every recorded capture id to its ordered list
// of Captures, suitable for handing to a caller once a match completes. The
// returned map is independent of the CaptureSet's internal storage.
func (cs CaptureSet) Groups() map[uint32][]Capture {
	out := make(map[uint32][]Capture, len(cs.s.groups))
	for id, list := range cs.s.groups {
		out[id] = append([]Capture(nil), list...)
	}
	return out
}
