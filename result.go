package zlob

import "sync"

// Match is a single matched path, spec.md §7. When walking a filesystem,
// Name is relative to the walked FS root (Options.Base is not prefixed);
// for FilterPaths it is the caller's original path string. Type is
// EntryType.Unknown for matches produced by FilterPaths, since an in-memory
// path list carries no file-type information.
type Match struct {
	Name string
	Type EntryType
}

// resultPool recycles the backing []Match slice of filesystem-mode Results,
// mirroring the stdlib regexp package's per-call sync.Pool reuse of scratch
// buffers rather than allocating fresh on every Glob call.
var resultPool = sync.Pool{
	New: func() any { return new([]Match) },
}

// Result is the output of Glob or FilterPaths (spec.md §7). It tracks
// whether its backing slice is pool-owned (filesystem walking allocates
// scratch buffers eagerly) or a borrowing one (in-memory filtering stores
// the caller's own path strings in a fresh []Match without copying their
// bytes).
// Release must be called exactly once when the caller is done with it;
// calling it again is a safe no-op.
type Result struct {
	Matches  []Match
	borrowed bool
	released bool
	pooled   *[]Match
}

// newOwningResult returns a Result backed by a pool-recycled slice, used by
// filesystem-mode Glob.
func newOwningResult() *Result {
	p, _ := resultPool.Get().(*[]Match)
	*p = (*p)[:0]
	return &Result{Matches: *p, pooled: p}
}

// newBorrowingResult returns a Result whose Matches slice is owned by the
// caller (or derived from it without copying), used by in-memory
// FilterPaths. Release on a borrowing Result never touches caller memory.
func newBorrowingResult(matches []Match) *Result {
	return &Result{Matches: matches, borrowed: true}
}

// Append adds a match, growing the pooled backing slice when needed. It
// panics if called on a borrowed Result: the zero-copy contract for
// FilterPaths is that its Matches slice is never mutated after return.
func (r *Result) Append(m Match) {
	if r.borrowed {
		panic("zlob: Append called on a borrowed (zero-copy) Result")
	}
	r.Matches = append(r.Matches, m)
	if r.pooled != nil {
		*r.pooled = r.Matches
	}
}

// Release returns the backing slice to the pool for an owning Result; for a
// borrowing one it only drops the Result's Matches slice, never touching
// the caller's strings. Either way Matches is nil afterwards. It is safe to
// call more than once.
func (r *Result) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.borrowed || r.pooled == nil {
		r.Matches = nil
		return
	}
	s := *r.pooled
	for i := range s {
		s[i] = Match{}
	}
	*r.pooled = s[:0]
	resultPool.Put(r.pooled)
	r.Matches = nil
	r.pooled = nil
}
