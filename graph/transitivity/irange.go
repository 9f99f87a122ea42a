package transitivity

// IRange is a half-open interval [Lo, Hi) over topological numbers. next is
// an arena index into the owning index's range pool, not a pointer: it
// chains the remaining (not-yet-popped) intervals of one quotient node's
// reachable set while the k-way merge in buildClosureIndex is in flight. -1
// means "no further interval in this chain".
//
// The comparator below is deliberately inconsistent with equality — two
// intervals with the same Lo but different Hi compare equal — because the
// priority queue in pqueue.go only ever needs to order by Lo. Keep IRange
// values out of any container that assumes a total order.
type IRange struct {
	Lo, Hi int32
	next   int32
}

func newIRange(lo, hi int32) IRange {
	return IRange{Lo: lo, Hi: hi, next: -1}
}

// empty reports whether the interval represents the empty set.
func (r IRange) empty() bool { return r.Lo == r.Hi }

// Contains reports whether i lies in [Lo, Hi).
func (r IRange) Contains(i int32) bool {
	return i >= r.Lo && i < r.Hi
}

// mergeable reports whether a and b touch or overlap once their closures
// are considered; an empty interval is mergeable with anything.
func mergeable(a, b IRange) bool {
	if a.empty() || b.empty() {
		return true
	}
	lo, hi := a, b
	if lo.Lo > hi.Lo {
		lo, hi = hi, lo
	}
	return lo.Hi >= hi.Lo
}

// mergeVal returns the union of a and b as a single interval, keeping a's
// next link (the caller is responsible for deciding what that should be).
func mergeVal(a, b IRange) IRange {
	if a.empty() {
		a.Lo, a.Hi = b.Lo, b.Hi
		return a
	}
	if b.empty() {
		return a
	}
	if b.Lo < a.Lo {
		a.Lo = b.Lo
	}
	if b.Hi > a.Hi {
		a.Hi = b.Hi
	}
	return a
}

// compareLo orders two intervals by Lo only, matching the Java
// implementation's deliberately equality-inconsistent compareTo.
func compareLo(a, b IRange) int {
	switch {
	case a.Lo < b.Lo:
		return -1
	case a.Lo > b.Lo:
		return 1
	default:
		return 0
	}
}
