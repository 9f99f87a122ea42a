package order

import "github.com/jsubercaze/stixar-graphlib/graph"

// NodeOrder is a Node comparator backed by a permutation attribute array:
// rank[n.ID()] gives n's position in the order. Built directly from a
// TopSorter's tsNum array, it lets callers sort or compare nodes by
// topological position without re-running the sort.
type NodeOrder struct {
	rank    []int32
	reverse bool
}

// NewNodeOrder copies rank into a new NodeOrder. rank must be indexed by
// node id and dense over NodeAttrSize.
func NewNodeOrder(rank []int32) *NodeOrder {
	cp := make([]int32, len(rank))
	copy(cp, rank)
	return &NodeOrder{rank: cp}
}

// FromTopSorter builds a NodeOrder directly from a completed TopSorter's
// tsNum assignment.
func FromTopSorter(ts *TopSorter) *NodeOrder {
	return NewNodeOrder(ts.tsNum)
}

// IsReversed reports whether the order has been reversed.
func (o *NodeOrder) IsReversed() bool { return o.reverse }

// Reverse flips the comparator's direction in constant time.
func (o *NodeOrder) Reverse() { o.reverse = !o.reverse }

// Rank exposes the permutation array.
func (o *NodeOrder) Rank() []int32 { return o.rank }

// Compare returns -1, 0 or 1 as u precedes, ties, or follows v in the order.
func (o *NodeOrder) Compare(u, v graph.Node) int {
	pu, pv := o.rank[u.ID()], o.rank[v.ID()]
	var cmp int
	switch {
	case pu < pv:
		cmp = -1
	case pu > pv:
		cmp = 1
	}
	if o.reverse {
		return -cmp
	}
	return cmp
}

// EdgeComparator produces an Edge comparator from a Node comparator by
// lexicographic order on (source, target).
func EdgeComparator(cmp func(u, v graph.Node) int) func(e1, e2 graph.Edge) int {
	return func(e1, e2 graph.Edge) int {
		if c := cmp(e1.Source(), e2.Source()); c != 0 {
			return c
		}
		return cmp(e1.Target(), e2.Target())
	}
}
