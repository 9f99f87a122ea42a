package transitivity

import (
	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/graph/order"
)

// closureIndex is the interval-encoded reachability index built over an
// acyclic Digraph — either a true quotient DAG (for the SCC-aware Engine)
// or, for AcyclicClosure, the caller's own already-acyclic digraph treated
// as its own quotient (one component per node).
type closureIndex struct {
	dg    graph.Digraph
	tsNum []int32
	start []int32
	end   []int32
	arena []IRange

	numMerges int64
	numUnions int64
}

// buildClosureIndex runs the bottom-up k-way merge of §4.4 over dg, visiting
// nodes in the order produced by ts (sinks first, i.e. ts.Order() directly —
// no further reversal needed since graph/order already hands back the
// reverse-topological sequence the builder wants).
func buildClosureIndex(dg graph.Digraph, ts *order.TopSorter) *closureIndex {
	n := dg.NodeAttrSize()
	ci := &closureIndex{
		dg:    dg,
		tsNum: make([]int32, n),
		start: make([]int32, n),
		end:   make([]int32, n),
		arena: make([]IRange, 0, n),
	}
	for _, node := range dg.Nodes() {
		ci.tsNum[node.ID()] = int32(ts.TsNum(node))
	}

	q := newRangeQueue(&ci.arena)
	for _, n := range ts.Order() {
		ci.processNode(n, q)
	}
	return ci
}

// processNode implements §4.4 steps 1-8 for quotient node n.
func (ci *closureIndex) processNode(n graph.Node, q *rangeQueue) {
	id := n.ID()
	ci.start[id] = int32(len(ci.arena))
	q.reset()

	for e := n.Out(); e != nil; e = e.Next() {
		t := e.Target()
		q.pushIdx(ci.start[t.ID()])
	}

	cur := newIRange(0, 0)
	for {
		idx, ok := q.popIdx()
		if !ok {
			break
		}
		m := ci.arena[idx]
		if mergeable(cur, m) {
			ci.numMerges++
			cur = mergeVal(cur, m)
		} else {
			ci.arena = append(ci.arena, cur)
			ci.arena[len(ci.arena)-1].next = int32(len(ci.arena))
			cur = newIRange(m.Lo, m.Hi)
		}
		ci.numUnions++
		if m.next != -1 {
			q.pushIdx(m.next)
		}
	}
	ci.arena = append(ci.arena, cur)
	lastIdx := len(ci.arena) - 1

	tsNum := ci.tsNum[id]
	me := newIRange(tsNum, tsNum+1)
	ci.numUnions++
	if mergeable(ci.arena[lastIdx], me) {
		ci.numMerges++
		merged := mergeVal(ci.arena[lastIdx], me)
		merged.next = ci.arena[lastIdx].next
		ci.arena[lastIdx] = merged
	} else {
		ci.arena[lastIdx].next = int32(len(ci.arena))
		ci.arena = append(ci.arena, me)
		lastIdx = len(ci.arena) - 1
	}
	ci.end[id] = int32(lastIdx)
}

// mergeRatio is the proportion of union operations that resulted in a merge
// rather than a fresh interval, a rough density signal surfaced on
// metrics.Metrics.MergeRatio.
func (ci *closureIndex) mergeRatio() float64 {
	if ci.numUnions == 0 {
		return 0
	}
	return float64(ci.numMerges) / float64(ci.numUnions)
}

// rangeCount returns the total size of the frozen range pool.
func (ci *closureIndex) rangeCount() int { return len(ci.arena) }

// reachesQuotient answers §4.5 steps 2-4 once the caller has already
// established the two component (quotient) nodes, qu and qv, differ.
func (ci *closureIndex) reachesQuotient(qu, qv graph.Node) bool {
	if qu.ID() == qv.ID() {
		return true
	}
	target := ci.tsNum[qv.ID()]
	return ci.probe(qu.ID(), target)
}

// probe is the binary search of §4.5 step 3 over ranges[start[quId]..end[quId]].
func (ci *closureIndex) probe(quId int, target int32) bool {
	low, high := ci.start[quId], ci.end[quId]
	for {
		mid := low + (high-low)/2
		if ci.arena[mid].Contains(target) {
			return true
		}
		switch {
		case ci.arena[mid].Lo < target:
			low = mid
		case ci.arena[mid].Lo > target:
			high = mid
		default:
			// ci.arena[mid].Lo == target would already have been caught by
			// Contains above, since Hi > Lo for every stored interval.
			return false
		}
		if high-low <= 1 {
			return ci.arena[low].Contains(target) || ci.arena[high].Contains(target)
		}
	}
}
