// Package order computes a topological numbering over a DAG (typically the
// quotient graph produced by graph/scc) and provides a Node comparator over
// an arbitrary permutation, grounded on stixar's NodeOrder.
package order

import (
	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/xerrors"
)

// TopSorter assigns each node of an acyclic Digraph a tsNum in
// [0, NodeAttrSize) such that every successor's tsNum is strictly smaller
// than its predecessors' — sinks get the smallest numbers. This is the
// "reverse topological" convention the closure builder in
// graph/transitivity relies on: iterating nodes by increasing tsNum visits
// every successor before any of its predecessors.
type TopSorter struct {
	digraph graph.Digraph
	tsNum   []int32
	order   []graph.Node
	built   bool
}

// New constructs a TopSorter for dg. Call Run before querying results.
func New(dg graph.Digraph) *TopSorter {
	return &TopSorter{digraph: dg}
}

type visitState uint8

const (
	unvisited visitState = iota
	visiting
	finished
)

type sortFrame struct {
	node   graph.Node
	cursor graph.Edge
}

// Run performs an iterative post-order DFS over dg, numbering nodes as they
// finish. It returns a DependencyCycle-flavored InvalidArgument error if dg
// is not acyclic — callers sorting an arbitrary digraph must run SCC
// collapse first.
func (ts *TopSorter) Run() error {
	n := ts.digraph.NodeAttrSize()
	status := make([]visitState, n)
	ts.tsNum = make([]int32, n)
	ts.order = make([]graph.Node, 0, ts.digraph.NodeSize())

	var counter int32
	var call []sortFrame
	filter := ts.digraph.Filter()

	for _, root := range ts.digraph.Nodes() {
		if filtered(filter, root) || status[root.ID()] != unvisited {
			continue
		}
		call = append(call[:0], sortFrame{node: root, cursor: root.Out()})
		status[root.ID()] = visiting
		for len(call) > 0 {
			top := &call[len(call)-1]
			advanced := false
			for top.cursor != nil {
				e := top.cursor
				top.cursor = e.Next()
				if filteredEdge(filter, e) {
					continue
				}
				t := e.Target()
				if filtered(filter, t) {
					continue
				}
				switch status[t.ID()] {
				case unvisited:
					status[t.ID()] = visiting
					call = append(call, sortFrame{node: t, cursor: t.Out()})
					advanced = true
				case visiting:
					return xerrors.InvalidArgumentf("digraph is not acyclic: back edge into node %d during topological sort", t.ID())
				case finished:
					// cross/forward edge, already numbered.
				}
				if advanced {
					break
				}
			}
			if advanced {
				continue
			}
			fin := top.node
			status[fin.ID()] = finished
			ts.tsNum[fin.ID()] = counter
			counter++
			ts.order = append(ts.order, fin)
			call = call[:len(call)-1]
		}
	}
	ts.built = true
	return nil
}

func filtered(f graph.Filter, n graph.Node) bool {
	return f != nil && f.FilterNode(n)
}

func filteredEdge(f graph.Filter, e graph.Edge) bool {
	return f != nil && f.FilterEdge(e)
}

// TsNum returns n's topological number. Valid only after a successful Run.
func (ts *TopSorter) TsNum(n graph.Node) int {
	return int(ts.tsNum[n.ID()])
}

// Order returns nodes in increasing tsNum order (sinks first). This is the
// order graph/transitivity's closure builder consumes directly.
func (ts *TopSorter) Order() []graph.Node {
	return ts.order
}

// MustBeBuilt returns an InvalidState error if Run has not completed.
func (ts *TopSorter) MustBeBuilt() error {
	if !ts.built {
		return xerrors.InvalidStatef("TopSorter.Run has not been called")
	}
	return nil
}
