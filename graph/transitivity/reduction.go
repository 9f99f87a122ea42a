package transitivity

import (
	"sort"

	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/graph/order"
	"github.com/jsubercaze/stixar-graphlib/graph/scc"
)

// Close adds a minimal number of edges to mdg so that it becomes
// transitive, and returns the added edges. Grounded on
// stixar.graph.conn.Transitivity.close.
func Close(mdg graph.MutableDigraph) ([]graph.Edge, error) {
	e := New(mdg)
	if err := e.Run(); err != nil {
		return nil, err
	}

	nodes := mdg.Nodes()
	marks := make([]int, mdg.NodeAttrSize())
	mark := 1

	var added []graph.Edge
	for _, i := range nodes {
		for edge := i.Out(); edge != nil; edge = edge.Next() {
			marks[edge.Target().ID()] = mark
		}
		for _, j := range nodes {
			if i == j {
				continue
			}
			if marks[j.ID()] == mark {
				continue // already a direct edge.
			}
			if e.Reaches(i, j) {
				edge, err := mdg.AddEdge(i, j)
				if err != nil {
					return added, err
				}
				added = append(added, edge)
			}
		}
		mark++
	}
	return added, nil
}

// AcyclicReduce removes redundant edges from an acyclic mdg, returning the
// removed edges. It is the caller's responsibility to ensure mdg is
// acyclic: a cycle surfaces as an error from the underlying topological
// sort.
//
// Each node's outgoing edges are considered in decreasing target-tsNum
// order — the target closest to the node itself first — so that by the
// time a farther target k is examined for node i, any nearer target j that
// already reaches k has had the chance to mark edge (i,k) redundant. The
// ordering is expressed through order.NodeOrder/EdgeComparator, mirroring
// stixar.graph.conn.Transitivity.acyclicReduce's
// mdg.sortEdges(NodeOrder.getEdgeComparator(ts.order())).
func AcyclicReduce(mdg graph.MutableDigraph) ([]graph.Edge, error) {
	ts := order.New(mdg)
	if err := ts.Run(); err != nil {
		return nil, err
	}
	m, err := AcyclicClosure(mdg, ts)
	if err != nil {
		return nil, err
	}

	nodeOrder := order.FromTopSorter(ts)
	nodeOrder.Reverse() // nearer (larger tsNum) targets sort first.
	edgeCmp := order.EdgeComparator(nodeOrder.Compare)

	var remove []graph.Edge
	for _, i := range mdg.Nodes() {
		var edges []graph.Edge
		for e := i.Out(); e != nil; e = e.Next() {
			edges = append(edges, e)
		}
		sort.SliceStable(edges, func(a, b int) bool {
			return edgeCmp(edges[a], edges[b]) < 0
		})

		for idx, e := range edges {
			j := e.Target()
			if !m.Get(i.ID(), j.ID()) {
				remove = append(remove, e)
				continue
			}
			for _, ee := range edges[idx+1:] {
				k := ee.Target()
				if m.Get(j.ID(), k.ID()) {
					m.Clear(i.ID(), k.ID())
				}
			}
		}
	}

	for _, e := range remove {
		if err := mdg.RemoveEdge(e); err != nil {
			return remove, err
		}
	}
	return remove, nil
}

// Reduce computes the transitive reduction of an arbitrary (possibly
// cyclic) digraph: the quotient is acyclically reduced, then every
// non-trivial original SCC is reconnected by a single simple cycle through
// its members — the minimum number of edges that preserves strong
// connectivity. nMap is populated with originalNode -> reducedNode.
func Reduce(dg graph.Digraph, nMap *graph.NodeMap[graph.Node]) (*graph.AdjDigraph, error) {
	s := scc.New(dg)
	s.Run()
	quotient, members, err := s.Quotient()
	if err != nil {
		return nil, err
	}
	quotient.EnsureCapacity(dg.NodeSize(), dg.EdgeSize())

	if _, err := AcyclicReduce(quotient); err != nil {
		return nil, err
	}

	for cid, compMembers := range members {
		if len(compMembers) == 0 {
			continue
		}
		qn := quotient.Node(cid)
		if len(compMembers) == 1 {
			nMap.Set(compMembers[0], qn)
			continue
		}
		cFirst := compMembers[0]
		cLast := compMembers[0]
		nMap.Set(cFirst, qn)
		for _, cNode := range compMembers[1:] {
			qcNode := quotient.AddNode()
			nMap.Set(cNode, qcNode)
			if _, err := quotient.AddEdge(qcNode, nMap.Get(cLast)); err != nil {
				return nil, err
			}
			cLast = cNode
		}
		if _, err := quotient.AddEdge(nMap.Get(cFirst), nMap.Get(cLast)); err != nil {
			return nil, err
		}
	}
	return quotient, nil
}
