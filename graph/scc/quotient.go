package scc

import (
	"github.com/jsubercaze/stixar-graphlib/graph"
)

// Quotient builds the condensation DAG: one quotient node per component,
// with a deduplicated edge between component i and component j whenever
// some member of i has an edge to some member of j (i != j). It also
// returns, for each quotient node, the back-list of original members —
// the Go equivalent of stashing a QuotientCompListMapKey attribute on the
// quotient graph, just returned directly instead of through an attribute
// map.
//
// Run must have completed before calling Quotient.
func (sc *StrongComponents) Quotient() (*graph.AdjDigraph, [][]graph.Node, error) {
	if err := sc.MustBeBuilt(); err != nil {
		return nil, nil, err
	}

	cc := int(sc.componentCount)
	q := graph.NewAdjDigraph(cc)
	qNodes := q.AddNodes(cc)
	members := make([][]graph.Node, cc)

	for _, n := range sc.digraph.Nodes() {
		if sc.isFilteredNode(n) {
			continue
		}
		c := sc.component[n.ID()]
		if c == Unassigned {
			continue
		}
		members[c] = append(members[c], n)
	}

	// Dense componentCount x componentCount bitmap for edge dedup, mirroring
	// the original's BitSet m sized componentCount*componentCount.
	seen := make([]bool, cc*cc)
	for _, n := range sc.digraph.Nodes() {
		if sc.isFilteredNode(n) {
			continue
		}
		ci := sc.component[n.ID()]
		if ci == Unassigned {
			continue
		}
		for e := n.Out(); e != nil; e = e.Next() {
			if sc.isFilteredEdge(e) {
				continue
			}
			t := e.Target()
			if sc.isFilteredNode(t) {
				continue
			}
			cj := sc.component[t.ID()]
			if cj == Unassigned || cj == ci {
				continue
			}
			key := int(ci)*cc + int(cj)
			if seen[key] {
				continue
			}
			seen[key] = true
			if _, err := q.AddEdge(qNodes[ci], qNodes[cj]); err != nil {
				return nil, nil, err
			}
		}
	}

	return q, members, nil
}
