package transitivity

import (
	"testing"

	"github.com/jsubercaze/stixar-graphlib/graph"
)

func chainGraph(n int) (*graph.AdjDigraph, []graph.Node) {
	g := graph.NewAdjDigraph(n)
	nodes := g.AddNodes(n)
	for i := 0; i+1 < n; i++ {
		if _, err := g.AddEdge(nodes[i], nodes[i+1]); err != nil {
			panic(err)
		}
	}
	return g, nodes
}

// S1: chain of 4.
func TestChainOfFourReachability(t *testing.T) {
	g, nodes := chainGraph(4)
	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !e.Reaches(nodes[0], nodes[3]) {
		t.Fatalf("expected reaches(0,3)")
	}
	if e.Reaches(nodes[3], nodes[0]) {
		t.Fatalf("expected !reaches(3,0)")
	}
	for i, n := range nodes {
		if e.Component(n) != e.scc.Component(nodes[i]) {
			t.Fatalf("component accessor mismatch")
		}
	}
}

// S2: three-node cycle plus a tail.
func TestCycleWithTailReachability(t *testing.T) {
	g := graph.NewAdjDigraph(4)
	nodes := g.AddNodes(4)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[2])
	mustAdd(t, g, nodes[2], nodes[0])
	mustAdd(t, g, nodes[2], nodes[3])

	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !e.Reaches(nodes[0], nodes[3]) {
		t.Fatalf("expected reaches(0,3)")
	}
	if e.Reaches(nodes[3], nodes[0]) {
		t.Fatalf("expected !reaches(3,0)")
	}
	if !e.Reaches(nodes[0], nodes[1]) {
		t.Fatalf("expected reaches(0,1)")
	}
}

// S3: forest of three directed paths.
func TestForestOfThreeTrees(t *testing.T) {
	g := graph.NewAdjDigraph(11)
	nodes := g.AddNodes(11)
	mustAdd(t, g, nodes[3], nodes[2])
	mustAdd(t, g, nodes[2], nodes[1])
	mustAdd(t, g, nodes[1], nodes[0])
	mustAdd(t, g, nodes[4], nodes[5])
	mustAdd(t, g, nodes[5], nodes[6])
	mustAdd(t, g, nodes[7], nodes[8])
	mustAdd(t, g, nodes[8], nodes[9])
	mustAdd(t, g, nodes[9], nodes[10])

	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if e.scc.ComponentCount() != 11 {
		t.Fatalf("expected 11 singleton SCCs, got %d", e.scc.ComponentCount())
	}
	if !e.Reaches(nodes[3], nodes[0]) {
		t.Fatalf("expected reaches(3,0)")
	}
	if e.Reaches(nodes[4], nodes[0]) {
		t.Fatalf("expected !reaches(4,0)")
	}

	m, err := CompactClosure(g)
	if err != nil {
		t.Fatalf("CompactClosure: %v", err)
	}
	if !m.Get(nodes[3], nodes[0]) {
		t.Fatalf("expected compactClosure to agree on reaches(3,0)")
	}
}

// S4 (scaled down for unit-test speed, same shape): the compact closure of a
// long chain answers sampled forward pairs. Range-pool size is not checked.
func TestLongChainCompactClosure(t *testing.T) {
	const n = 2000
	g, nodes := chainGraph(n)
	m, err := CompactClosure(g)
	if err != nil {
		t.Fatalf("CompactClosure: %v", err)
	}
	for i := 0; i+1 < n; i += 400 {
		for j := i + 1; j < n; j += 400 {
			if !m.Get(nodes[i], nodes[j]) {
				t.Fatalf("expected reaches(%d,%d)", i, j)
			}
		}
	}
}

// S5: transitive reduction of a transitively closed DAG.
func TestAcyclicReduceOfCompleteDAG(t *testing.T) {
	g := graph.NewAdjDigraph(4)
	nodes := g.AddNodes(4)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			mustAdd(t, g, nodes[i], nodes[j])
		}
	}

	removed, err := AcyclicReduce(g)
	if err != nil {
		t.Fatalf("AcyclicReduce: %v", err)
	}
	if len(removed) != 3 {
		t.Fatalf("expected 3 removed edges, got %d", len(removed))
	}
	if g.EdgeSize() != 3 {
		t.Fatalf("expected 3 remaining edges (the Hamilton path), got %d", g.EdgeSize())
	}
	for i := 0; i+1 < 4; i++ {
		found := false
		for e := nodes[i].Out(); e != nil; e = e.Next() {
			if e.Target() == nodes[i+1] {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected Hamilton-path edge (%d,%d) to survive", i, i+1)
		}
	}
}

// S6: reduction of a digraph with a 3-cycle plus one tail edge.
func TestReduceGeneralDigraphWithCycle(t *testing.T) {
	g := graph.NewAdjDigraph(4)
	nodes := g.AddNodes(4)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[2])
	mustAdd(t, g, nodes[2], nodes[0])
	mustAdd(t, g, nodes[0], nodes[3])

	nMap := graph.NewNodeMap[graph.Node](g.NodeAttrSize())
	reduced, err := Reduce(g, nMap)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if reduced.EdgeSize() != 4 {
		t.Fatalf("expected 4 edges in the reduced graph, got %d", reduced.EdgeSize())
	}
	for _, n := range nodes {
		if nMap.Get(n) == nil {
			t.Fatalf("expected every original node to be mapped into the reduction")
		}
	}
}

// Boundary: single node, no edges.
func TestSingleNodeReachesItself(t *testing.T) {
	g := graph.NewAdjDigraph(1)
	n := g.AddNode()
	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !e.Reaches(n, n) {
		t.Fatalf("expected reaches(n,n) for a single isolated node")
	}
}

// Boundary: a self-loop does not grow the component beyond size 1.
func TestSelfLoopDoesNotGrowComponent(t *testing.T) {
	g := graph.NewAdjDigraph(1)
	n := g.AddNode()
	mustAdd(t, g, n, n)

	s := New(g)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !s.Reaches(n, n) {
		t.Fatalf("expected reaches(n,n)")
	}
	if s.scc.ComponentCount() != 1 {
		t.Fatalf("expected exactly 1 component, got %d", s.scc.ComponentCount())
	}
}

// Boundary: two-node cycle collapses to one SCC, all four pairs reachable.
func TestTwoNodeCycleAllPairsReach(t *testing.T) {
	g := graph.NewAdjDigraph(2)
	nodes := g.AddNodes(2)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[0])

	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, u := range nodes {
		for _, v := range nodes {
			if !e.Reaches(u, v) {
				t.Fatalf("expected reaches(%d,%d) in a 2-cycle", u.ID(), v.ID())
			}
		}
	}
}

// P3: transitivity of reaches over a random-ish chain-plus-branch shape.
func TestReachesIsTransitive(t *testing.T) {
	g := graph.NewAdjDigraph(6)
	nodes := g.AddNodes(6)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[2])
	mustAdd(t, g, nodes[2], nodes[3])
	mustAdd(t, g, nodes[1], nodes[4])
	mustAdd(t, g, nodes[4], nodes[5])

	e := New(g)
	if err := e.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, u := range nodes {
		for _, v := range nodes {
			for _, w := range nodes {
				if e.Reaches(u, v) && e.Reaches(v, w) && !e.Reaches(u, w) {
					t.Fatalf("transitivity violated: %d->%d->%d", u.ID(), v.ID(), w.ID())
				}
			}
		}
	}
}

// P6: compactClosure and closure agree on every pair.
func TestCompactClosureAgreesWithClosure(t *testing.T) {
	g := graph.NewAdjDigraph(5)
	nodes := g.AddNodes(5)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[2])
	mustAdd(t, g, nodes[2], nodes[0])
	mustAdd(t, g, nodes[2], nodes[3])
	mustAdd(t, g, nodes[3], nodes[4])

	compact, err := CompactClosure(g)
	if err != nil {
		t.Fatalf("CompactClosure: %v", err)
	}
	dense, err := Closure(g)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	for _, u := range nodes {
		for _, v := range nodes {
			if compact.Get(u, v) != dense.Get(u.ID(), v.ID()) {
				t.Fatalf("disagreement on (%d,%d)", u.ID(), v.ID())
			}
		}
	}
}

// compactClosure's matrix rejects mutation.
func TestCompactClosureIsReadOnly(t *testing.T) {
	g, nodes := chainGraph(2)
	m, err := CompactClosure(g)
	if err != nil {
		t.Fatalf("CompactClosure: %v", err)
	}
	if err := m.Set(nodes[0], nodes[1], true); err == nil {
		t.Fatalf("expected UnsupportedOperation from Set")
	}
	if err := m.Clear(nodes[0], nodes[1]); err == nil {
		t.Fatalf("expected UnsupportedOperation from Clear")
	}
}

// P7: close() makes the digraph transitive, and closure is unaffected.
func TestCloseMakesGraphTransitive(t *testing.T) {
	g := graph.NewAdjDigraph(4)
	nodes := g.AddNodes(4)
	mustAdd(t, g, nodes[0], nodes[1])
	mustAdd(t, g, nodes[1], nodes[2])
	mustAdd(t, g, nodes[2], nodes[3])

	before, err := Closure(g)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}

	added, err := Close(g)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(added) == 0 {
		t.Fatalf("expected Close to add edges to a non-transitive chain")
	}

	after, err := Closure(g)
	if err != nil {
		t.Fatalf("Closure: %v", err)
	}
	for _, u := range nodes {
		for _, v := range nodes {
			if before.Get(u.ID(), v.ID()) != after.Get(u.ID(), v.ID()) {
				t.Fatalf("closure changed after close() at (%d,%d)", u.ID(), v.ID())
			}
		}
	}
	for _, u := range nodes {
		for _, v := range nodes {
			if !after.Get(u.ID(), v.ID()) {
				continue
			}
			found := u == v
			for e := u.Out(); e != nil; e = e.Next() {
				if e.Target() == v {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a direct edge (%d,%d) after close()", u.ID(), v.ID())
			}
		}
	}
}

func mustAdd(t *testing.T, g *graph.AdjDigraph, u, v graph.Node) {
	t.Helper()
	if _, err := g.AddEdge(u, v); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
}
