package graph

import "testing"

func TestAddNodeAndEdge(t *testing.T) {
	g := NewAdjDigraph(4)
	nodes := g.AddNodes(4)
	if g.NodeSize() != 4 || g.NodeAttrSize() != 4 {
		t.Fatalf("expected 4 nodes, got size=%d attrSize=%d", g.NodeSize(), g.NodeAttrSize())
	}

	if _, err := g.AddEdge(nodes[0], nodes[1]); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if _, err := g.AddEdge(nodes[1], nodes[2]); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if g.EdgeSize() != 2 {
		t.Fatalf("expected 2 edges, got %d", g.EdgeSize())
	}

	var targets []int
	for e := nodes[0].Out(); e != nil; e = e.Next() {
		targets = append(targets, e.Target().ID())
	}
	if len(targets) != 1 || targets[0] != 1 {
		t.Fatalf("unexpected adjacency for node 0: %v", targets)
	}
}

func TestAddEdgeRejectsForeignNode(t *testing.T) {
	g1 := NewAdjDigraph(2)
	g2 := NewAdjDigraph(2)
	a := g1.AddNode()
	b := g2.AddNode()

	if _, err := g1.AddEdge(a, b); err == nil {
		t.Fatalf("expected InvalidArgument error for foreign node")
	}
}

func TestRemoveNodeDropsIncidentEdges(t *testing.T) {
	g := NewAdjDigraph(3)
	nodes := g.AddNodes(3)
	mustAddEdge(t, g, nodes[0], nodes[1])
	mustAddEdge(t, g, nodes[1], nodes[2])
	mustAddEdge(t, g, nodes[2], nodes[1])

	if err := g.RemoveNode(nodes[1]); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if g.NodeSize() != 2 {
		t.Fatalf("expected 2 live nodes, got %d", g.NodeSize())
	}
	if g.EdgeSize() != 0 {
		t.Fatalf("expected all incident edges removed, got %d edges left", g.EdgeSize())
	}
	if g.Node(1) != nil {
		t.Fatalf("expected removed node's slot to be a hole")
	}
}

func TestNodeIterFailsFastOnMutation(t *testing.T) {
	g := NewAdjDigraph(2)
	g.AddNodes(2)

	it := g.NodeIter()
	if !it.Next() {
		t.Fatalf("expected at least one node")
	}
	g.AddNode()
	if it.Next() {
		t.Fatalf("expected iteration to stop after concurrent modification")
	}
	if it.Err() == nil {
		t.Fatalf("expected ConcurrentModification error")
	}
}

func TestTrimToSizeCompactsHoles(t *testing.T) {
	g := NewAdjDigraph(3)
	nodes := g.AddNodes(3)
	if err := g.RemoveNode(nodes[1]); err != nil {
		t.Fatalf("RemoveNode: %v", err)
	}
	if g.NodeAttrSize() != 3 {
		t.Fatalf("expected a hole before trim, attrSize=%d", g.NodeAttrSize())
	}
	g.TrimToSize()
	if g.NodeAttrSize() != 2 {
		t.Fatalf("expected compacted attrSize=2, got %d", g.NodeAttrSize())
	}
}

func mustAddEdge(t *testing.T, g *AdjDigraph, u, v Node) Edge {
	t.Helper()
	e, err := g.AddEdge(u, v)
	if err != nil {
		t.Fatalf("AddEdge(%d,%d): %v", u.ID(), v.ID(), err)
	}
	return e
}
