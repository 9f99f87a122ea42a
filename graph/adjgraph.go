package graph

import (
	"github.com/jsubercaze/stixar-graphlib/xerrors"
)

// adjNode is the concrete Node implementation backing AdjDigraph.
type adjNode struct {
	id  int
	out *adjEdge
}

func (n *adjNode) ID() int { return n.id }
func (n *adjNode) Out() Edge {
	if n.out == nil {
		return nil
	}
	return n.out
}

// adjEdge is the concrete Edge implementation backing AdjDigraph.
type adjEdge struct {
	src, dst *adjNode
	next     *adjEdge
}

func (e *adjEdge) Source() Node { return e.src }
func (e *adjEdge) Target() Node { return e.dst }
func (e *adjEdge) Next() Edge {
	if e.next == nil {
		return nil
	}
	return e.next
}

// AdjDigraph is a mutable, adjacency-list-backed Digraph. Outgoing edges
// for a node form an intrusive singly linked list rooted at adjNode.out,
// exactly the shape the closure builder and SCC engine iterate over.
//
// AdjDigraph supports removal: freed node ids become holes (nil slots) that
// are skipped by iteration and never reused until TrimToSize is called.
type AdjDigraph struct {
	nodes      []*adjNode
	nodeCount  int
	edgeCount  int
	nodeMods   int // bumped on any node add/remove, for fail-fast iteration
	edgeMods   int // bumped on any edge add/remove
	filter     Filter
}

// NewAdjDigraph constructs an empty digraph with room for nHint nodes.
func NewAdjDigraph(nHint int) *AdjDigraph {
	if nHint < 0 {
		nHint = 0
	}
	return &AdjDigraph{nodes: make([]*adjNode, 0, nHint)}
}

// SetFilter installs (or clears, with nil) the active element filter.
func (g *AdjDigraph) SetFilter(f Filter) { g.filter = f }

func (g *AdjDigraph) Filter() Filter { return g.filter }

func (g *AdjDigraph) NodeSize() int     { return g.nodeCount }
func (g *AdjDigraph) NodeAttrSize() int { return len(g.nodes) }
func (g *AdjDigraph) EdgeSize() int     { return g.edgeCount }

func (g *AdjDigraph) Node(id int) Node {
	if id < 0 || id >= len(g.nodes) {
		return nil
	}
	n := g.nodes[id]
	if n == nil {
		return nil
	}
	return n
}

// Nodes returns a dense snapshot of the live nodes in id order. It is a
// point-in-time copy, not a fail-fast iterator: use NodeIter for that.
func (g *AdjDigraph) Nodes() []Node {
	res := make([]Node, 0, g.nodeCount)
	for _, n := range g.nodes {
		if n != nil {
			res = append(res, n)
		}
	}
	return res
}

// AddNode allocates a fresh node with the next available id.
func (g *AdjDigraph) AddNode() Node {
	n := &adjNode{id: len(g.nodes)}
	g.nodes = append(g.nodes, n)
	g.nodeCount++
	g.nodeMods++
	return n
}

// AddNodes allocates count fresh nodes and returns them in id order.
func (g *AdjDigraph) AddNodes(count int) []Node {
	res := make([]Node, count)
	for i := range res {
		res[i] = g.AddNode()
	}
	return res
}

// AddEdge adds a directed edge u->v. Both nodes must be *adjNode values
// produced by this digraph.
func (g *AdjDigraph) AddEdge(u, v Node) (Edge, error) {
	au, ok := u.(*adjNode)
	if !ok {
		return nil, xerrors.InvalidArgumentf("source node %v is not an AdjDigraph node", u)
	}
	av, ok := v.(*adjNode)
	if !ok {
		return nil, xerrors.InvalidArgumentf("target node %v is not an AdjDigraph node", v)
	}
	if au.id < 0 || au.id >= len(g.nodes) || g.nodes[au.id] != au {
		return nil, xerrors.InvalidArgumentf("source node %d does not belong to this digraph", au.id)
	}
	if av.id < 0 || av.id >= len(g.nodes) || g.nodes[av.id] != av {
		return nil, xerrors.InvalidArgumentf("target node %d does not belong to this digraph", av.id)
	}
	e := &adjEdge{src: au, dst: av, next: au.out}
	au.out = e
	g.edgeCount++
	g.edgeMods++
	return e, nil
}

// RemoveNode removes n and every edge incident to it (in either direction).
func (g *AdjDigraph) RemoveNode(n Node) error {
	an, ok := n.(*adjNode)
	if !ok {
		return xerrors.InvalidArgumentf("node %v is not an AdjDigraph node", n)
	}
	if an.id < 0 || an.id >= len(g.nodes) || g.nodes[an.id] != an {
		return xerrors.InvalidArgumentf("node %d does not belong to this digraph", an.id)
	}
	// Drop outgoing edges.
	for e := an.out; e != nil; {
		next := e.next
		g.edgeCount--
		e = next
	}
	an.out = nil
	// Drop incoming edges from every other node (no reverse adjacency is
	// maintained, so this is a linear scan, acceptable for the occasional
	// structural edit this library supports outside of run()).
	for _, other := range g.nodes {
		if other == nil || other == an {
			continue
		}
		var prev *adjEdge
		for e := other.out; e != nil; {
			next := e.next
			if e.dst == an {
				if prev == nil {
					other.out = next
				} else {
					prev.next = next
				}
				g.edgeCount--
			} else {
				prev = e
			}
			e = next
		}
	}
	g.nodes[an.id] = nil
	g.nodeCount--
	g.nodeMods++
	g.edgeMods++
	an.id = -1
	return nil
}

// RemoveEdge removes e from its source's adjacency list.
func (g *AdjDigraph) RemoveEdge(e Edge) error {
	ae, ok := e.(*adjEdge)
	if !ok {
		return xerrors.InvalidArgumentf("edge %v is not an AdjDigraph edge", e)
	}
	var prev *adjEdge
	for cur := ae.src.out; cur != nil; cur = cur.next {
		if cur == ae {
			if prev == nil {
				ae.src.out = cur.next
			} else {
				prev.next = cur.next
			}
			g.edgeCount--
			g.edgeMods++
			return nil
		}
		prev = cur
	}
	return xerrors.InvalidArgumentf("edge already removed")
}

// EnsureCapacity pre-grows the node slice; edge storage in AdjDigraph is
// allocated per-edge so m is accepted for interface compatibility only.
func (g *AdjDigraph) EnsureCapacity(n, m int) {
	if n > cap(g.nodes) {
		grown := make([]*adjNode, len(g.nodes), n)
		copy(grown, g.nodes)
		g.nodes = grown
	}
}

// TrimToSize compacts node ids, eliminating holes left by RemoveNode. Any
// previously built closure/SCC/topo-order artifacts become invalid once
// this is called, since they are keyed by the old ids.
func (g *AdjDigraph) TrimToSize() {
	if g.nodeCount == len(g.nodes) {
		return
	}
	compacted := make([]*adjNode, 0, g.nodeCount)
	for _, n := range g.nodes {
		if n == nil {
			continue
		}
		n.id = len(compacted)
		compacted = append(compacted, n)
	}
	g.nodes = compacted
	g.nodeMods++
}

// NodeIter returns a fail-fast iterator over the live nodes. It reports a
// ConcurrentModification error via Err() if a node is added or removed, or
// node ids are compacted, between calls to Next. Edge additions and removals
// are not detected.
func (g *AdjDigraph) NodeIter() *NodeIterator {
	return &NodeIterator{g: g, expectedMods: g.nodeMods}
}

// NodeIterator walks the live nodes of an AdjDigraph in id order.
type NodeIterator struct {
	g            *AdjDigraph
	idx          int
	expectedMods int
	cur          Node
	err          error
}

func (it *NodeIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.expectedMods != it.g.nodeMods {
		it.err = xerrors.ConcurrentModificationf("digraph was modified during node iteration")
		return false
	}
	for it.idx < len(it.g.nodes) {
		n := it.g.nodes[it.idx]
		it.idx++
		if n != nil {
			it.cur = n
			return true
		}
	}
	return false
}

func (it *NodeIterator) Node() Node { return it.cur }
func (it *NodeIterator) Err() error { return it.err }
