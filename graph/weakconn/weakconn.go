// Package weakconn computes weakly connected components and detects
// whether a digraph, treated as undirected, is a forest. Both are grounded
// on the original_source/ test fixtures (inferray.test.ForestTest and
// inferray.test.MainTest) that exercise Java's ConnectedComponents and
// ForestChecker classes: neither class's source ships in this retrieval
// pack, so the algorithms here are reconstructed from the tests' usage
// contracts plus a standard union-find, not ported line-by-line.
//
// The union-find itself is grounded on the path-compression/union-by-rank
// scheme in other_examples/papapumpkin-quasar's UnionFind, adapted from a
// string-keyed map representation to a dense int-indexed one matching this
// module's graph/scc idiom.
package weakconn

import "github.com/jsubercaze/stixar-graphlib/graph"

// unionFind is a disjoint-set structure over the dense node-id space
// [0, n), with path compression and union by rank.
type unionFind struct {
	parent []int32
	rank   []int8
}

func newUnionFind(n int) *unionFind {
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	return &unionFind{parent: parent, rank: make([]int8, n)}
}

func (u *unionFind) find(x int32) int32 {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

// union merges the sets containing x and y, reporting whether they were
// already in the same set (i.e. whether the union was a no-op).
func (u *unionFind) union(x, y int32) (alreadyConnected bool) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return true
	}
	switch {
	case u.rank[rx] < u.rank[ry]:
		rx, ry = ry, rx
	case u.rank[rx] == u.rank[ry]:
		u.rank[rx]++
	}
	u.parent[ry] = rx
	return false
}

// WeakComponents computes the weakly connected components of a digraph:
// every edge is treated as undirected when deciding membership. Grounded
// on the constructor/Run/Components() shape inferray.test.ForestTest
// exercises against Java's ConnectedComponents.
type WeakComponents struct {
	digraph graph.Digraph
	uf      *unionFind
	built   bool
}

// New constructs a WeakComponents engine for dg. Call Run before querying
// any result.
func New(dg graph.Digraph) *WeakComponents {
	return &WeakComponents{digraph: dg, uf: newUnionFind(dg.NodeAttrSize())}
}

// Run computes the weak components with a single pass over every edge.
func (w *WeakComponents) Run() {
	filter := w.digraph.Filter()
	for _, n := range w.digraph.Nodes() {
		if filtered(filter, n) {
			continue
		}
		for e := n.Out(); e != nil; e = e.Next() {
			if filteredEdge(filter, e) {
				continue
			}
			t := e.Target()
			if filtered(filter, t) {
				continue
			}
			w.uf.union(int32(n.ID()), int32(t.ID()))
		}
	}
	w.built = true
}

// Components returns a per-node representative array indexed by node id:
// Components()[i] is a representative node id for the weak component
// containing the node with id i, matching Java's Node[] components() whose
// length equals the node count (see ForestTest.java). Nodes absent from
// the digraph (holes, or indices beyond NodeSize) still carry a
// representative equal to their own id, since the union-find starts every
// index as a singleton.
func (w *WeakComponents) Components() []int {
	out := make([]int, len(w.uf.parent))
	for i := range out {
		out[i] = int(w.uf.find(int32(i)))
	}
	return out
}

// Same reports whether u and v lie in the same weak component.
func (w *WeakComponents) Same(u, v graph.Node) bool {
	return w.uf.find(int32(u.ID())) == w.uf.find(int32(v.ID()))
}

// ComponentCount returns the number of distinct weak components among the
// digraph's live nodes.
func (w *WeakComponents) ComponentCount() int {
	seen := make(map[int32]struct{})
	for _, n := range w.digraph.Nodes() {
		seen[w.uf.find(int32(n.ID()))] = struct{}{}
	}
	return len(seen)
}

func filtered(f graph.Filter, n graph.Node) bool {
	return f != nil && f.FilterNode(n)
}

func filteredEdge(f graph.Filter, e graph.Edge) bool {
	return f != nil && f.FilterEdge(e)
}

// IsForest reports whether dg, treated as undirected, has no cycle: every
// weak component is a tree. Grounded on the new-ForestChecker/check(dg)
// contract inferray.test.MainTest exercises; since ForestChecker.java does
// not ship in this pack, the check is reconstructed as the standard
// union-find cycle test rather than a function ported from Java. A
// self-loop, or an edge whose endpoints are already joined, both
// immediately disqualify dg.
func IsForest(dg graph.Digraph) bool {
	uf := newUnionFind(dg.NodeAttrSize())
	filter := dg.Filter()
	for _, n := range dg.Nodes() {
		if filtered(filter, n) {
			continue
		}
		for e := n.Out(); e != nil; e = e.Next() {
			if filteredEdge(filter, e) {
				continue
			}
			t := e.Target()
			if filtered(filter, t) {
				continue
			}
			if n.ID() == t.ID() {
				return false
			}
			if alreadyConnected := uf.union(int32(n.ID()), int32(t.ID())); alreadyConnected {
				return false
			}
		}
	}
	return true
}
