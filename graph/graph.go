// Package graph defines the read-only Digraph capability consumed by the
// strong-components, topological-order and transitive-closure engines, plus
// a mutable adjacency-list implementation sufficient to exercise them.
//
// The engines in graph/scc, graph/order and graph/transitivity never depend
// on the concrete AdjDigraph type below: they only ever touch the Digraph /
// MutableDigraph interfaces, so any adjacency-list container that implements
// them can be substituted.
package graph

// Node is a single vertex. Ids are dense after TrimToSize but the engines
// must tolerate holes left by removals.
type Node interface {
	// ID returns the node's stable integer id in [0, Digraph.NodeAttrSize()).
	ID() int
	// Out returns the head of the node's outgoing adjacency list, or nil if
	// the node has no outgoing edges.
	Out() Edge
}

// Edge is a directed (source, target) pair. Self-loops and parallel edges
// are both permitted.
type Edge interface {
	Source() Node
	Target() Node
	// Next returns the next edge in Source()'s outgoing adjacency list, or
	// nil once the list is exhausted. This mirrors the intrusive
	// linked-list iteration the closure builder and SCC engine rely on.
	Next() Edge
}

// Filter is a read-only predicate that lets callers logically remove nodes
// and edges from a Digraph without mutating it. Filtered elements are
// skipped by every algorithm in this module; a nil Filter filters nothing.
type Filter interface {
	FilterNode(n Node) bool
	FilterEdge(e Edge) bool
}

// Digraph is the read-only contract every engine in this module consumes.
type Digraph interface {
	// Nodes returns a stable-order snapshot of the live (non-removed) nodes.
	// The order is unspecified but stable within one construction pass.
	Nodes() []Node
	// Node returns the node with the given id, or nil if absent.
	Node(id int) Node
	// NodeSize is the number of live nodes.
	NodeSize() int
	// NodeAttrSize is the size an external node-attribute array must have;
	// it accounts for holes left by removed nodes.
	NodeAttrSize() int
	// EdgeSize is the number of live edges.
	EdgeSize() int
	// Filter returns the active Filter, or nil if none is set.
	Filter() Filter
}

// MutableDigraph extends Digraph with the editing operations the
// transitive-reduction and -closure drivers need (adding missing edges,
// removing redundant ones, rebuilding a reduced copy).
type MutableDigraph interface {
	Digraph
	// AddNode allocates a fresh node and returns it.
	AddNode() Node
	// AddEdge adds a directed edge u->v. Both nodes must have been produced
	// by this same digraph; otherwise an InvalidArgument error is returned.
	AddEdge(u, v Node) (Edge, error)
	// RemoveNode removes n and all edges incident to it.
	RemoveNode(n Node) error
	// RemoveEdge removes e.
	RemoveEdge(e Edge) error
	// EnsureCapacity pre-grows internal storage for at least n nodes and m
	// edges, avoiding repeated reallocation during bulk construction.
	EnsureCapacity(n, m int)
}

// Matrix represents a (possibly read-only) boolean reachability matrix.
// Implementations returned by a "compact" construction (see the
// transitivity package's CompactClosure) accept Get but reject Set/Clear
// with an UnsupportedOperation error, matching the contract in spec §6.
type Matrix interface {
	Get(u, v Node) bool
	Set(u, v Node, val bool) error
	Clear(u, v Node) error
}
