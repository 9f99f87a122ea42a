package transitivity

import (
	"github.com/jsubercaze/stixar-graphlib/bitmatrix"
	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/graph/order"
	"github.com/jsubercaze/stixar-graphlib/metrics"
)

// CompactClosure builds the interval-encoded index for dg and wraps it in a
// read-only Matrix whose Get answers in O(log k). Set and Clear always
// return an UnsupportedOperation error.
func CompactClosure(dg graph.Digraph) (graph.Matrix, error) {
	e := New(dg)
	if err := e.Run(); err != nil {
		return nil, err
	}
	return &compactMatrix{engine: e}, nil
}

// Closure materializes a dense reachability matrix for an arbitrary
// digraph, SCC collapse included. Prefer CompactClosure unless the number
// of queries against the result is expected to exceed roughly
// |V|²/log(|V|).
func Closure(dg graph.Digraph) (*bitmatrix.Matrix, error) {
	e := New(dg)
	if err := e.Run(); err != nil {
		return nil, err
	}
	return materializeFromEngine(dg, e, nil), nil
}

// ClosureWithMetrics is Closure, reporting materialized-cell counts to m.
func ClosureWithMetrics(dg graph.Digraph, m *metrics.Metrics) (*bitmatrix.Matrix, error) {
	e := New(dg).WithMetrics(m)
	if err := e.Run(); err != nil {
		return nil, err
	}
	return materializeFromEngine(dg, e, m), nil
}

func materializeFromEngine(dg graph.Digraph, e *Engine, m *metrics.Metrics) *bitmatrix.Matrix {
	nodes := dg.Nodes()
	n := dg.NodeAttrSize()
	idOf := make([]graph.Node, n)
	for _, node := range nodes {
		idOf[node.ID()] = node
	}
	reach := func(i, j int) bool {
		u, v := idOf[i], idOf[j]
		if u == nil || v == nil {
			return false
		}
		return e.Reaches(u, v)
	}
	mat := bitmatrix.MaterializeRows(n, 0, reach)
	if m != nil {
		m.MaterializedCell.Add(float64(n) * float64(n))
	}
	return mat
}

// AcyclicClosure materializes a dense reachability matrix for an already
// acyclic digraph, skipping SCC collapse entirely (the quotient is the
// digraph itself). If tsort is provided it is used instead of computing a
// fresh topological sort; it must be a valid ordering of dg. AcyclicClosure
// returns an InvalidArgument error if dg turns out not to be acyclic.
func AcyclicClosure(dg graph.Digraph, tsort ...*order.TopSorter) (*bitmatrix.Matrix, error) {
	ts, err := acyclicTopSort(dg, tsort...)
	if err != nil {
		return nil, err
	}
	idx := buildClosureIndex(dg, ts)

	nodes := dg.Nodes()
	n := dg.NodeAttrSize()
	idOf := make([]graph.Node, n)
	for _, node := range nodes {
		idOf[node.ID()] = node
	}
	reach := func(i, j int) bool {
		u, v := idOf[i], idOf[j]
		if u == nil || v == nil {
			return false
		}
		return idx.reachesQuotient(u, v)
	}
	return bitmatrix.MaterializeRows(n, 0, reach), nil
}

func acyclicTopSort(dg graph.Digraph, given ...*order.TopSorter) (*order.TopSorter, error) {
	if len(given) > 0 && given[0] != nil {
		return given[0], nil
	}
	ts := order.New(dg)
	if err := ts.Run(); err != nil {
		return nil, err
	}
	return ts, nil
}
