// Package transitivity implements the compact transitive-closure engine:
// strongly-connected-components collapse, topological numbering, and the
// interval-encoded reachability index built bottom-up over the quotient
// DAG, plus the transitive-closure and -reduction drivers built on top of
// it. Grounded on stixar's conn.Transitivity.
package transitivity

import (
	"context"
	"time"

	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/graph/order"
	"github.com/jsubercaze/stixar-graphlib/graph/scc"
	"github.com/jsubercaze/stixar-graphlib/logging"
	"github.com/jsubercaze/stixar-graphlib/metrics"
	"github.com/jsubercaze/stixar-graphlib/xerrors"
)

// State is the engine's lifecycle position, per spec §4.8:
// Fresh -> reset() -> Ready -> run() -> Built (-> Invalid on later mutation
// of the source digraph, which this package cannot itself detect and
// therefore does not attempt to enforce beyond documenting the contract).
type State int

const (
	Fresh State = iota
	Ready
	Built
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case Ready:
		return "Ready"
	case Built:
		return "Built"
	default:
		return "Unknown"
	}
}

// Engine computes and answers queries over the transitive closure of a
// Digraph. It is not reentrant: Run after Built first resets internal
// state, matching the source algorithm's non-reentrant contract.
type Engine struct {
	digraph graph.Digraph
	metrics *metrics.Metrics

	scc      *scc.StrongComponents
	quotient *graph.AdjDigraph
	members  [][]graph.Node
	tsorter  *order.TopSorter
	index    *closureIndex

	state State
}

// New constructs an Engine in the Fresh state. Call Reset then Run (or Run
// directly: it performs the Ready transition itself) before querying.
func New(dg graph.Digraph) *Engine {
	return &Engine{digraph: dg, state: Fresh}
}

// WithMetrics attaches a metrics.Metrics sink that Run reports build
// duration, component count, range count and merge ratio to.
func (e *Engine) WithMetrics(m *metrics.Metrics) *Engine {
	e.metrics = m
	return e
}

// Reset discards all built artifacts, transitioning to Ready.
func (e *Engine) Reset() {
	e.scc = nil
	e.quotient = nil
	e.members = nil
	e.tsorter = nil
	e.index = nil
	e.state = Ready
}

// Run executes SCC collapse, topological sort, and the closure builder, in
// that order. It never fails on a well-formed digraph.
func (e *Engine) Run() error {
	e.Reset()

	done := logging.LogDuration(context.Background(), "transitivity.Run", "nodes", e.digraph.NodeSize())
	defer done()
	runStart := time.Now()

	e.scc = scc.New(e.digraph)
	e.scc.Run()

	quotient, members, err := e.scc.Quotient()
	if err != nil {
		return err
	}
	e.quotient = quotient
	e.members = members

	e.tsorter = order.New(quotient)
	if err := e.tsorter.Run(); err != nil {
		return xerrors.Internalf(err, "quotient DAG failed topological sort")
	}

	e.index = buildClosureIndex(quotient, e.tsorter)
	e.state = Built

	if e.metrics != nil {
		e.metrics.BuildDuration.Observe(time.Since(runStart).Seconds())
		e.metrics.ComponentCount.Set(float64(e.scc.ComponentCount()))
		e.metrics.RangeCount.Set(float64(e.index.rangeCount()))
		e.metrics.MergeRatio.Set(e.index.mergeRatio())
	}
	return nil
}

// MustBeBuilt returns an InvalidState error unless the engine is Built.
func (e *Engine) MustBeBuilt() error {
	if e.state != Built {
		return xerrors.InvalidStatef("transitivity.Engine is %s, not Built", e.state)
	}
	return nil
}

// Component returns n's strongly-connected-component id.
func (e *Engine) Component(n graph.Node) int { return e.scc.Component(n) }

// Quotient returns the quotient DAG and its component back-lists, valid
// after Run.
func (e *Engine) Quotient() (*graph.AdjDigraph, [][]graph.Node) { return e.quotient, e.members }

// Reaches implements §4.5: component equality short-circuits to true,
// otherwise a binary search over the querying node's component's interval
// slice.
func (e *Engine) Reaches(u, v graph.Node) bool {
	if e.metrics != nil {
		e.metrics.ReachQueries.Inc()
	}
	cu, cv := e.scc.Component(u), e.scc.Component(v)
	if cu == cv {
		return true
	}
	qu := e.quotient.Node(cu)
	qv := e.quotient.Node(cv)
	return e.index.reachesQuotient(qu, qv)
}

// RangeCount returns the total number of intervals in the frozen range
// pool, for diagnostics.
func (e *Engine) RangeCount() int {
	if e.index == nil {
		return 0
	}
	return e.index.rangeCount()
}
