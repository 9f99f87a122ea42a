package transitivity

import (
	"github.com/jsubercaze/stixar-graphlib/graph"
	"github.com/jsubercaze/stixar-graphlib/xerrors"
)

// compactMatrix is the read-only Matrix returned by CompactClosure: Get
// delegates to a built Engine's Reaches, while Set and Clear always fail
// with UnsupportedOperation, per spec §6.
type compactMatrix struct {
	engine *Engine
}

func (m *compactMatrix) Get(u, v graph.Node) bool { return m.engine.Reaches(u, v) }

func (m *compactMatrix) Set(u, v graph.Node, val bool) error {
	return xerrors.UnsupportedOperationf("compactClosure matrix is read-only")
}

func (m *compactMatrix) Clear(u, v graph.Node) error {
	return xerrors.UnsupportedOperationf("compactClosure matrix is read-only")
}

var _ graph.Matrix = (*compactMatrix)(nil)
