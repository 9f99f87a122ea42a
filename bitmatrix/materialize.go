package bitmatrix

import "github.com/sourcegraph/conc"

// FillRow sets bit (i, j) for every j in [0, n) that reach(i, j) reports
// true for. It owns row i exclusively, so MaterializeRows can run one
// goroutine per row without any shared mutable state beyond the Matrix's
// already-independent per-row word slices.
func (m *Matrix) FillRow(i, n int, reach func(i, j int) bool) {
	for j := 0; j < n; j++ {
		if reach(i, j) {
			m.Set(i, j)
		}
	}
}

// MaterializeRows fills every row of an n x n matrix by querying reach for
// each ordered pair. Rows are independent (each row only ever calls m.Set
// with its own row index), so this parallelizes across workers goroutines
// via sourcegraph/conc with no additional locking. A workers value <= 1
// runs sequentially in the calling goroutine.
//
// Spec's Non-goals rule out parallel *construction* of the closure index
// itself; materializing a dense matrix from an already-Built index is a
// read-only downstream consumer of that index, so it is fair game for
// concurrency.
func MaterializeRows(n, workers int, reach func(i, j int) bool) *Matrix {
	m := New(n)
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			m.FillRow(i, n, reach)
		}
		return m
	}

	var wg conc.WaitGroup
	rowsPerWorker := (n + workers - 1) / workers
	for start := 0; start < n; start += rowsPerWorker {
		end := start + rowsPerWorker
		if end > n {
			end = n
		}
		start, end := start, end
		wg.Go(func() {
			for i := start; i < end; i++ {
				m.FillRow(i, n, reach)
			}
		})
	}
	wg.Wait()
	return m
}
