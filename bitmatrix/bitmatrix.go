// Package bitmatrix implements a sparse, expandable two-dimensional bit
// structure for materializing dense reachability matrices. It deliberately
// avoids a single contiguous n² bit buffer — each row grows its own word
// slice independently — so that chains well beyond √(2³¹) nodes remain
// addressable without a single allocation overflowing an int.
package bitmatrix

import (
	"github.com/jsubercaze/stixar-graphlib/xerrors"
)

const wordBits = 64

// bitRow is one row's expandable bit vector.
type bitRow struct {
	words []uint64
}

func (r *bitRow) ensure(word int) {
	if word < len(r.words) {
		return
	}
	grown := make([]uint64, word+1)
	copy(grown, r.words)
	r.words = grown
}

func (r *bitRow) get(col int) bool {
	word := col / wordBits
	if word >= len(r.words) {
		return false
	}
	return r.words[word]&(1<<uint(col%wordBits)) != 0
}

func (r *bitRow) set(col int) {
	word := col / wordBits
	r.ensure(word)
	r.words[word] |= 1 << uint(col%wordBits)
}

func (r *bitRow) clear(col int) {
	word := col / wordBits
	if word >= len(r.words) {
		return
	}
	r.words[word] &^= 1 << uint(col%wordBits)
}

// Matrix is a row-major sparse boolean matrix over non-negative int
// coordinates. Rows are allocated lazily, one per Set call's row index, and
// each row's word slice grows independently of every other row's.
type Matrix struct {
	rows []*bitRow
}

// New constructs an empty Matrix with room for rowHint rows.
func New(rowHint int) *Matrix {
	if rowHint < 0 {
		rowHint = 0
	}
	return &Matrix{rows: make([]*bitRow, rowHint)}
}

func (m *Matrix) ensureRow(i int) *bitRow {
	if i >= len(m.rows) {
		grown := make([]*bitRow, i+1)
		copy(grown, m.rows)
		m.rows = grown
	}
	if m.rows[i] == nil {
		m.rows[i] = &bitRow{}
	}
	return m.rows[i]
}

// Get reports whether bit (i, j) is set.
func (m *Matrix) Get(i, j int) bool {
	if i < 0 || j < 0 || i >= len(m.rows) || m.rows[i] == nil {
		return false
	}
	return m.rows[i].get(j)
}

// Set turns bit (i, j) on.
func (m *Matrix) Set(i, j int) error {
	if i < 0 || j < 0 {
		return xerrors.InvalidArgumentf("bitmatrix: negative coordinate (%d, %d)", i, j)
	}
	m.ensureRow(i).set(j)
	return nil
}

// Clear turns bit (i, j) off. Clearing a bit in a row that was never
// allocated is a no-op, matching a matrix whose default value is false.
func (m *Matrix) Clear(i, j int) error {
	if i < 0 || j < 0 {
		return xerrors.InvalidArgumentf("bitmatrix: negative coordinate (%d, %d)", i, j)
	}
	if i < len(m.rows) && m.rows[i] != nil {
		m.rows[i].clear(j)
	}
	return nil
}

// Rows returns the number of allocated rows (an upper bound on the largest
// row index ever touched, not a dense row count).
func (m *Matrix) Rows() int { return len(m.rows) }
