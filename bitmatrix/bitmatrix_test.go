package bitmatrix

import "testing"

func TestSetGetClearRoundTrip(t *testing.T) {
	m := New(4)
	if m.Get(1, 2) {
		t.Fatalf("expected unset bit to read false")
	}
	if err := m.Set(1, 2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !m.Get(1, 2) {
		t.Fatalf("expected bit (1,2) to be set")
	}
	if err := m.Clear(1, 2); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Get(1, 2) {
		t.Fatalf("expected bit (1,2) to be cleared")
	}
}

func TestSetRejectsNegativeCoordinates(t *testing.T) {
	m := New(2)
	if err := m.Set(-1, 0); err == nil {
		t.Fatalf("expected InvalidArgument for negative row")
	}
	if err := m.Set(0, -1); err == nil {
		t.Fatalf("expected InvalidArgument for negative column")
	}
}

func TestGetOutOfRangeIsFalseNotPanic(t *testing.T) {
	m := New(2)
	if m.Get(100, 100) {
		t.Fatalf("expected an unallocated row/column to read false")
	}
}

// A column index far beyond any word boundary must still address correctly,
// exercising the word-slice growth that lets this structure scale past a
// single contiguous n² buffer (spec's long-chain scenario).
func TestSetAcrossWordBoundary(t *testing.T) {
	m := New(1)
	cols := []int{0, 63, 64, 65, 127, 128, 4095, 4096}
	for _, c := range cols {
		if err := m.Set(0, c); err != nil {
			t.Fatalf("Set(0,%d): %v", c, err)
		}
	}
	for _, c := range cols {
		if !m.Get(0, c) {
			t.Fatalf("expected bit (0,%d) to be set", c)
		}
	}
	if m.Get(0, 66) {
		t.Fatalf("expected neighboring bit (0,66) to remain clear")
	}
}

func TestRowsReflectsHighestTouchedIndex(t *testing.T) {
	m := New(0)
	if err := m.Set(9, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if m.Rows() != 10 {
		t.Fatalf("expected Rows()=10 after touching row 9, got %d", m.Rows())
	}
}

func TestFillRowMatchesPredicate(t *testing.T) {
	m := New(5)
	reach := func(i, j int) bool { return j <= i }
	m.FillRow(3, 5, reach)
	for j := 0; j < 5; j++ {
		want := reach(3, j)
		if got := m.Get(3, j); got != want {
			t.Fatalf("row 3 col %d: got %v want %v", j, got, want)
		}
	}
	if m.Get(2, 0) {
		t.Fatalf("expected FillRow to touch only its own row")
	}
}

func TestMaterializeRowsSequentialAndParallelAgree(t *testing.T) {
	const n = 37
	reach := func(i, j int) bool { return j <= i }

	seq := MaterializeRows(n, 1, reach)
	par := MaterializeRows(n, 8, reach)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if seq.Get(i, j) != par.Get(i, j) {
				t.Fatalf("disagreement at (%d,%d): sequential=%v parallel=%v", i, j, seq.Get(i, j), par.Get(i, j))
			}
			if seq.Get(i, j) != reach(i, j) {
				t.Fatalf("materialized bit (%d,%d) disagrees with predicate", i, j)
			}
		}
	}
}

func TestMaterializeRowsEmpty(t *testing.T) {
	m := MaterializeRows(0, 4, func(i, j int) bool { return true })
	if m.Rows() != 0 {
		t.Fatalf("expected an empty matrix, got Rows()=%d", m.Rows())
	}
}
