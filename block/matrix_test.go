package block

import "testing"

func TestMatrixSetAndGet(t *testing.T) {
	m := NewMatrix()
	c := m.Cell(10, 20)
	c.SetNumber(1.5)
	m.MarkWritten(10, 20)

	got, ok := m.Get(10, 20)
	if !ok || got != c {
		t.Fatalf("Get(10,20) = %v, %v; want same cell, true", got, ok)
	}
	if !m.Has(10, 20) {
		t.Fatalf("Has(10,20) = false")
	}
	if m.Has(11, 20) {
		t.Fatalf("Has(11,20) = true on untouched cell")
	}
}

func TestMatrixClearEvictsEmptyBlock(t *testing.T) {
	m := NewMatrix()
	m.Cell(0, 0).SetNumber(1)
	m.MarkWritten(0, 0)
	if m.BlockCount() != 1 {
		t.Fatalf("BlockCount() = %d; want 1", m.BlockCount())
	}
	m.Clear(0, 0)
	if m.Has(0, 0) {
		t.Fatalf("Has(0,0) = true after Clear")
	}
	if m.BlockCount() != 0 {
		t.Fatalf("BlockCount() = %d after clearing the only occupied cell; want 0", m.BlockCount())
	}
}

func TestMatrixClearKeepsBlockWithOtherOccupants(t *testing.T) {
	m := NewMatrix()
	m.Cell(0, 0).SetNumber(1)
	m.MarkWritten(0, 0)
	m.Cell(1, 1).SetNumber(2)
	m.MarkWritten(1, 1)
	m.Clear(0, 0)
	if m.BlockCount() != 1 {
		t.Fatalf("BlockCount() = %d; want 1 (block still holds (1,1))", m.BlockCount())
	}
	if !m.Has(1, 1) {
		t.Fatalf("Has(1,1) = false after clearing a sibling cell")
	}
}

func TestMatrixCrossBlockCoordinates(t *testing.T) {
	m := NewMatrix()
	// (0,0) and (64,64) land in different blocks given BlockSize 64.
	m.Cell(0, 0).SetNumber(1)
	m.MarkWritten(0, 0)
	m.Cell(64, 64).SetNumber(2)
	m.MarkWritten(64, 64)
	if m.BlockCount() != 2 {
		t.Fatalf("BlockCount() = %d; want 2 distinct blocks", m.BlockCount())
	}
	all := m.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d entries; want 2", len(all))
	}
}

func TestMatrixAllReportsCorrectCoordinates(t *testing.T) {
	m := NewMatrix()
	m.Cell(5, 9).SetNumber(7)
	m.MarkWritten(5, 9)
	all := m.All()
	if len(all) != 1 {
		t.Fatalf("All() returned %d entries; want 1", len(all))
	}
	if all[0].Row != 5 || all[0].Col != 9 {
		t.Fatalf("All()[0] = row %d col %d; want 5, 9", all[0].Row, all[0].Col)
	}
	if v, ok := all[0].Cell.Number(); !ok || v != 7 {
		t.Fatalf("All()[0].Cell.Number() = %v, %v; want 7, true", v, ok)
	}
}
