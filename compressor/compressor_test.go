package compressor

import (
	"fmt"
	"testing"
)

func TestCompress(t *testing.T) {
	x := -1 // an empty value; scan tables use StateNil

	levels := []Level{
		LevelNone,
		LevelUniqueRows,
		LevelRowDisplacement,
	}

	tests := []struct {
		caption  string
		original []int
		rowCount int
		colCount int
	}{
		{
			caption: "all rows are equal",
			original: []int{
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "all cells are empty",
			original: []int{
				x, x, x, x, x,
				x, x, x, x, x,
				x, x, x, x, x,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "an empty row between full rows",
			original: []int{
				1, 1, 1, 1, 1,
				x, x, x, x, x,
				1, 1, 1, 1, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "sparse rows",
			original: []int{
				1, x, 1, 1, 1,
				1, 1, x, 1, 1,
				1, 1, 1, x, 1,
			},
			rowCount: 3,
			colCount: 5,
		},
		{
			caption: "a transition table of (a|b)*abb",
			original: []int{
				1, 0,
				1, 2,
				1, 3,
				1, 0,
			},
			rowCount: 4,
			colCount: 2,
		},
		{
			caption: "a single column",
			original: []int{
				x,
				0,
				x,
				2,
			},
			rowCount: 4,
			colCount: 1,
		},
	}
	for _, tt := range tests {
		for _, lv := range levels {
			t.Run(fmt.Sprintf("%v/%v", tt.caption, lv), func(t *testing.T) {
				dup := make([]int, len(tt.original))
				copy(dup, tt.original)

				orig, err := NewOriginalTable(tt.original, tt.colCount)
				if err != nil {
					t.Fatal(err)
				}
				comp, err := Compress(orig, lv, x)
				if err != nil {
					t.Fatal(err)
				}
				rowCount, colCount := comp.OriginalTableSize()
				if rowCount != tt.rowCount || colCount != tt.colCount {
					t.Fatalf("unexpected table size; want: %vx%v, got: %vx%v", tt.rowCount, tt.colCount, rowCount, colCount)
				}
				for i := 0; i < tt.rowCount; i++ {
					for j := 0; j < tt.colCount; j++ {
						v, err := comp.Lookup(i, j)
						if err != nil {
							t.Fatal(err)
						}
						expected := tt.original[i*tt.colCount+j]
						if v != expected {
							t.Fatalf("unexpected entry (%v, %v); want: %v, got: %v", i, j, expected, v)
						}
					}
				}

				// Calling with out-of-range indexes should be an error.
				if _, err := comp.Lookup(0, -1); err == nil {
					t.Fatalf("expected error didn't occur (0, -1)")
				}
				if _, err := comp.Lookup(-1, 0); err == nil {
					t.Fatalf("expected error didn't occur (-1, 0)")
				}
				if _, err := comp.Lookup(rowCount-1, colCount); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount-1, colCount)
				}
				if _, err := comp.Lookup(rowCount, colCount-1); err == nil {
					t.Fatalf("expected error didn't occur (%v, %v)", rowCount, colCount-1)
				}

				// The compressor must not break the original table.
				for i := range tt.original {
					if tt.original[i] != dup[i] {
						t.Fatalf("the original table is broken at %v; want: %v, got: %v", i, dup[i], tt.original[i])
					}
				}
			})
		}
	}
}

func TestUniqueEntriesTable_SharesRows(t *testing.T) {
	orig, err := NewOriginalTable([]int{
		1, -1,
		2, 3,
		1, -1,
	}, 2)
	if err != nil {
		t.Fatal(err)
	}
	tab := NewUniqueEntriesTable()
	if err := tab.Compress(orig); err != nil {
		t.Fatal(err)
	}
	if len(tab.UniqueEntries) != 4 {
		t.Fatalf("two unique rows are expected; got: %v", tab.UniqueEntries)
	}
	if tab.RowNums[0] != tab.RowNums[2] {
		t.Fatalf("equal rows must share an entry; got: %v", tab.RowNums)
	}
}

func TestNewOriginalTable_Error(t *testing.T) {
	tests := []struct {
		caption  string
		entries  []int
		colCount int
	}{
		{caption: "no entries", entries: nil, colCount: 1},
		{caption: "no columns", entries: []int{1}, colCount: 0},
		{caption: "a ragged table", entries: []int{1, 2, 3}, colCount: 2},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			if _, err := NewOriginalTable(tt.entries, tt.colCount); err == nil {
				t.Fatal("an error must occur")
			}
		})
	}
}

func TestCompress_UnsupportedLevel(t *testing.T) {
	orig, err := NewOriginalTable([]int{1}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Compress(orig, Level(9), 0); err == nil {
		t.Fatal("an error must occur")
	}
}
