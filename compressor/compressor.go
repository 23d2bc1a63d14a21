package compressor

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// OriginalTable is a dense row-major table of ints.
type OriginalTable struct {
	entries  []int
	rowCount int
	colCount int
}

func NewOriginalTable(entries []int, colCount int) (*OriginalTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("entries is empty")
	}
	if colCount <= 0 {
		return nil, fmt.Errorf("colCount must be >=1")
	}
	if len(entries)%colCount != 0 {
		return nil, fmt.Errorf("entries length or column count are incorrect; entries length: %v, column count: %v", len(entries), colCount)
	}

	return &OriginalTable{
		entries:  entries,
		rowCount: len(entries) / colCount,
		colCount: colCount,
	}, nil
}

func (t *OriginalTable) row(r int) []int {
	return t.entries[r*t.colCount : (r+1)*t.colCount]
}

type Compressor interface {
	Compress(orig *OriginalTable) error
	Lookup(row, col int) (int, error)
	OriginalTableSize() (int, int)
}

var (
	_ Compressor = &DenseTable{}
	_ Compressor = &UniqueEntriesTable{}
	_ Compressor = &RowDisplacementTable{}
)

type Level int

const (
	LevelNone Level = iota
	LevelUniqueRows
	LevelRowDisplacement
)

func (lv Level) String() string {
	switch lv {
	case LevelNone:
		return "none"
	case LevelUniqueRows:
		return "unique rows"
	case LevelRowDisplacement:
		return "row displacement"
	}
	return fmt.Sprintf("level %d", int(lv))
}

// Compress compresses orig with the compressor of the given level. emptyValue only matters to the
// row displacement table, which stores nothing for empty cells.
func Compress(orig *OriginalTable, lv Level, emptyValue int) (Compressor, error) {
	var c Compressor
	switch lv {
	case LevelNone:
		c = NewDenseTable()
	case LevelUniqueRows:
		c = NewUniqueEntriesTable()
	case LevelRowDisplacement:
		c = NewRowDisplacementTable(emptyValue)
	default:
		return nil, fmt.Errorf("unsupported compression level: %v", int(lv))
	}
	if err := c.Compress(orig); err != nil {
		return nil, err
	}
	return c, nil
}

func checkRange(row, col, rowCount, colCount int) error {
	if row < 0 || row >= rowCount || col < 0 || col >= colCount {
		return fmt.Errorf("indexes are out of range: [%v, %v]", row, col)
	}
	return nil
}

// DenseTable keeps the table as it is.
type DenseTable struct {
	Entries          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewDenseTable() *DenseTable {
	return &DenseTable{}
}

func (tab *DenseTable) Compress(orig *OriginalTable) error {
	tab.Entries = slices.Clone(orig.entries)
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	return nil
}

func (tab *DenseTable) Lookup(row, col int) (int, error) {
	if err := checkRange(row, col, tab.OriginalRowCount, tab.OriginalColCount); err != nil {
		return 0, err
	}
	return tab.Entries[row*tab.OriginalColCount+col], nil
}

func (tab *DenseTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

// UniqueEntriesTable stores every distinct row once. RowNums maps an original row to its unique row.
type UniqueEntriesTable struct {
	UniqueEntries    []int
	RowNums          []int
	OriginalRowCount int
	OriginalColCount int
}

func NewUniqueEntriesTable() *UniqueEntriesTable {
	return &UniqueEntriesTable{}
}

func (tab *UniqueEntriesTable) Lookup(row, col int) (int, error) {
	if err := checkRange(row, col, tab.OriginalRowCount, tab.OriginalColCount); err != nil {
		return 0, err
	}
	return tab.UniqueEntries[tab.RowNums[row]*tab.OriginalColCount+col], nil
}

func (tab *UniqueEntriesTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

func (tab *UniqueEntriesTable) Compress(orig *OriginalTable) error {
	var uniqueEntries []int
	rowNums := make([]int, orig.rowCount)
	key2RowNum := map[string]int{}
	for row := 0; row < orig.rowCount; row++ {
		entries := orig.row(row)
		key := rowKey(entries)
		rowNum, ok := key2RowNum[key]
		if !ok {
			rowNum = len(key2RowNum)
			key2RowNum[key] = rowNum
			uniqueEntries = append(uniqueEntries, entries...)
		}
		rowNums[row] = rowNum
	}

	tab.UniqueEntries = uniqueEntries
	tab.RowNums = rowNums
	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount

	return nil
}

func rowKey(entries []int) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strconv.Itoa(e))
		b.WriteByte(' ')
	}
	return b.String()
}

// ForbiddenValue marks a slot of RowDisplacementTable.Bounds that belongs to no row.
const ForbiddenValue = -1

// RowDisplacementTable overlays all rows on one array. Row r starts at RowDisplacement[r], and
// Bounds records which row owns each slot, so a slot owned by another row reads as EmptyValue.
type RowDisplacementTable struct {
	OriginalRowCount int
	OriginalColCount int
	EmptyValue       int
	Entries          []int
	Bounds           []int
	RowDisplacement  []int
}

func NewRowDisplacementTable(emptyValue int) *RowDisplacementTable {
	return &RowDisplacementTable{
		EmptyValue: emptyValue,
	}
}

func (tab *RowDisplacementTable) Lookup(row int, col int) (int, error) {
	if err := checkRange(row, col, tab.OriginalRowCount, tab.OriginalColCount); err != nil {
		return tab.EmptyValue, err
	}
	d := tab.RowDisplacement[row]
	if tab.Bounds[d+col] != row {
		return tab.EmptyValue, nil
	}
	return tab.Entries[d+col], nil
}

func (tab *RowDisplacementTable) OriginalTableSize() (int, int) {
	return tab.OriginalRowCount, tab.OriginalColCount
}

type rowInfo struct {
	rowNum      int
	nonEmptyCol []int
}

// Compress places the densest rows first, each at the lowest displacement where its non-empty
// cells hit only free slots.
func (tab *RowDisplacementTable) Compress(orig *OriginalTable) error {
	rows := make([]rowInfo, orig.rowCount)
	for r := 0; r < orig.rowCount; r++ {
		rows[r].rowNum = r
		for c, v := range orig.row(r) {
			if v != tab.EmptyValue {
				rows[r].nonEmptyCol = append(rows[r].nonEmptyCol, c)
			}
		}
	}
	slices.SortStableFunc(rows, func(a, b rowInfo) int {
		return len(b.nonEmptyCol) - len(a.nonEmptyCol)
	})

	size := len(orig.entries) + orig.colCount
	entries := make([]int, size)
	bounds := make([]int, size)
	for i := range entries {
		entries[i] = tab.EmptyValue
		bounds[i] = ForbiddenValue
	}
	rowDisplacement := make([]int, orig.rowCount)
	bottom := orig.colCount
	d := 0
	for _, info := range rows {
		if len(info.nonEmptyCol) == 0 {
			continue
		}
		for !fits(bounds, d, info.nonEmptyCol) {
			d++
		}
		rowDisplacement[info.rowNum] = d
		for _, c := range info.nonEmptyCol {
			entries[d+c] = orig.entries[info.rowNum*orig.colCount+c]
			bounds[d+c] = info.rowNum
		}
		if d+orig.colCount > bottom {
			bottom = d + orig.colCount
		}
		d++
	}

	tab.OriginalRowCount = orig.rowCount
	tab.OriginalColCount = orig.colCount
	tab.Entries = entries[:bottom]
	tab.Bounds = bounds[:bottom]
	tab.RowDisplacement = rowDisplacement

	return nil
}

func fits(bounds []int, d int, cols []int) bool {
	for _, c := range cols {
		if bounds[d+c] != ForbiddenValue {
			return false
		}
	}
	return true
}
