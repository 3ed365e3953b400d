package model

// Column indices of the fixed standings layout
const (
	ColumnRank  = 0
	ColumnTeam  = 1
	ColumnScore = 2

	// FirstProblemColumn is the index of the first per-problem column
	FirstProblemColumn = 3
)

// ColumnRange is the closed-open horizontal span [X0, X1) owned by one column
type ColumnRange struct {
	Index int     `json:"colIndex"`
	Name  string  `json:"name,omitempty"`
	X0    float64 `json:"x0"`
	X1    float64 `json:"x1"`
}

// Width returns the span width
func (c ColumnRange) Width() float64 {
	return c.X1 - c.X0
}

// IsProblem reports whether the column holds a per-problem status
func (c ColumnRange) IsProblem() bool {
	return c.Index >= FirstProblemColumn
}

// RowRange is the vertical span owned by one table row on one page
type RowRange struct {
	Index int     `json:"rowIndex"`
	Y0    float64 `json:"y0"`
	Y1    float64 `json:"y1"`
}

// Height returns the span height
func (r RowRange) Height() float64 {
	return r.Y1 - r.Y0
}

// PageGrid holds the row ranges resolved for one page together with the
// separator y values they were built from
type PageGrid struct {
	PageIndex  int        `json:"pageIndex"`
	Rows       []RowRange `json:"rowRanges"`
	SeparatorY []float64  `json:"separatorY"`
}

// CellText is one text run binned into a cell
type CellText struct {
	Raw string  `json:"raw"`
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
}

// LogicalRow is one table row addressed across the whole document.
// Cells is indexed by column.
type LogicalRow struct {
	GlobalIndex  int          `json:"globalRowIndex"`
	PageIndex    int          `json:"pageIndex"`
	PageRowIndex int          `json:"pageRowIndex"`
	Cells        [][]CellText `json:"cells"`
}

// Cell returns the texts of the given column, or nil when out of range
func (r LogicalRow) Cell(col int) []CellText {
	if col < 0 || col >= len(r.Cells) {
		return nil
	}
	return r.Cells[col]
}
