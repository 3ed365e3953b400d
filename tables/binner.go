package tables

import (
	"regexp"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/rankgrid/model"
)

// watermarkPattern matches the problem letter printed inside every problem cell
var watermarkPattern = regexp.MustCompile(`^[A-Z] $`)

// rowIndex looks up the row band containing a y coordinate on one page
type rowIndex struct {
	tree rtree.RTreeG[int]
	size int
}

// newRowIndex indexes row ranges as degenerate boxes on the y axis
func newRowIndex(rows []model.RowRange) *rowIndex {
	ri := &rowIndex{size: len(rows)}
	for i, r := range rows {
		ri.tree.Insert([2]float64{0, r.Y0}, [2]float64{0, r.Y1}, i)
	}
	return ri
}

// find returns the first row (in ascending order) whose closed span
// [Y0, Y1] contains y, or -1. Adjacent rows share a boundary, so a y on a
// separator matches the upper row.
func (ri *rowIndex) find(y float64) int {
	if ri.size == 0 {
		return -1
	}
	found := -1
	ri.tree.Search([2]float64{0, y}, [2]float64{0, y}, func(_, _ [2]float64, i int) bool {
		if found < 0 || i < found {
			found = i
		}
		return true
	})
	return found
}

// EffectiveY returns the y used to place a run in a row band. The renderer
// anchors text above its baseline; the offset is derived from the size hint.
func EffectiveY(run model.TextRun, cfg Config) float64 {
	return run.Y + run.FontSize/cfg.baselineDivisor()
}

// findColumn scans columns right to left and returns the first one whose left
// edge is at or before x, or -1. Column spans grow rightward from their left
// edges, so the closest preceding edge wins without an upper-bound check.
func findColumn(columns []model.ColumnRange, x float64) int {
	for c := len(columns) - 1; c >= 0; c-- {
		if x >= columns[c].X0 {
			return c
		}
	}
	return -1
}

// IsWatermark reports whether a run in a problem column is the problem letter
// printed in the cell background
func IsWatermark(raw string) bool {
	return watermarkPattern.MatchString(raw)
}

// BinTexts assigns every text run of every page to a (logical row, column)
// cell. Logical rows are numbered across pages in page order then row order.
// Runs outside every row band or left of every column are dropped, as are
// problem letter watermarks in problem columns.
//
// Inside each cell the score column is ordered by x only; all other columns
// by y then x.
func BinTexts(pages []model.Page, grid []model.PageGrid, columns []model.ColumnRange, cfg Config) []model.LogicalRow {
	var rows []model.LogicalRow
	pageOffset := make([]int, len(grid))

	for p, pg := range grid {
		pageOffset[p] = len(rows)
		for _, r := range pg.Rows {
			rows = append(rows, model.LogicalRow{
				GlobalIndex:  len(rows),
				PageIndex:    p,
				PageRowIndex: r.Index,
				Cells:        make([][]model.CellText, len(columns)),
			})
		}
	}

	for p, page := range pages {
		if p >= len(grid) || len(grid[p].Rows) == 0 {
			continue
		}
		index := newRowIndex(grid[p].Rows)

		for _, run := range page.Texts {
			rowIdx := index.find(EffectiveY(run, cfg))
			if rowIdx < 0 {
				continue
			}
			colIdx := findColumn(columns, run.X)
			if colIdx < 0 {
				continue
			}

			raw := run.Content()
			if columns[colIdx].IsProblem() && IsWatermark(raw) {
				continue
			}

			row := &rows[pageOffset[p]+rowIdx]
			row.Cells[colIdx] = append(row.Cells[colIdx], model.CellText{Raw: raw, X: run.X, Y: run.Y})
		}
	}

	for r := range rows {
		for c, cell := range rows[r].Cells {
			sortCell(cell, c == model.ColumnScore)
		}
	}

	return rows
}

// sortCell orders a cell's texts in place
func sortCell(texts []model.CellText, byXOnly bool) {
	if byXOnly {
		sort.SliceStable(texts, func(i, j int) bool {
			return texts[i].X < texts[j].X
		})
		return
	}
	sort.SliceStable(texts, func(i, j int) bool {
		if texts[i].Y != texts[j].Y {
			return texts[i].Y < texts[j].Y
		}
		return texts[i].X < texts[j].X
	})
}
