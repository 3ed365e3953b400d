package tables

import (
	"github.com/tsawler/rankgrid/model"
)

// AdjustKeysForPage applies the renderer's pagination quirks to a page's
// sorted separator keys and returns a new slice:
//
//   - on the last page the largest key bounds the trailing summary block
//     and is dropped;
//   - every page after the first repeats the header with one extra
//     separator right under it, so the second-smallest key is dropped.
//
// After adjustment row 0 of every page is the first data row below the
// header, independent of the page index.
func AdjustKeysForPage(keys []float64, pageIndex int, isLastPage bool) []float64 {
	out := append([]float64(nil), keys...)
	if isLastPage && len(out) > 0 {
		out = out[:len(out)-1]
	}
	if pageIndex > 0 && len(out) > 1 {
		out = append(out[:1], out[2:]...)
	}
	return out
}

// ResolveRows turns ascending separator keys into row ranges: row i spans
// [keys[i], keys[i+1]). Fewer than two keys yield no rows.
func ResolveRows(keys []float64) []model.RowRange {
	if len(keys) < 2 {
		return nil
	}
	rows := make([]model.RowRange, 0, len(keys)-1)
	for i := 0; i < len(keys)-1; i++ {
		rows = append(rows, model.RowRange{Index: i, Y0: keys[i], Y1: keys[i+1]})
	}
	return rows
}

// ResolveGrid computes the row ranges of every page from its separator
// clusters. clusters[i] must belong to page i and must not have had the
// trailing summary cluster removed; the last-page correction is applied here.
func ResolveGrid(clusters [][]SeparatorCluster) []model.PageGrid {
	grid := make([]model.PageGrid, len(clusters))
	last := len(clusters) - 1
	for p, pageClusters := range clusters {
		keys := AdjustKeysForPage(ClusterKeys(pageClusters), p, p == last)
		grid[p] = model.PageGrid{
			PageIndex:  p,
			Rows:       ResolveRows(keys),
			SeparatorY: keys,
		}
	}
	return grid
}
