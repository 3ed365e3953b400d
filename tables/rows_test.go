package tables

import (
	"testing"

	"github.com/tsawler/rankgrid/model"
)

func TestAdjustKeysForPage(t *testing.T) {
	tests := []struct {
		name       string
		keys       []float64
		pageIndex  int
		isLastPage bool
		want       []float64
	}{
		{"first page untouched", []float64{50, 120, 400, 900}, 0, false, []float64{50, 120, 400, 900}},
		{"later page drops second key", []float64{50, 120, 400, 900}, 1, false, []float64{50, 400, 900}},
		{"single page document drops footer", []float64{50, 120, 400, 900}, 0, true, []float64{50, 120, 400}},
		{"last page drops footer then header extra", []float64{50, 60, 120, 400, 900}, 3, true, []float64{50, 120, 400}},
		{"later page with one key", []float64{50}, 2, false, []float64{50}},
		{"empty last page", nil, 2, true, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustKeysForPage(tt.keys, tt.pageIndex, tt.isLastPage)
			if !equalFloats(got, tt.want) {
				t.Errorf("AdjustKeysForPage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjustKeysForPage_DoesNotModifyInput(t *testing.T) {
	keys := []float64{1, 2, 3, 4}
	AdjustKeysForPage(keys, 1, true)
	if !equalFloats(keys, []float64{1, 2, 3, 4}) {
		t.Errorf("input modified: %v", keys)
	}
}

func TestResolveRows(t *testing.T) {
	rows := ResolveRows(AdjustKeysForPage([]float64{50, 120, 400, 900}, 1, false))
	want := []model.RowRange{
		{Index: 0, Y0: 50, Y1: 400},
		{Index: 1, Y0: 400, Y1: 900},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestResolveRows_TooFewKeys(t *testing.T) {
	if rows := ResolveRows([]float64{5}); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
	if rows := ResolveRows(nil); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}

func TestResolveGrid(t *testing.T) {
	f := fixture{
		problems: 2,
		pages: [][]fixtureRow{
			{solvedRow(1, 2), solvedRow(2, 2), solvedRow(3, 2)},
			{solvedRow(4, 2), solvedRow(5, 2)},
		},
	}
	cfg := DefaultConfig(2)
	pages := f.build()

	clusters := make([][]SeparatorCluster, len(pages))
	for p := range pages {
		clusters[p] = GroupSeparators(pages[p].Fills, cfg)
	}
	grid := ResolveGrid(clusters)

	if len(grid) != 2 {
		t.Fatalf("expected 2 page grids, got %d", len(grid))
	}
	if len(grid[0].Rows) != 3 {
		t.Errorf("page 0 rows = %d, want 3", len(grid[0].Rows))
	}
	if len(grid[1].Rows) != 2 {
		t.Errorf("page 1 rows = %d, want 2", len(grid[1].Rows))
	}
	if grid[1].Rows[0].Y0 != testHeaderY || grid[1].Rows[0].Y1 != testHeaderY+testRowHeight {
		t.Errorf("page 1 first row = %+v, want the row right under the header", grid[1].Rows[0])
	}
	if grid[1].PageIndex != 1 {
		t.Errorf("PageIndex = %d, want 1", grid[1].PageIndex)
	}
}
