package overlay

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

func rule(x, y, w float64) model.Fill {
	return model.Fill{X: x, Y: y, W: w, H: 0.06, OwnerTag: "#000000"}
}

func text(x, y float64, s string) model.TextRun {
	return model.TextRun{X: x, Y: y, FontSize: 12, Fragments: []model.Fragment{{Content: s}}}
}

// onePage returns a single page scoreboard with one problem and one row
func onePage() []model.Page {
	clr := 3
	return []model.Page{{
		Width: 30, Height: 20,
		Fills: []model.Fill{
			{X: 0, Y: 5, W: 30, H: 1, Color: &clr},
			rule(3, 5, 12), rule(3.5, 5, 11.5), rule(15, 5, 4), rule(19, 5, 3),
			rule(3.5, 7, 11.5), rule(19, 7, 3),
			rule(3.5, 10, 11.5), rule(19, 10, 3),
		},
		Texts: []model.TextRun{
			text(1, 5.4, "1"),
			text(4, 5.3, "Alpha"),
			text(4, 6.0, "North"),
			text(15.5, 5.6, "1"),
			text(17, 5.6, "42"),
			text(19.5, 5.3, "42"),
			text(19.5, 6.0, "1 try"),
		},
	}}
}

func runEngine(t *testing.T, pages []model.Page) *tables.Result {
	t.Helper()
	e, err := tables.NewEngine(tables.DefaultConfig(1))
	require.NoError(t, err)
	res, err := e.Run(pages)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	return res
}

func readJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestDumpJSON(t *testing.T) {
	pages := onePage()
	res := runEngine(t, pages)
	dir := filepath.Join(t.TempDir(), "debug")

	require.NoError(t, DumpJSON(dir, pages, res))

	var page map[string]interface{}
	readJSON(t, filepath.Join(dir, PageFile(0)), &page)
	assert.Equal(t, 30.0, page["width"])
	assert.Equal(t, 5.0, page["minY"])
	assert.Len(t, page["fills"], 9)
	assert.Len(t, page["texts"], 7)
	// the trailing cluster of the last page is not part of the dump
	assert.Len(t, page["yGroupedFills"], 2)

	var grid struct {
		Columns    []model.ColumnRange `json:"columnRanges"`
		SeparatorX []float64           `json:"separatorX"`
		Pages      []model.PageGrid    `json:"pages"`
	}
	readJSON(t, filepath.Join(dir, GridFile), &grid)
	assert.Len(t, grid.Columns, 4)
	assert.Equal(t, []float64{0, 3, 15, 19, 22}, grid.SeparatorX)
	require.Len(t, grid.Pages, 1)
	assert.Equal(t, []model.RowRange{{Index: 0, Y0: 5, Y1: 7}}, grid.Pages[0].Rows)

	var cells []model.LogicalRow
	readJSON(t, filepath.Join(dir, CellsFile), &cells)
	require.Len(t, cells, 1)
	assert.Len(t, cells[0].Cells, 4)

	var concatenated []struct {
		Cells [][]string `json:"cells"`
	}
	readJSON(t, filepath.Join(dir, ConcatenatedFile), &concatenated)
	require.Len(t, concatenated, 1)
	assert.Equal(t, []string{"Alpha", "North"}, concatenated[0].Cells[1])
	assert.Equal(t, []string{"42", "1 try"}, concatenated[0].Cells[3])
}

func TestDumpJSON_WithoutResult(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, DumpJSON(dir, onePage(), nil))

	_, err := os.Stat(filepath.Join(dir, PageFile(0)))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, GridFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderPNG(t *testing.T) {
	pages := onePage()
	res := runEngine(t, pages)

	var buf bytes.Buffer
	require.NoError(t, RenderPNG(&buf, pages[0], res.Grid[0], res, 10))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// column separator at x=15 units is red, row separator at y=7 units is blue
	r, g, b, _ := img.At(150, 150).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, g, b, _ = img.At(250, 70).RGBA()
	assert.Zero(t, r)
	assert.Zero(t, g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestRenderPNG_NoDimensions(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPNG(&buf, model.Page{}, model.PageGrid{}, nil, 0)
	assert.Error(t, err)
}

func TestPageTransform(t *testing.T) {
	page := &model.Page{Width: 38.25, Height: 49.5}
	tr := newPageTransform(612, 792, page)

	assert.InDelta(t, 16.0, tr.scaleX, 1e-9)
	assert.InDelta(t, 16.0, tr.scaleY, 1e-9)
	assert.InDelta(t, 160.0, tr.x(10), 1e-9)
	assert.InDelta(t, 792.0-160.0, tr.y(10), 1e-9)

	identity := newPageTransform(100, 200, nil)
	assert.Equal(t, 5.0, identity.x(5))
	assert.Equal(t, 195.0, identity.y(5))
}
