// Package overlay writes debugging artifacts for an engine run: JSON dumps of
// every intermediate structure, the source PDF with the inferred grid drawn
// over it, and a PNG rendering of a single page.
package overlay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

// File names written by DumpJSON
const (
	GridFile         = "grid-debug.json"
	CellsFile        = "cells-debug.json"
	ConcatenatedFile = "cells-concatenated.json"
)

// PageFile returns the name of the per-page dump for page index i
func PageFile(i int) string {
	return fmt.Sprintf("page-%d.json", i)
}

type fillDump struct {
	Index    int     `json:"index"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Color    *int    `json:"clr,omitempty"`
	OwnerTag string  `json:"oc,omitempty"`
}

type clusterDump struct {
	Y     float64    `json:"y"`
	Fills []fillDump `json:"fills"`
}

type textDump struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"fontSize"`
	Content  string  `json:"content"`
}

type pageDump struct {
	PageIndex int           `json:"pageIndex"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	MinY      *float64      `json:"minY"`
	Clusters  []clusterDump `json:"yGroupedFills"`
	Fills     []fillDump    `json:"fills"`
	Texts     []textDump    `json:"texts"`
}

type gridDump struct {
	Columns    []model.ColumnRange `json:"columnRanges"`
	SeparatorX []float64           `json:"separatorX"`
	Pages      []model.PageGrid    `json:"pages"`
}

type concatenatedRow struct {
	GlobalIndex  int        `json:"globalRowIndex"`
	PageIndex    int        `json:"pageIndex"`
	PageRowIndex int        `json:"pageRowIndex"`
	Cells        [][]string `json:"cells"`
}

func toFillDump(index int, f model.Fill) fillDump {
	return fillDump{Index: index, X: f.X, Y: f.Y, W: f.W, H: f.H, Color: f.Color, OwnerTag: f.OwnerTag}
}

// DumpJSON writes one file per page plus the grid and cell dumps into dir,
// creating it when needed
func DumpJSON(dir string, pages []model.Page, res *tables.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create debug directory: %w", err)
	}

	for i, p := range pages {
		dump := pageDump{
			PageIndex: i,
			Width:     p.Width,
			Height:    p.Height,
			Fills:     make([]fillDump, 0, len(p.Fills)),
			Texts:     make([]textDump, 0, len(p.Texts)),
		}
		for fi, f := range p.Fills {
			dump.Fills = append(dump.Fills, toFillDump(fi, f))
		}
		for _, t := range p.Texts {
			dump.Texts = append(dump.Texts, textDump{X: t.X, Y: t.Y, FontSize: t.FontSize, Content: t.Content()})
		}
		if res != nil && i < len(res.Clusters) {
			for _, c := range res.Clusters[i] {
				cd := clusterDump{Y: c.Y}
				for _, f := range c.Fills {
					cd.Fills = append(cd.Fills, toFillDump(f.Index, f.Fill))
				}
				dump.Clusters = append(dump.Clusters, cd)
			}
			if len(res.Clusters[i]) > 0 {
				minY := res.Clusters[i][0].Y
				dump.MinY = &minY
			}
		}
		if err := writeJSON(filepath.Join(dir, PageFile(i)), dump); err != nil {
			return err
		}
	}

	if res == nil {
		return nil
	}

	grid := gridDump{Columns: res.Columns, SeparatorX: res.SeparatorX, Pages: res.Grid}
	if err := writeJSON(filepath.Join(dir, GridFile), grid); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, CellsFile), res.Rows); err != nil {
		return err
	}

	concatenated := make([]concatenatedRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := concatenatedRow{
			GlobalIndex:  r.GlobalIndex,
			PageIndex:    r.PageIndex,
			PageRowIndex: r.PageRowIndex,
			Cells:        make([][]string, len(r.Cells)),
		}
		for c, texts := range r.Cells {
			row.Cells[c] = tables.CellLines(texts)
			if row.Cells[c] == nil {
				row.Cells[c] = []string{}
			}
		}
		concatenated = append(concatenated, row)
	}
	return writeJSON(filepath.Join(dir, ConcatenatedFile), concatenated)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
