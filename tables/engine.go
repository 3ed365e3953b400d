package tables

import (
	"fmt"

	"github.com/tsawler/rankgrid/model"
)

// Result holds every structure derived by one engine run
type Result struct {
	// Column spans shared by all pages
	Columns []model.ColumnRange

	// Column separator x positions (0 followed by each column's right edge)
	SeparatorX []float64

	// Per-page separator clusters, with the last page's trailing summary
	// cluster already removed
	Clusters [][]SeparatorCluster

	// Per-page row ranges
	Grid []model.PageGrid

	// Binned cells for every logical row
	Rows []model.LogicalRow

	// One decoded record per logical row, in display order
	Records []model.RowRecord

	// Non-fatal diagnostics
	Warnings []Warning
}

// RowCount returns the total number of logical rows across all pages
func (r *Result) RowCount() int {
	n := 0
	for _, pg := range r.Grid {
		n += len(pg.Rows)
	}
	return n
}

// ProblemColumns returns the per-problem column ranges
func (r *Result) ProblemColumns() []model.ColumnRange {
	if len(r.Columns) <= model.FirstProblemColumn {
		return nil
	}
	return r.Columns[model.FirstProblemColumn:]
}

// Engine reconstructs standings from page primitives. An Engine holds only
// immutable configuration and is safe for concurrent use.
type Engine struct {
	config Config
}

// NewEngine creates an engine with the given configuration
func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: config.clone()}, nil
}

// Name returns the engine's identifier ("separator")
func (e *Engine) Name() string {
	return "separator"
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() Config {
	return e.config.clone()
}

// Run executes the full pipeline over the pages of one document
func (e *Engine) Run(pages []model.Page) (*Result, error) {
	if err := checkPages(pages); err != nil {
		return nil, err
	}

	// Step 1: group ruling fills on every page
	clusters := make([][]SeparatorCluster, len(pages))
	for p := range pages {
		clusters[p] = GroupSeparators(pages[p].Fills, e.config)
	}

	// Step 2: columns from page 0's header separator
	columns, separatorX, err := ResolveColumns(clusters[0], e.config.ProblemCount)
	if err != nil {
		return nil, err
	}

	// Step 3: per-page rows, including the last-page summary correction
	grid := ResolveGrid(clusters)

	last := len(clusters) - 1
	kept := make([][]SeparatorCluster, len(clusters))
	copy(kept, clusters)
	kept[last] = DropTrailingCluster(clusters[last])

	var warnings []Warning
	for _, pg := range grid {
		if len(pg.Rows) == 0 {
			warnings = append(warnings, Warning{
				Page:    pg.PageIndex,
				Row:     -1,
				Message: fmt.Sprintf("no data rows found (%d separator(s))", len(pg.SeparatorY)),
			})
		}
	}

	// Step 4: bin text runs into cells
	rows := BinTexts(pages, grid, columns, e.config)

	// Step 5: decode cells into records
	records, decodeWarnings := AssembleRows(rows, e.config.ProblemCount)
	warnings = append(warnings, decodeWarnings...)

	return &Result{
		Columns:    columns,
		SeparatorX: separatorX,
		Clusters:   kept,
		Grid:       grid,
		Rows:       rows,
		Records:    records,
		Warnings:   warnings,
	}, nil
}

// checkPages verifies the document-level preconditions
func checkPages(pages []model.Page) error {
	if len(pages) == 0 {
		return &StructureError{Reason: ReasonNoPages, Page: -1}
	}
	for i, p := range pages {
		if p.Width <= 0 || p.Height <= 0 {
			return &StructureError{
				Reason: ReasonPageDimensions,
				Page:   i,
				Detail: fmt.Sprintf("width=%v height=%v", p.Width, p.Height),
			}
		}
	}
	return nil
}
