package rankgrid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/pdf2json"
	"github.com/tsawler/rankgrid/srk"
	"github.com/tsawler/rankgrid/tables"
)

// Extractor provides a fluent interface for reconstructing standings.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	doc      *model.Document
	loaded   bool

	// Configuration
	options extractOptions
	logger  *zap.Logger

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// The decoded document is shared; it is never modified.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		doc:      e.doc,
		loaded:   e.loaded,
		options:  e.options.clone(),
		logger:   e.logger,
		err:      e.err,
	}
}

// log returns the configured logger or a no-op logger
func (e *Extractor) log() *zap.Logger {
	if e.logger == nil {
		return zap.NewNop()
	}
	return e.logger
}

// document returns the decoded document, loading it from the file if needed
func (e *Extractor) document() (*model.Document, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.loaded {
		return e.doc, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	doc, err := pdf2json.LoadDocument(e.filename)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Problems sets the number of problem columns. It is required.
//
// Example:
//
//	rows, _, err := rankgrid.Open("scoreboard.json").Problems(13).Rows()
func (e *Extractor) Problems(n int) *Extractor {
	newExt := e.clone()
	newExt.options.problems = n
	return newExt
}

// RulingColors replaces the stroke colour tags that mark separator fills.
//
// Example:
//
//	ext := rankgrid.Open("scoreboard.json").Problems(5).RulingColors("#000000", "#333333")
func (e *Extractor) RulingColors(colors ...string) *Extractor {
	newExt := e.clone()
	newExt.options.rulingColors = append([]string(nil), colors...)
	return newExt
}

// YTolerance lets fills whose y differs by at most t share a separator.
// The default of 0 requires exact equality.
func (e *Extractor) YTolerance(t float64) *Extractor {
	newExt := e.clone()
	newExt.options.yTolerance = t
	return newExt
}

// BaselineDivisor sets the divisor applied to a run's font size when
// computing its effective y
func (e *Extractor) BaselineDivisor(d float64) *Extractor {
	newExt := e.clone()
	newExt.options.baselineDivisor = d
	return newExt
}

// WithConfig replaces every engine setting with cfg
func (e *Extractor) WithConfig(cfg tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options = extractOptions{
		problems:        cfg.ProblemCount,
		rulingColors:    append([]string(nil), cfg.RulingColors...),
		yTolerance:      cfg.YTolerance,
		baselineDivisor: cfg.BaselineDivisor,
	}
	return newExt
}

// WithLogger sets the logger used for stage summaries (debug level) and
// warnings (warn level)
func (e *Extractor) WithLogger(l *zap.Logger) *Extractor {
	newExt := e.clone()
	newExt.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document
func (e *Extractor) PageCount() (int, error) {
	doc, err := e.document()
	if err != nil {
		return 0, err
	}
	return doc.PageCount(), nil
}

// Document returns the decoded page model
func (e *Extractor) Document() (*model.Document, error) {
	return e.document()
}

// Result runs the full pipeline and returns every intermediate structure
//
// Example:
//
//	res, warnings, err := rankgrid.Open("scoreboard.json").Problems(5).Result()
//	fmt.Println(res.SeparatorX)
func (e *Extractor) Result() (*tables.Result, []Warning, error) {
	doc, err := e.document()
	if err != nil {
		return nil, nil, err
	}

	engine, err := tables.NewEngine(e.options.engineConfig())
	if err != nil {
		return nil, nil, err
	}

	log := e.log()
	res, err := engine.Run(doc.Pages)
	if err != nil {
		log.Debug("extraction failed", zap.Int("pages", doc.PageCount()), zap.Error(err))
		return nil, nil, err
	}

	log.Debug("grid resolved",
		zap.Int("pages", doc.PageCount()),
		zap.Int("columns", len(res.Columns)),
		zap.Float64s("separatorX", res.SeparatorX))
	for _, pg := range res.Grid {
		log.Debug("page rows",
			zap.Int("page", pg.PageIndex),
			zap.Int("rows", len(pg.Rows)),
			zap.Float64s("separatorY", pg.SeparatorY))
	}
	log.Debug("rows decoded", zap.Int("records", len(res.Records)), zap.Int("warnings", len(res.Warnings)))
	for _, w := range res.Warnings {
		log.Warn(w.Message,
			zap.Int("page", w.Page),
			zap.Int("row", w.Row),
			zap.String("column", w.Column))
	}

	return res, res.Warnings, nil
}

// Rows returns one decoded record per standings row, in display order
//
// Example:
//
//	rows, warnings, err := rankgrid.Open("scoreboard.json").Problems(5).Rows()
func (e *Extractor) Rows() ([]model.RowRecord, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, nil, err
	}
	return res.Records, warnings, nil
}

// Ranklist converts the decoded rows into a standard ranklist for contest
//
// Example:
//
//	list, _, err := rankgrid.Open("scoreboard.json").Problems(5).Ranklist(srk.DefaultContest())
func (e *Extractor) Ranklist(contest srk.Contest) (*srk.Ranklist, []Warning, error) {
	res, warnings, err := e.Result()
	if err != nil {
		return nil, nil, err
	}
	list, err := srk.Build(contest, res.Records, e.options.problems, e.log())
	if err != nil {
		return nil, warnings, err
	}
	return list, warnings, nil
}
