// Package tables reconstructs a standings table from the drawing primitives
// of a paginated scoreboard document.
//
// The source documents carry no table markup. Row and column boundaries are
// inferred from the thin ruling fills the renderer draws between rows, and
// the text runs are then binned into cells and decoded into row records.
//
// # Pipeline
//
// [Engine.Run] executes the stages in a fixed order. Each stage is also
// exported as a pure function so it can be tested and reused on its own:
//
//  1. [GroupSeparators] - cluster ruling fills by y into separator candidates
//  2. [ResolveColumns] - fix column spans from page 0's header separator
//  3. [AdjustKeysForPage] and [ResolveRows] - fix per-page row spans
//  4. [BinTexts] - assign every text run to a (logical row, column) cell
//  5. [DecodeRank], [DecodeTeam], [DecodeScore], [DecodeProblem] - type the cells
//  6. [AssembleRows] - emit one record per logical row in display order
//
// # Configuration
//
// The problem count is not present in the documents in any reliable form and
// must be supplied by the caller:
//
//	engine, err := tables.NewEngine(tables.DefaultConfig(13))
//	if err != nil {
//	    // invalid problem count
//	}
//	result, err := engine.Run(pages)
//
// # Errors
//
// Geometric preconditions that make the whole run impossible (no pages,
// missing page size, no usable header separator) fail with a
// [*StructureError]. Anything wrong inside a single cell degrades to a
// default value and is reported as a [Warning] in [Result.Warnings].
package tables
