// Package model provides the data structures shared by every stage of the
// standings reconstruction pipeline.
//
// # Page Primitives
//
// The input side is the page primitive model produced by a document renderer
// (pdf2json): each [Page] carries filled rectangles ([Fill]) and positioned
// text runs ([TextRun]) in page-local units. The origin is the top-left
// corner of the page and y grows downward.
//
//	page := model.Page{Width: 38.25, Height: 49.5}
//	page.Fills = append(page.Fills, model.Fill{X: 3, Y: 5, W: 10, H: 0.1, OwnerTag: "#000000"})
//
// # Grid
//
// The inference stages produce a grid: [ColumnRange] values shared by all
// pages, and per-page [RowRange] values grouped in a [PageGrid]. Text runs are
// binned into [CellText] values and grouped by [LogicalRow].
//
// # Records
//
// The output side is one [RowRecord] per logical row, carrying the team
// identity, its [Score] and one [ProblemStatus] per problem column.
//
// # Geometry
//
// [BBox] and [Point] support the clipping and placement checks used by the
// debug overlays.
package model
