package tables

import (
	"errors"

	"github.com/tsawler/rankgrid/model"
)

var (
	errEmptyTeam      = errors.New("empty team cell")
	errNoOrganization = errors.New("team cell has no organization line")
)

// DecodeRow decodes one logical row into a record. Cell problems never fail
// the row; they come back as warnings next to a record holding defaults.
func DecodeRow(row model.LogicalRow, problemCount int) (model.RowRecord, []Warning) {
	var warnings []Warning
	warn := func(column string, err error) {
		warnings = append(warnings, Warning{
			Page:    row.PageIndex,
			Row:     row.GlobalIndex,
			Column:  column,
			Message: err.Error(),
		})
	}

	rec := model.RowRecord{
		Index:    row.GlobalIndex,
		Page:     row.PageIndex,
		PageRow:  row.PageRowIndex,
		Statuses: make([]model.ProblemStatus, problemCount),
	}

	id, rank, err := DecodeRank(row.Cell(model.ColumnRank), row.GlobalIndex)
	if err != nil {
		warn(RankColumnName, err)
	}
	rec.ID = id
	rec.Rank = rank

	teamCell := row.Cell(model.ColumnTeam)
	rec.Name, rec.Organization = DecodeTeam(teamCell)
	switch {
	case len(teamCell) == 0:
		warn(TeamColumnName, errEmptyTeam)
	case rec.Organization == "":
		warn(TeamColumnName, errNoOrganization)
	}

	score, err := DecodeScore(row.Cell(model.ColumnScore))
	if err != nil {
		warn(ScoreColumnName, err)
	}
	rec.Score = score

	for i := 0; i < problemCount; i++ {
		status, err := DecodeProblem(row.Cell(model.FirstProblemColumn + i))
		if err != nil {
			warn(ProblemLabel(i), err)
		}
		rec.Statuses[i] = status
	}

	return rec, warnings
}

// AssembleRows decodes every logical row in the order given. The input order
// is the document's display order and is never changed here.
func AssembleRows(rows []model.LogicalRow, problemCount int) ([]model.RowRecord, []Warning) {
	records := make([]model.RowRecord, 0, len(rows))
	var warnings []Warning
	for _, row := range rows {
		rec, w := DecodeRow(row, problemCount)
		records = append(records, rec)
		warnings = append(warnings, w...)
	}
	return records, warnings
}
