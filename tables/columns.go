package tables

import (
	"fmt"

	"github.com/tsawler/rankgrid/model"
)

// Names of the fixed leading columns
const (
	RankColumnName  = "RANK"
	TeamColumnName  = "TEAM"
	ScoreColumnName = "SCORE"
)

// ProblemLabel returns the alphabetic label of the i-th problem (0-indexed):
// A..Z, then AA, AB, ...
func ProblemLabel(i int) string {
	if i < 0 {
		return ""
	}
	label := ""
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		label = string(rune('A'+(n-1)%26)) + label
	}
	return label
}

// ColumnNames returns the names of all columns in layout order
func ColumnNames(problemCount int) []string {
	names := []string{RankColumnName, TeamColumnName, ScoreColumnName}
	for i := 0; i < problemCount; i++ {
		names = append(names, ProblemLabel(i))
	}
	return names
}

// ResolveColumns computes every column's horizontal span from page 0's
// separator clusters. The minimum-y cluster sits under the header and its
// segments are exactly as wide as the columns above them, so entries are
// mapped to columns by position:
//
//	RANK   [0, e0.X)
//	TEAM   [e0.X, e1.X+e1.W)
//	SCORE  [e2.X, e2.X+e2.W)
//	P_i    [e(3+i).X, e(3+i).X+e(3+i).W)
//
// It also returns the separator x positions used by the debug overlays.
func ResolveColumns(page0 []SeparatorCluster, problemCount int) ([]model.ColumnRange, []float64, error) {
	if len(page0) == 0 {
		return nil, nil, &StructureError{
			Reason: ReasonHeaderCluster,
			Page:   0,
			Detail: "no separator cluster found",
		}
	}

	header := page0[0]
	need := model.FirstProblemColumn + problemCount
	if header.Len() < need {
		return nil, nil, &StructureError{
			Reason: ReasonHeaderCluster,
			Page:   0,
			Detail: fmt.Sprintf("cluster at y=%v has %d fills, need %d", header.Y, header.Len(), need),
		}
	}

	e := header.Fills
	columns := make([]model.ColumnRange, 0, need)
	separatorX := make([]float64, 0, need+1)

	columns = append(columns, model.ColumnRange{
		Index: model.ColumnRank,
		Name:  RankColumnName,
		X0:    0,
		X1:    e[0].X,
	})
	columns = append(columns, model.ColumnRange{
		Index: model.ColumnTeam,
		Name:  TeamColumnName,
		X0:    e[0].X,
		X1:    e[1].Right(),
	})
	columns = append(columns, model.ColumnRange{
		Index: model.ColumnScore,
		Name:  ScoreColumnName,
		X0:    e[2].X,
		X1:    e[2].Right(),
	})
	for i := 0; i < problemCount; i++ {
		f := e[model.FirstProblemColumn+i]
		columns = append(columns, model.ColumnRange{
			Index: model.FirstProblemColumn + i,
			Name:  ProblemLabel(i),
			X0:    f.X,
			X1:    f.Right(),
		})
	}

	separatorX = append(separatorX, 0)
	for _, c := range columns {
		separatorX = append(separatorX, c.X1)
	}

	return columns, separatorX, nil
}
