package srk

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

// DefaultContest returns placeholder contest metadata for scoreboards whose
// contest details are unknown
func DefaultContest() Contest {
	frozen := Hours(1)
	return Contest{
		Title:          NewText("DOMjudge PDF Parsed"),
		StartAt:        "2000-01-01T00:00:00+08:00",
		Duration:       Hours(5),
		FrozenDuration: &frozen,
	}
}

// Problems returns n problems aliased A, B, C, ...
func Problems(n int) []Problem {
	problems := make([]Problem, n)
	for i := range problems {
		problems[i] = Problem{Alias: tables.ProblemLabel(i)}
	}
	return problems
}

// FromRecords converts decoded rows to ranklist rows. The record ID becomes
// the user ID; when an ID repeats, later rows get "-<index>" appended so user
// IDs stay unique. Rows with a numeric printed rank are official.
func FromRecords(records []model.RowRecord, problemCount int) []Row {
	rows := make([]Row, 0, len(records))
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		id := rec.ID
		if seen[id] {
			id = fmt.Sprintf("%s-%d", rec.ID, rec.Index)
		}
		seen[id] = true

		official := tables.IsNumericRank(rec.Rank)

		total := Minutes(rec.Score.Time)
		row := Row{
			User: User{
				ID:           id,
				Name:         rec.Name,
				Organization: rec.Organization,
				Official:     &official,
			},
			Score:    Score{Value: rec.Score.Value, Time: &total},
			Statuses: make([]Status, problemCount),
		}

		for i := 0; i < problemCount && i < len(rec.Statuses); i++ {
			row.Statuses[i] = fromProblemStatus(rec.Statuses[i])
		}
		rows = append(rows, row)
	}
	return rows
}

func fromProblemStatus(s model.ProblemStatus) Status {
	switch s.Result {
	case model.ResultAccepted:
		t := Minutes(s.Time)
		return Status{Result: ResultAccepted, Time: &t, Tries: s.Tries}
	case model.ResultRejected:
		return Status{Result: ResultRejected, Tries: s.Tries}
	default:
		return Status{Result: ResultNone}
	}
}

// DefaultContributors is credited in every ranklist produced by Build
var DefaultContributors = []string{"algoUX (https://algoux.org)"}

// Build produces a ranklist for decoded rows with the ICPC preset, minute
// precision, empty award bands and first blood calculated. Rows keep their
// order.
func Build(contest Contest, records []model.RowRecord, problemCount int, logger *zap.Logger) (*Ranklist, error) {
	g := NewGenerator(logger)
	g.Init(InitOptions{
		Contest:       contest,
		Problems:      Problems(problemCount),
		UseICPCPreset: true,
		ICPCPresetOptions: ICPCPresetOptions{
			MainRankSeriesRule:         &ICPCRuleOptions{Count: &CountOption{Value: []int{0, 0, 0}}},
			SorterTimePrecision:        "min",
			SorterRankingTimePrecision: "min",
		},
		Contributors: append([]string(nil), DefaultContributors...),
		Remarks:      NewText("This ranklist lacks medal data. If you have the original ranklist or the list of winners, please contact us to supplement the data."),
	})
	g.SetRows(FromRecords(records, problemCount))

	if err := g.Build(BuildOptions{CalculateFB: true, DisableFBIfConflict: true}); err != nil {
		return nil, fmt.Errorf("failed to build ranklist: %w", err)
	}
	return g.Ranklist()
}
