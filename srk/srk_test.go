package srk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/rankgrid/model"
)

func accepted(minutes, tries int) Status {
	t := Minutes(minutes)
	return Status{Result: ResultAccepted, Time: &t, Tries: tries}
}

func rejected(tries int) Status {
	return Status{Result: ResultRejected, Tries: tries}
}

func user(id string, official bool) User {
	return User{ID: id, Name: id, Official: &official}
}

func newTestGenerator(problems int) *Generator {
	g := NewGenerator(nil)
	g.Init(InitOptions{
		Contest:       DefaultContest(),
		Problems:      Problems(problems),
		UseICPCPreset: true,
	})
	return g
}

func TestTimeDuration_JSON(t *testing.T) {
	b, err := json.Marshal(Hours(5))
	require.NoError(t, err)
	assert.JSONEq(t, `[5, "h"]`, string(b))

	var d TimeDuration
	require.NoError(t, json.Unmarshal([]byte(`[20, "min"]`), &d))
	assert.Equal(t, Minutes(20), d)

	assert.Error(t, json.Unmarshal([]byte(`[20]`), &d))
	assert.Error(t, json.Unmarshal([]byte(`{"value": 1}`), &d))
}

func TestTimeDuration_Milliseconds(t *testing.T) {
	ms, err := Minutes(2).Milliseconds()
	require.NoError(t, err)
	assert.Equal(t, 120000.0, ms)

	_, err = TimeDuration{Value: 1, Unit: "fortnight"}.Milliseconds()
	assert.Error(t, err)
}

func TestResult_JSON(t *testing.T) {
	b, err := json.Marshal(Status{Result: ResultNone})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": null}`, string(b))

	b, err = json.Marshal(accepted(10, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "AC", "time": [10, "min"], "tries": 2}`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`{"result": null}`), &s))
	assert.Equal(t, ResultNone, s.Result)
	require.NoError(t, json.Unmarshal([]byte(`{"result": "FB"}`), &s))
	assert.True(t, s.Result.IsAccepted())
}

func TestInit_ICPCPreset(t *testing.T) {
	g := newTestGenerator(2)
	g.SetRows([]Row{})

	r, err := g.Ranklist()
	require.NoError(t, err)

	assert.Equal(t, "general", r.Type)
	assert.Equal(t, Version, r.Version)
	require.Len(t, r.Series, 3)
	assert.Equal(t, "#", r.Series[0].Title)
	assert.Len(t, r.Series[0].Segments, 3)
	assert.Equal(t, "ICPC", r.Series[0].Rule.Preset)
	assert.Equal(t, "R#", r.Series[1].Title)
	assert.Equal(t, "S#", r.Series[2].Title)

	require.NotNil(t, r.Sorter)
	assert.Equal(t, "ICPC", r.Sorter.Algorithm)
	assert.Equal(t, Minutes(20), *r.Sorter.Config.Penalty)
	assert.Contains(t, r.Sorter.Config.NoPenaltyResults, ResultNone)

	require.Len(t, r.Markers, 1)
	assert.Equal(t, "female", r.Markers[0].ID)
}

func TestInit_ExplicitSeriesWins(t *testing.T) {
	g := NewGenerator(nil)
	g.Init(InitOptions{
		Contest:       DefaultContest(),
		Problems:      Problems(1),
		Series:        []Series{{Title: "Custom"}},
		UseICPCPreset: true,
	})
	g.SetRows([]Row{})

	r, err := g.Ranklist()
	require.NoError(t, err)
	require.Len(t, r.Series, 1)
	assert.Equal(t, "Custom", r.Series[0].Title)
	assert.NotNil(t, r.Sorter, "preset still supplies the sorter")
}

func TestInit_NoPreset(t *testing.T) {
	g := NewGenerator(nil)
	g.Init(InitOptions{Contest: DefaultContest(), Problems: Problems(1)})
	g.SetRows([]Row{})

	r, err := g.Ranklist()
	require.NoError(t, err)
	require.Len(t, r.Series, 1)
	assert.Equal(t, "R#", r.Series[0].Title)
	assert.Nil(t, r.Sorter)
	assert.Nil(t, r.Markers)
}

func TestBuild_NotInitialized(t *testing.T) {
	g := NewGenerator(nil)
	assert.ErrorIs(t, g.Build(BuildOptions{}), ErrNotInitialized)

	g = newTestGenerator(1)
	assert.ErrorIs(t, g.Build(BuildOptions{}), ErrNotInitialized, "rows missing")

	_, err := g.Ranklist()
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestBuild_StatusCountMismatch(t *testing.T) {
	g := newTestGenerator(2)
	g.SetRows([]Row{{User: user("a", true), Statuses: []Status{{}}}})
	assert.Error(t, g.Build(BuildOptions{}))
}

func TestBuild_FirstBlood(t *testing.T) {
	g := newTestGenerator(2)
	g.SetRows([]Row{
		{User: user("a", true), Statuses: []Status{accepted(30, 1), accepted(50, 2)}},
		{User: user("b", true), Statuses: []Status{accepted(20, 3), rejected(4)}},
		{User: user("c", true), Statuses: []Status{{}, accepted(40, 1)}},
	})
	require.NoError(t, g.Build(BuildOptions{CalculateFB: true}))

	r, err := g.Ranklist()
	require.NoError(t, err)

	assert.Equal(t, ResultAccepted, r.Rows[0].Statuses[0].Result)
	assert.Equal(t, ResultFirstBlood, r.Rows[1].Statuses[0].Result)
	assert.Equal(t, ResultAccepted, r.Rows[0].Statuses[1].Result)
	assert.Equal(t, ResultFirstBlood, r.Rows[2].Statuses[1].Result)

	// row order is preserved
	assert.Equal(t, "a", r.Rows[0].User.ID)
	assert.Equal(t, "c", r.Rows[2].User.ID)
}

func TestBuild_FirstBloodOfficialOnly(t *testing.T) {
	g := newTestGenerator(1)
	g.SetRows([]Row{
		{User: user("star", false), Statuses: []Status{accepted(5, 1)}},
		{User: user("a", true), Statuses: []Status{accepted(9, 1)}},
	})
	require.NoError(t, g.Build(BuildOptions{CalculateFB: true, OnlyIncludeOfficialForFB: true}))

	r, err := g.Ranklist()
	require.NoError(t, err)
	assert.Equal(t, ResultAccepted, r.Rows[0].Statuses[0].Result)
	assert.Equal(t, ResultFirstBlood, r.Rows[1].Statuses[0].Result)
}

func TestBuild_FirstBloodTie(t *testing.T) {
	rows := []Row{
		{User: user("a", true), Statuses: []Status{accepted(10, 1), accepted(3, 1)}},
		{User: user("b", true), Statuses: []Status{accepted(10, 2), {}}},
	}

	g := newTestGenerator(2)
	g.SetRows(rows)
	require.NoError(t, g.Build(BuildOptions{CalculateFB: true}))
	r, err := g.Ranklist()
	require.NoError(t, err)
	assert.Equal(t, ResultFirstBlood, r.Rows[0].Statuses[0].Result)
	assert.Equal(t, ResultFirstBlood, r.Rows[1].Statuses[0].Result)

	g = newTestGenerator(2)
	g.SetRows(rows)
	require.NoError(t, g.Build(BuildOptions{CalculateFB: true, DisableFBIfConflict: true}))
	r, err = g.Ranklist()
	require.NoError(t, err)
	for _, row := range r.Rows {
		for _, s := range row.Statuses {
			assert.NotEqual(t, ResultFirstBlood, s.Result, "a tie disables first blood on every problem")
		}
	}

	// SetRows copies, so the caller's rows were never marked
	assert.Equal(t, ResultAccepted, rows[0].Statuses[0].Result)
}

func TestBuild_ExistingFirstBloodKept(t *testing.T) {
	fb := accepted(50, 1)
	fb.Result = ResultFirstBlood
	g := newTestGenerator(1)
	g.SetRows([]Row{
		{User: user("a", true), Statuses: []Status{accepted(10, 1)}},
		{User: user("b", true), Statuses: []Status{fb}},
	})
	require.NoError(t, g.Build(BuildOptions{CalculateFB: true}))

	r, err := g.Ranklist()
	require.NoError(t, err)
	assert.Equal(t, ResultAccepted, r.Rows[0].Statuses[0].Result)
	assert.Equal(t, ResultFirstBlood, r.Rows[1].Statuses[0].Result)
}

func TestBuild_Statistics(t *testing.T) {
	g := newTestGenerator(2)
	g.SetRows([]Row{
		{User: user("a", true), Statuses: []Status{accepted(30, 2), rejected(3)}},
		{User: user("b", true), Statuses: []Status{accepted(20, 1), {}}},
		{User: user("c", true), Statuses: []Status{rejected(1), {}}},
	})
	require.NoError(t, g.Build(BuildOptions{}))

	r, err := g.Ranklist()
	require.NoError(t, err)
	assert.Equal(t, &ProblemStatistics{Accepted: 2, Submitted: 4}, r.Problems[0].Statistics)
	assert.Equal(t, &ProblemStatistics{Accepted: 0, Submitted: 3}, r.Problems[1].Statistics)
}

func TestFromRecords(t *testing.T) {
	records := []model.RowRecord{
		{
			Index: 0, ID: "1", Rank: "1", Name: "Alpha", Organization: "North",
			Score: model.Score{Value: 1, Time: 125},
			Statuses: []model.ProblemStatus{
				{Result: model.ResultAccepted, Time: 125, Tries: 2},
				{Result: model.ResultRejected, Tries: 3},
			},
		},
		{
			Index: 1, ID: "1", Rank: "1", Name: "Beta",
			Statuses: []model.ProblemStatus{{}, {}},
		},
		{
			Index: 2, ID: "2", Rank: "*", Name: "Gamma",
			Statuses: []model.ProblemStatus{{}},
		},
	}

	rows := FromRecords(records, 2)
	require.Len(t, rows, 3)

	alpha := rows[0]
	assert.Equal(t, "1", alpha.User.ID)
	assert.Equal(t, "Alpha", alpha.User.Name)
	assert.Equal(t, "North", alpha.User.Organization)
	assert.True(t, alpha.User.IsOfficial())
	assert.Equal(t, 1, alpha.Score.Value)
	assert.Equal(t, Minutes(125), *alpha.Score.Time)
	assert.Equal(t, accepted(125, 2), alpha.Statuses[0])
	assert.Equal(t, rejected(3), alpha.Statuses[1])

	assert.Equal(t, "1-1", rows[1].User.ID, "colliding ids get the row index appended")

	gamma := rows[2]
	assert.False(t, gamma.User.IsOfficial())
	require.Len(t, gamma.Statuses, 2, "short status lists are padded")
	assert.Equal(t, ResultNone, gamma.Statuses[1].Result)
}

func TestBuild_FromRecords(t *testing.T) {
	records := []model.RowRecord{
		{ID: "1", Rank: "1", Name: "A", Statuses: []model.ProblemStatus{{Result: model.ResultAccepted, Time: 10, Tries: 1}}},
		{Index: 1, ID: "2", Rank: "2", Name: "B", Statuses: []model.ProblemStatus{{Result: model.ResultAccepted, Time: 20, Tries: 1}}},
	}

	r, err := Build(DefaultContest(), records, 1, nil)
	require.NoError(t, err)
	require.Len(t, r.Rows, 2)
	assert.Equal(t, ResultFirstBlood, r.Rows[0].Statuses[0].Result)
	assert.Equal(t, "A", r.Problems[0].Alias)
	assert.Equal(t, "DOMjudge PDF Parsed", r.Contest.Title.Fallback())
	assert.Equal(t, DefaultContributors, r.Contributors)

	rule, ok := r.Series[0].Rule.Options.(*ICPCRuleOptions)
	require.True(t, ok)
	assert.Equal(t, []int{0, 0, 0}, rule.Count.Value)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"version":"0.3.9"`)
	assert.Contains(t, string(b), `"contributors":["algoUX (https://algoux.org)"]`)
}
