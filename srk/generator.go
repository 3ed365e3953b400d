package srk

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrNotInitialized is returned when a ranklist is requested before the
	// generator has a contest, problems, series and rows
	ErrNotInitialized = errors.New("ranklist is not fully initialized")

	errInvalidFB = errors.New("invalid first blood status")
)

// ICPCPresetOptions tunes the ICPC preset
type ICPCPresetOptions struct {
	// Award bands of the main "#" series. Defaults to ratios 0.1, 0.2, 0.3.
	MainRankSeriesRule *ICPCRuleOptions

	// Results without penalty. Defaults to FB, AC, ?, CE, UKE and null.
	SorterNoPenaltyResults []Result

	SorterTimePrecision        string
	SorterTimeRounding         string
	SorterRankingTimePrecision string
	SorterRankingTimeRounding  string
}

// InitOptions configures a generator. Explicit Series, Markers and Sorter
// take precedence over the ICPC preset.
type InitOptions struct {
	Contest      Contest
	Problems     []Problem
	Series       []Series
	Markers      []Marker
	Sorter       *Sorter
	Contributors []string
	Remarks      Text

	UseICPCPreset     bool
	ICPCPresetOptions ICPCPresetOptions
}

// BuildOptions controls the computed parts of the ranklist
type BuildOptions struct {
	// Mark the earliest accepted status of every problem as first blood.
	// Skipped when the rows already carry first blood results.
	CalculateFB bool

	// Only official users can take first blood
	OnlyIncludeOfficialForFB bool

	// Give up on first blood entirely when any problem has two or more
	// accepted statuses tied at the earliest time
	DisableFBIfConflict bool
}

// Generator assembles a ranklist from precomputed rows
type Generator struct {
	ranklist Ranklist
	logger   *zap.Logger
}

// NewGenerator creates a generator. A nil logger disables logging.
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		ranklist: Ranklist{Type: "general", Version: Version},
		logger:   logger,
	}
}

// Init sets the contest metadata and the ranking configuration
func (g *Generator) Init(opts InitOptions) {
	r := &g.ranklist
	r.Contest = opts.Contest
	r.Problems = append([]Problem(nil), opts.Problems...)
	r.Contributors = opts.Contributors
	r.Remarks = opts.Remarks

	preset := opts.ICPCPresetOptions

	switch {
	case opts.Series != nil:
		r.Series = opts.Series
	case opts.UseICPCPreset:
		rule := preset.MainRankSeriesRule
		if rule == nil {
			rule = &ICPCRuleOptions{Ratio: &RatioOption{Value: []float64{0.1, 0.2, 0.3}}}
		}
		r.Series = []Series{
			{
				Title: "#",
				Segments: []Segment{
					{Style: "gold", Title: "Gold Award"},
					{Style: "silver", Title: "Silver Award"},
					{Style: "bronze", Title: "Bronze Award"},
				},
				Rule: &SeriesRule{Preset: "ICPC", Options: rule},
			},
			{Title: "R#", Rule: &SeriesRule{Preset: "Normal"}},
			{
				Title: "S#",
				Rule: &SeriesRule{
					Preset:  "UniqByUserField",
					Options: UniqByUserFieldOptions{Field: "organization", IncludeOfficialOnly: true},
				},
			},
		}
	default:
		r.Series = []Series{{Title: "R#", Rule: &SeriesRule{Preset: "Normal"}}}
	}

	switch {
	case opts.Sorter != nil:
		r.Sorter = opts.Sorter
	case opts.UseICPCPreset:
		noPenalty := preset.SorterNoPenaltyResults
		if noPenalty == nil {
			noPenalty = []Result{ResultFirstBlood, ResultAccepted, ResultPending, ResultCompileErr, ResultUnknownErr, ResultNone}
		}
		penalty := Minutes(20)
		r.Sorter = &Sorter{
			Algorithm: "ICPC",
			Config: SorterConfig{
				NoPenaltyResults:     noPenalty,
				Penalty:              &penalty,
				TimePrecision:        preset.SorterTimePrecision,
				TimeRounding:         preset.SorterTimeRounding,
				RankingTimePrecision: preset.SorterRankingTimePrecision,
				RankingTimeRounding:  preset.SorterRankingTimeRounding,
			},
		}
	}

	switch {
	case opts.Markers != nil:
		r.Markers = opts.Markers
	case opts.UseICPCPreset:
		r.Markers = []Marker{{ID: "female", Label: Text{"zh-CN": "女队", "fallback": "Female"}, Style: "pink"}}
	}
}

// SetRows sets the rows in display order. The rows are copied.
func (g *Generator) SetRows(rows []Row) {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = row
		out[i].Statuses = append([]Status(nil), row.Statuses...)
	}
	g.ranklist.Rows = out
}

// Build fills in problem statistics and, when requested, first blood
func (g *Generator) Build(opts BuildOptions) error {
	r := &g.ranklist
	if r.Contest.Title == nil || r.Problems == nil {
		return fmt.Errorf("%w: contest and problems must be set before building", ErrNotInitialized)
	}
	if r.Rows == nil {
		return fmt.Errorf("%w: rows must be set before building", ErrNotInitialized)
	}

	for i, row := range r.Rows {
		if len(row.Statuses) != len(r.Problems) {
			return fmt.Errorf("row %d (%s) has %d statuses, want %d", i, row.User.ID, len(row.Statuses), len(r.Problems))
		}
	}

	if opts.CalculateFB {
		if err := g.markFirstBlood(opts); err != nil {
			return err
		}
	}

	g.computeStatistics()
	return nil
}

// firstBlood is a candidate accepted status
type firstBlood struct {
	row    int
	millis float64
}

func (g *Generator) markFirstBlood(opts BuildOptions) error {
	r := &g.ranklist

	// rows that already carry first blood results are left untouched
	for _, row := range r.Rows {
		for p, s := range row.Statuses {
			if s.Result != ResultFirstBlood {
				continue
			}
			if s.Time == nil {
				return fmt.Errorf("%w: user %s problem %d has no time", errInvalidFB, row.User.ID, p)
			}
			g.logger.Debug("first blood present in rows, skipping calculation")
			return nil
		}
	}

	winners := make([][]firstBlood, len(r.Problems))
	conflict := false
	for p := range r.Problems {
		for i, row := range r.Rows {
			s := row.Statuses[p]
			if s.Result != ResultAccepted || s.Time == nil {
				continue
			}
			if opts.OnlyIncludeOfficialForFB && !row.User.IsOfficial() {
				continue
			}
			ms, err := s.Time.Milliseconds()
			if err != nil {
				return fmt.Errorf("user %s problem %d: %w", row.User.ID, p, err)
			}

			switch {
			case len(winners[p]) == 0 || ms < winners[p][0].millis:
				winners[p] = []firstBlood{{row: i, millis: ms}}
			case ms == winners[p][0].millis:
				winners[p] = append(winners[p], firstBlood{row: i, millis: ms})
				g.logger.Info("possible same-time first blood",
					zap.Int("problem", p),
					zap.String("user", row.User.ID),
					zap.Float64("timeMs", ms))
			}
		}
		if len(winners[p]) > 1 && opts.DisableFBIfConflict {
			conflict = true
		}
	}

	if conflict {
		g.logger.Warn("first blood calculation disabled: several statuses tie for first blood")
		return nil
	}

	for p, ws := range winners {
		for _, w := range ws {
			r.Rows[w.row].Statuses[p].Result = ResultFirstBlood
		}
	}
	return nil
}

func (g *Generator) computeStatistics() {
	r := &g.ranklist
	for p := range r.Problems {
		stats := ProblemStatistics{}
		for _, row := range r.Rows {
			s := row.Statuses[p]
			if s.Result == ResultNone {
				continue
			}
			if s.Result.IsAccepted() {
				stats.Accepted++
			}
			tries := s.Tries
			if tries < 1 {
				tries = 1
			}
			stats.Submitted += tries
		}
		r.Problems[p].Statistics = &stats
	}
}

// Ranklist returns the built document
func (g *Generator) Ranklist() (*Ranklist, error) {
	r := g.ranklist
	if r.Contest.Title == nil || r.Problems == nil || r.Series == nil || r.Rows == nil {
		return nil, ErrNotInitialized
	}
	return &r, nil
}
