// Package srk builds standard ranklist (srk) documents from decoded
// standings rows.
//
// The format is a JSON document describing a contest, its problems, ranking
// series and one row per participant. Rows are emitted in the order they are
// given; ranks are never recomputed.
package srk

import (
	"encoding/json"
	"fmt"
)

// Version is the format version written into every ranklist
const Version = "0.3.9"

// Text is a localized string keyed by language tag. The "fallback" key is
// used when no translation matches.
type Text map[string]string

// NewText returns a Text holding only a fallback value
func NewText(fallback string) Text {
	return Text{"fallback": fallback}
}

// Fallback returns the fallback value
func (t Text) Fallback() string {
	return t["fallback"]
}

// TimeDuration is a [value, unit] pair such as [5, "h"]
type TimeDuration struct {
	Value float64
	Unit  string // "ms", "s", "min", "h" or "d"
}

// Minutes returns a duration in minutes
func Minutes(v int) TimeDuration {
	return TimeDuration{Value: float64(v), Unit: "min"}
}

// Hours returns a duration in hours
func Hours(v int) TimeDuration {
	return TimeDuration{Value: float64(v), Unit: "h"}
}

var unitMillis = map[string]float64{
	"ms":  1,
	"s":   1000,
	"min": 60 * 1000,
	"h":   60 * 60 * 1000,
	"d":   24 * 60 * 60 * 1000,
}

// Milliseconds converts the duration to milliseconds
func (d TimeDuration) Milliseconds() (float64, error) {
	m, ok := unitMillis[d.Unit]
	if !ok {
		return 0, fmt.Errorf("unknown time unit %q", d.Unit)
	}
	return d.Value * m, nil
}

// MarshalJSON writes the duration as a two element array
func (d TimeDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{d.Value, d.Unit})
}

// UnmarshalJSON reads a two element array
func (d *TimeDuration) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("failed to decode time duration: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("time duration must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &d.Value); err != nil {
		return fmt.Errorf("failed to decode time value: %w", err)
	}
	if err := json.Unmarshal(pair[1], &d.Unit); err != nil {
		return fmt.Errorf("failed to decode time unit: %w", err)
	}
	return nil
}

// Result is a solution result. The empty Result is written as null.
type Result string

const (
	ResultNone       Result = ""
	ResultAccepted   Result = "AC"
	ResultRejected   Result = "RJ"
	ResultFirstBlood Result = "FB"
	ResultPending    Result = "?"
	ResultCompileErr Result = "CE"
	ResultUnknownErr Result = "UKE"
)

// IsAccepted reports whether r counts as solved
func (r Result) IsAccepted() bool {
	return r == ResultAccepted || r == ResultFirstBlood
}

// MarshalJSON writes ResultNone as null
func (r Result) MarshalJSON() ([]byte, error) {
	if r == ResultNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

// UnmarshalJSON reads null as ResultNone
func (r *Result) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = ResultNone
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = Result(s)
	return nil
}

// Contest describes the contest the ranklist belongs to
type Contest struct {
	Title          Text          `json:"title"`
	StartAt        string        `json:"startAt"`
	Duration       TimeDuration  `json:"duration"`
	FrozenDuration *TimeDuration `json:"frozenDuration,omitempty"`
	Link           string        `json:"link,omitempty"`
}

// ProblemStatistics summarizes the results on one problem
type ProblemStatistics struct {
	Accepted  int `json:"accepted"`
	Submitted int `json:"submitted"`
}

// Problem is one contest problem
type Problem struct {
	Title      Text               `json:"title,omitempty"`
	Alias      string             `json:"alias,omitempty"`
	Link       string             `json:"link,omitempty"`
	Statistics *ProblemStatistics `json:"statistics,omitempty"`
}

// Segment is one award band of a ranking series
type Segment struct {
	Title string `json:"title,omitempty"`
	Style string `json:"style"`
}

// SeriesRule selects how a series computes ranks
type SeriesRule struct {
	Preset  string      `json:"preset"`
	Options interface{} `json:"options,omitempty"`
}

// ICPCRuleOptions sets the gold/silver/bronze bands either by ratio or by count
type ICPCRuleOptions struct {
	Ratio *RatioOption `json:"ratio,omitempty"`
	Count *CountOption `json:"count,omitempty"`
}

// RatioOption gives award bands as fractions of the participants
type RatioOption struct {
	Value []float64 `json:"value"`
}

// CountOption gives award bands as absolute counts
type CountOption struct {
	Value []int `json:"value"`
}

// UniqByUserFieldOptions ranks only the best row per distinct user field
type UniqByUserFieldOptions struct {
	Field               string `json:"field"`
	IncludeOfficialOnly bool   `json:"includeOfficialOnly"`
}

// Series is a ranking column such as "#" or "R#"
type Series struct {
	Title    string      `json:"title"`
	Segments []Segment   `json:"segments,omitempty"`
	Rule     *SeriesRule `json:"rule,omitempty"`
}

// Marker tags a group of users, e.g. female teams
type Marker struct {
	ID    string `json:"id"`
	Label Text   `json:"label"`
	Style string `json:"style"`
}

// SorterConfig configures the ICPC sorter
type SorterConfig struct {
	NoPenaltyResults     []Result      `json:"noPenaltyResults,omitempty"`
	Penalty              *TimeDuration `json:"penalty,omitempty"`
	TimePrecision        string        `json:"timePrecision,omitempty"`
	TimeRounding         string        `json:"timeRounding,omitempty"`
	RankingTimePrecision string        `json:"rankingTimePrecision,omitempty"`
	RankingTimeRounding  string        `json:"rankingTimeRounding,omitempty"`
}

// Sorter names the ranking algorithm
type Sorter struct {
	Algorithm string       `json:"algorithm"`
	Config    SorterConfig `json:"config"`
}

// User is a participant
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Organization string `json:"organization,omitempty"`
	Official     *bool  `json:"official,omitempty"`
	Marker       string `json:"marker,omitempty"`
}

// IsOfficial reports whether the user competes officially; unset means yes
func (u User) IsOfficial() bool {
	return u.Official == nil || *u.Official
}

// Score is a row's total score
type Score struct {
	Value int           `json:"value"`
	Time  *TimeDuration `json:"time,omitempty"`
}

// Status is a row's result on one problem
type Status struct {
	Result Result        `json:"result"`
	Time   *TimeDuration `json:"time,omitempty"`
	Tries  int           `json:"tries,omitempty"`
}

// Row is one participant's line in the ranklist
type Row struct {
	User     User     `json:"user"`
	Score    Score    `json:"score"`
	Statuses []Status `json:"statuses"`
}

// Ranklist is a complete srk document
type Ranklist struct {
	Type         string    `json:"type"`
	Version      string    `json:"version"`
	Contest      Contest   `json:"contest"`
	Problems     []Problem `json:"problems"`
	Series       []Series  `json:"series"`
	Rows         []Row     `json:"rows"`
	Markers      []Marker  `json:"markers,omitempty"`
	Sorter       *Sorter   `json:"sorter,omitempty"`
	Contributors []string  `json:"contributors,omitempty"`
	Remarks      Text      `json:"remarks,omitempty"`
}
