package tables

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"github.com/tsawler/rankgrid/model"
)

// ErrUnrecognizedCell is wrapped by decode errors. The value returned next
// to such an error is always a usable default.
var ErrUnrecognizedCell = errors.New("unrecognized cell content")

var (
	triesPattern  = regexp.MustCompile(`(?i)^(\d+)\s*(?:try|tries)$`)
	numberPattern = regexp.MustCompile(`^\d+$`)
)

// CellLines groups a cell's texts into lines by exact y, top to bottom, and
// concatenates each line's raw contents in x order
func CellLines(texts []model.CellText) []string {
	if len(texts) == 0 {
		return nil
	}

	ys := make([]float64, 0, len(texts))
	seen := make(map[float64]bool, len(texts))
	for _, t := range texts {
		if !seen[t.Y] {
			seen[t.Y] = true
			ys = append(ys, t.Y)
		}
	}
	sort.Float64s(ys)

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		var line []model.CellText
		for _, t := range texts {
			if t.Y == y {
				line = append(line, t)
			}
		}
		sort.SliceStable(line, func(i, j int) bool {
			return line[i].X < line[j].X
		})

		var sb strings.Builder
		for _, t := range line {
			sb.WriteString(t.Raw)
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// normalizeNumber trims s and folds full-width digits to ASCII
func normalizeNumber(s string) string {
	return width.Narrow.String(strings.TrimSpace(s))
}

// parseCount parses a non-negative integer written in ASCII or full-width digits
func parseCount(s string) (int, bool) {
	s = normalizeNumber(s)
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// matchTries parses "N try" / "N tries"
func matchTries(s string) (int, bool) {
	m := triesPattern.FindStringSubmatch(normalizeNumber(s))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNumericRank reports whether a printed rank is a plain number, which is
// how official teams are ranked
func IsNumericRank(rank string) bool {
	return numberPattern.MatchString(normalizeNumber(rank))
}

// DecodeRank returns the record identifier and the raw rank text. The first
// line is used verbatim as identifier when it is purely numeric, with
// full-width digits folded to ASCII; otherwise the logical
// row index is used so every record stays addressable. An error is returned
// for non-empty, non-numeric rank cells.
func DecodeRank(texts []model.CellText, index int) (id string, rank string, err error) {
	lines := CellLines(texts)
	if len(lines) > 0 {
		rank = strings.TrimSpace(lines[0])
	}
	if IsNumericRank(rank) {
		return normalizeNumber(rank), rank, nil
	}
	id = strconv.Itoa(index)
	if rank != "" {
		return id, rank, fmt.Errorf("%w: rank %q is not numeric", ErrUnrecognizedCell, rank)
	}
	return id, rank, nil
}

// DecodeTeam returns the team name and organization. With two or more lines
// the last two are used, which skips an optional badge line above the name.
func DecodeTeam(texts []model.CellText) (name, organization string) {
	lines := CellLines(texts)
	switch len(lines) {
	case 0:
		return "", ""
	case 1:
		return lines[0], ""
	default:
		return lines[len(lines)-2], lines[len(lines)-1]
	}
}

// DecodeScore reads the solved count from the first run (by x) and the total
// time in minutes from the second. Missing runs default to 0.
func DecodeScore(texts []model.CellText) (model.Score, error) {
	var score model.Score
	var bad []string

	if len(texts) >= 1 {
		if v, ok := parseCount(texts[0].Raw); ok {
			score.Value = v
		} else if strings.TrimSpace(texts[0].Raw) != "" {
			bad = append(bad, texts[0].Raw)
		}
	}
	if len(texts) >= 2 {
		if v, ok := parseCount(texts[1].Raw); ok {
			score.Time = v
		} else if strings.TrimSpace(texts[1].Raw) != "" {
			bad = append(bad, texts[1].Raw)
		}
	}

	if len(bad) > 0 {
		return score, fmt.Errorf("%w: score %q", ErrUnrecognizedCell, bad)
	}
	return score, nil
}

// DecodeProblem decodes a problem cell:
//
//	0 lines            no attempt
//	"N tries"          rejected with N tries
//	"T" / "N tries"    accepted at T minutes after N tries
//
// Any other shape decodes to no attempt and returns an error describing
// what was found.
func DecodeProblem(texts []model.CellText) (model.ProblemStatus, error) {
	none := model.ProblemStatus{Result: model.ResultNone}
	lines := CellLines(texts)

	switch len(lines) {
	case 0:
		return none, nil

	case 1:
		if tries, ok := matchTries(lines[0]); ok {
			return model.ProblemStatus{Result: model.ResultRejected, Tries: tries}, nil
		}

	case 2:
		t, timeOK := parseCount(lines[0])
		tries, triesOK := matchTries(lines[1])
		if timeOK && triesOK {
			return model.ProblemStatus{Result: model.ResultAccepted, Time: t, Tries: tries}, nil
		}
	}

	if strings.TrimSpace(strings.Join(lines, "")) == "" {
		return none, nil
	}
	return none, fmt.Errorf("%w: %d line(s) %q", ErrUnrecognizedCell, len(lines), lines)
}
