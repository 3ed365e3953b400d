package tables

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProblemCount is returned when the problem count is not a positive integer
var ErrInvalidProblemCount = errors.New("problem count must be a positive integer")

// DefaultBaselineDivisor converts a run's font size hint into the offset
// between its anchor and its rendered baseline
const DefaultBaselineDivisor = 16.0

// Config holds engine configuration
type Config struct {
	// Number of problem columns to the right of the score column
	ProblemCount int

	// Stroke colour tags marking ruling fills; compared case-insensitively
	RulingColors []string

	// Maximum y distance for two fills to share a separator cluster.
	// Zero means exact equality.
	YTolerance float64

	// Divisor applied to the font size hint when computing a run's effective y
	BaselineDivisor float64
}

// DefaultConfig returns the configuration tuned for DOMjudge scoreboard PDFs
// rendered by pdf2json
func DefaultConfig(problemCount int) Config {
	return Config{
		ProblemCount:    problemCount,
		RulingColors:    []string{"#000000", "#000"},
		YTolerance:      0,
		BaselineDivisor: DefaultBaselineDivisor,
	}
}

// Validate checks the configuration for values the engine cannot work with
func (c Config) Validate() error {
	if c.ProblemCount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidProblemCount, c.ProblemCount)
	}
	if len(c.RulingColors) == 0 {
		return errors.New("at least one ruling colour is required")
	}
	if c.YTolerance < 0 {
		return fmt.Errorf("y tolerance must not be negative: got %v", c.YTolerance)
	}
	if c.BaselineDivisor < 0 {
		return fmt.Errorf("baseline divisor must not be negative: got %v", c.BaselineDivisor)
	}
	return nil
}

// clone returns a copy that shares no slices with c
func (c Config) clone() Config {
	out := c
	out.RulingColors = append([]string(nil), c.RulingColors...)
	return out
}

// isRuling reports whether a fill's owner tag marks it as a ruling line
func (c Config) isRuling(tag string) bool {
	if tag == "" {
		return false
	}
	for _, color := range c.RulingColors {
		if strings.EqualFold(color, tag) {
			return true
		}
	}
	return false
}

// minClusterSize is the smallest separator cluster that is not decoration
func (c Config) minClusterSize() int {
	return 1 + c.ProblemCount
}

// baselineDivisor returns the configured divisor or the default
func (c Config) baselineDivisor() float64 {
	if c.BaselineDivisor <= 0 {
		return DefaultBaselineDivisor
	}
	return c.BaselineDivisor
}
