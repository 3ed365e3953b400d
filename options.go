package rankgrid

import "github.com/tsawler/rankgrid/tables"

// extractOptions holds the engine settings chosen through the fluent API
type extractOptions struct {
	problems        int
	rulingColors    []string // nil means the engine defaults
	yTolerance      float64
	baselineDivisor float64 // 0 means the engine default
}

// defaultOptions returns options with no problem count set
func defaultOptions() extractOptions {
	return extractOptions{}
}

// clone creates a deep copy of extractOptions
func (o extractOptions) clone() extractOptions {
	out := o
	if o.rulingColors != nil {
		out.rulingColors = make([]string, len(o.rulingColors))
		copy(out.rulingColors, o.rulingColors)
	}
	return out
}

// engineConfig converts the options into an engine configuration
func (o extractOptions) engineConfig() tables.Config {
	cfg := tables.DefaultConfig(o.problems)
	if len(o.rulingColors) > 0 {
		cfg.RulingColors = append([]string(nil), o.rulingColors...)
	}
	cfg.YTolerance = o.yTolerance
	if o.baselineDivisor > 0 {
		cfg.BaselineDivisor = o.baselineDivisor
	}
	return cfg
}
