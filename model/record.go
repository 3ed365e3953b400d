package model

import "fmt"

// Result is the outcome of one team on one problem
type Result int

const (
	// ResultNone means no scoreable attempt (also used for unparseable cells)
	ResultNone Result = iota
	// ResultRejected means only rejected attempts
	ResultRejected
	// ResultAccepted means the problem was solved
	ResultAccepted
)

// String returns the string representation of the result
func (r Result) String() string {
	switch r {
	case ResultNone:
		return "none"
	case ResultRejected:
		return "rejected"
	case ResultAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (r *Result) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none", "":
		*r = ResultNone
	case "rejected":
		*r = ResultRejected
	case "accepted":
		*r = ResultAccepted
	default:
		return fmt.Errorf("unknown result %q", string(b))
	}
	return nil
}

// ProblemStatus is the decoded content of one problem cell
type ProblemStatus struct {
	Result Result `json:"result"`
	Time   int    `json:"time,omitempty"`  // minutes, accepted only
	Tries  int    `json:"tries,omitempty"` // number of tries, rejected and accepted
}

// Score is the decoded content of the score cell
type Score struct {
	Value int `json:"value"`
	Time  int `json:"time"` // total time in minutes
}

// RowRecord is one decoded standings row
type RowRecord struct {
	// Index is the logical row position across the document
	Index int `json:"index"`

	// ID is the printed rank when it is numeric, otherwise Index as a string
	ID string `json:"id"`

	// Rank is the trimmed raw text of the rank cell
	Rank string `json:"rank"`

	Name         string          `json:"name"`
	Organization string          `json:"organization"`
	Score        Score           `json:"score"`
	Statuses     []ProblemStatus `json:"statuses"`

	Page    int `json:"page"`
	PageRow int `json:"pageRow"`
}

// Solved returns the number of accepted problems
func (r RowRecord) Solved() int {
	n := 0
	for _, s := range r.Statuses {
		if s.Result == ResultAccepted {
			n++
		}
	}
	return n
}
