package tables

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructure is the sentinel wrapped by every StructureError
var ErrStructure = errors.New("document structure not recognized")

// Reason names the geometric precondition a StructureError refers to
type Reason string

const (
	ReasonNoPages        Reason = "no pages"
	ReasonPageDimensions Reason = "missing page dimensions"
	ReasonHeaderCluster  Reason = "header separator cluster"
)

// StructureError is a fatal failure: the document does not have the
// geometry the engine needs to produce any output.
type StructureError struct {
	Reason Reason
	Page   int // page index, -1 when not page specific
	Detail string
}

func (e *StructureError) Error() string {
	var sb strings.Builder
	sb.WriteString("structure error")
	if e.Page >= 0 {
		fmt.Fprintf(&sb, " on page %d", e.Page)
	}
	sb.WriteString(": ")
	sb.WriteString(string(e.Reason))
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap allows errors.Is(err, ErrStructure)
func (e *StructureError) Unwrap() error {
	return ErrStructure
}

// Warning is a non-fatal diagnostic produced while decoding cells
type Warning struct {
	Page    int    // page index
	Row     int    // global logical row index, -1 for page-level warnings
	Column  string // column name, empty for page-level warnings
	Message string
}

// String formats the warning for logs
func (w Warning) String() string {
	if w.Row < 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return fmt.Sprintf("page %d row %d %s: %s", w.Page, w.Row, w.Column, w.Message)
}
