package tables

import (
	"strconv"

	"github.com/tsawler/rankgrid/model"
)

// Geometry of the synthetic scoreboard used across the tests
const (
	testHeaderY   = 5.0
	testRowHeight = 2.0
	testFontSize  = 12.0 // effective y offset 0.75
	testProblemX0 = 19.0
	testProblemW  = 3.0
)

// fixtureRow describes the printed content of one standings row
type fixtureRow struct {
	Rank     string
	Badge    string
	Name     string
	Org      string
	Score    string
	Time     string
	Problems [][]string // lines per problem cell
}

// fixture describes a whole document: rows per page
type fixture struct {
	problems int
	pages    [][]fixtureRow
}

// rule creates a ruling fill
func rule(x, y, w float64) model.Fill {
	return model.Fill{X: x, Y: y, W: w, H: 0.06, OwnerTag: "#000000"}
}

// run creates a single-fragment text run
func run(x, y float64, s string) model.TextRun {
	return model.TextRun{X: x, Y: y, FontSize: testFontSize, Fragments: []model.Fragment{{Content: s, Size: 10}}}
}

func problemX(i int) float64 {
	return testProblemX0 + float64(i)*testProblemW
}

// headerFills returns the fills of the separator under the header
func headerFills(problems int, y float64) []model.Fill {
	fills := []model.Fill{
		rule(3, y, 12),     // rank | team boundary
		rule(3.5, y, 11.5), // team
		rule(15, y, 4),     // score
	}
	for i := 0; i < problems; i++ {
		fills = append(fills, rule(problemX(i), y, testProblemW))
	}
	return fills
}

// rowFills returns the fills of a separator under a data row
func rowFills(problems int, y float64) []model.Fill {
	fills := []model.Fill{rule(3.5, y, 11.5)}
	for i := 0; i < problems; i++ {
		fills = append(fills, rule(problemX(i), y, testProblemW))
	}
	return fills
}

// rowTexts returns the runs printed inside one row starting at top
func rowTexts(r fixtureRow, top float64) []model.TextRun {
	var texts []model.TextRun
	if r.Rank != "" {
		texts = append(texts, run(1, top+0.4, r.Rank))
	}
	if r.Badge != "" {
		texts = append(texts, run(4, top+0.05, r.Badge))
	}
	if r.Name != "" {
		texts = append(texts, run(4, top+0.3, r.Name))
	}
	if r.Org != "" {
		texts = append(texts, run(4, top+1.0, r.Org))
	}
	if r.Score != "" {
		texts = append(texts, run(15.5, top+0.6, r.Score))
	}
	if r.Time != "" {
		texts = append(texts, run(17, top+0.6, r.Time))
	}
	for i, lines := range r.Problems {
		x := problemX(i)
		texts = append(texts, run(x+0.1, top+0.1, ProblemLabel(i)+" "))
		for l, line := range lines {
			texts = append(texts, run(x+0.5, top+0.3+0.7*float64(l), line))
		}
	}
	return texts
}

// build renders the fixture into page primitives
func (f fixture) build() []model.Page {
	pages := make([]model.Page, len(f.pages))
	for p, rows := range f.pages {
		page := model.Page{Index: p, Width: 38.25, Height: 49.5}

		// decorative background and header text, never part of the grid
		page.Fills = append(page.Fills, model.Fill{X: 0, Y: testHeaderY, W: 38, H: 1, Color: intPtr(1)})
		page.Texts = append(page.Texts, run(1, 3, "RANK"), run(4, 3, "TEAM"))

		page.Fills = append(page.Fills, headerFills(f.problems, testHeaderY)...)
		if p > 0 {
			page.Fills = append(page.Fills, rowFills(f.problems, testHeaderY+0.5)...)
		}

		for r, row := range rows {
			top := testHeaderY + float64(r)*testRowHeight
			page.Fills = append(page.Fills, rowFills(f.problems, top+testRowHeight)...)
			page.Texts = append(page.Texts, rowTexts(row, top)...)
		}

		if p == len(f.pages)-1 {
			bottom := testHeaderY + float64(len(rows))*testRowHeight
			page.Fills = append(page.Fills, rowFills(f.problems, bottom+3)...)
			page.Texts = append(page.Texts, run(4, bottom+1, "Summary"))
		}

		pages[p] = page
	}
	return pages
}

func intPtr(v int) *int {
	return &v
}

// solvedRow returns a row where every problem was accepted
func solvedRow(rank int, problems int) fixtureRow {
	r := fixtureRow{
		Rank:  strconv.Itoa(rank),
		Name:  "Team " + strconv.Itoa(rank),
		Org:   "University " + strconv.Itoa(rank),
		Score: strconv.Itoa(problems),
		Time:  strconv.Itoa(100 * rank),
	}
	for i := 0; i < problems; i++ {
		r.Problems = append(r.Problems, []string{strconv.Itoa(10*rank + i), "1 try"})
	}
	return r
}
