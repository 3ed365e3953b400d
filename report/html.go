// Package report renders decoded standings as a standalone HTML page for
// reviewing an extraction next to the source PDF.
package report

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/rankgrid/model"
	"github.com/tsawler/rankgrid/tables"
)

const stylesheet = `
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 2px 6px; text-align: center; }
td.team { text-align: left; }
td.accepted { background: #c8f7c5; }
td.rejected { background: #f7c5c5; }
.org { color: #666; font-size: 0.85em; }
ul.warnings { color: #a15c00; }
`

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func class(name string) html.Attribute {
	return html.Attribute{Key: "class", Val: name}
}

// appendText appends an element holding only s
func appendText(parent *html.Node, a atom.Atom, s string, attrs ...html.Attribute) *html.Node {
	n := element(a, attrs...)
	n.AppendChild(textNode(s))
	parent.AppendChild(n)
	return n
}

// Build returns the document tree of the review page
func Build(title string, columns []model.ColumnRange, records []model.RowRecord, warnings []tables.Warning) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	root.AppendChild(head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	appendText(head, atom.Title, title)
	appendText(head, atom.Style, stylesheet)

	body := element(atom.Body)
	root.AppendChild(body)
	appendText(body, atom.H1, title)
	appendText(body, atom.P, fmt.Sprintf("%d rows, %d warnings", len(records), len(warnings)))

	table := element(atom.Table)
	body.AppendChild(table)

	thead := element(atom.Thead)
	table.AppendChild(thead)
	headRow := element(atom.Tr)
	thead.AppendChild(headRow)
	for _, c := range columns {
		appendText(headRow, atom.Th, c.Name)
	}

	tbody := element(atom.Tbody)
	table.AppendChild(tbody)
	for _, rec := range records {
		tbody.AppendChild(recordRow(rec))
	}

	if len(warnings) > 0 {
		appendText(body, atom.H2, "Warnings")
		list := element(atom.Ul, class("warnings"))
		body.AppendChild(list)
		for _, w := range warnings {
			appendText(list, atom.Li, w.String())
		}
	}

	return doc
}

func recordRow(rec model.RowRecord) *html.Node {
	tr := element(atom.Tr, html.Attribute{Key: "data-row", Val: strconv.Itoa(rec.Index)})

	appendText(tr, atom.Td, rec.Rank)

	team := element(atom.Td, class("team"))
	tr.AppendChild(team)
	team.AppendChild(textNode(rec.Name))
	if rec.Organization != "" {
		team.AppendChild(element(atom.Br))
		appendText(team, atom.Span, rec.Organization, class("org"))
	}

	appendText(tr, atom.Td, fmt.Sprintf("%d / %d", rec.Score.Value, rec.Score.Time))

	for _, s := range rec.Statuses {
		switch s.Result {
		case model.ResultAccepted:
			appendText(tr, atom.Td, fmt.Sprintf("%d (%d)", s.Time, s.Tries), class("accepted"))
		case model.ResultRejected:
			appendText(tr, atom.Td, fmt.Sprintf("-%d", s.Tries), class("rejected"))
		default:
			appendText(tr, atom.Td, "")
		}
	}
	return tr
}

// WriteHTML renders the review page to w
func WriteHTML(w io.Writer, title string, columns []model.ColumnRange, records []model.RowRecord, warnings []tables.Warning) error {
	if err := html.Render(w, Build(title, columns, records, warnings)); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
