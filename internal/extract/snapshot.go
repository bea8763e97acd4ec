package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"tmsbot/internal/timesheet"
)

// FromHTML captures rows from a saved page snapshot. This mirrors the live
// capture in the browser package but works offline, so templates can be
// generated from a page saved with "Save As" without a login session.
func FromHTML(r io.Reader) ([]RowData, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse HTML snapshot: %v", timesheet.ErrExtraction, err)
	}

	table := findTable(doc)
	if table == nil {
		return nil, fmt.Errorf("%w: no timesheet table in snapshot", timesheet.ErrExtraction)
	}

	headers := headerNames(table)
	var rows []RowData
	walk(table, func(n *html.Node) {
		if !isElement(n, "tr") || !hasAttrPart(n, "class", "mat-row") {
			return
		}
		var cells []string
		walk(n, func(c *html.Node) {
			if isElement(c, "td") {
				cells = append(cells, strings.TrimSpace(nodeText(c)))
			}
		})
		if len(cells) > 0 {
			rows = append(rows, RowData{Headers: headers, Cells: cells})
		}
	})
	return rows, nil
}

// findTable locates the Angular Material timesheet table.
func findTable(doc *html.Node) *html.Node {
	var table *html.Node
	walk(doc, func(n *html.Node) {
		if table != nil {
			return
		}
		if isElement(n, "table") && (hasAttr(n, "mat-table") || hasAttrPart(n, "class", "mat-table")) {
			table = n
		}
	})
	return table
}

// headerNames reads column roles from the header row. The cdk-column-*
// class carries the role even when header text is decorated.
func headerNames(table *html.Node) []string {
	var headers []string
	walk(table, func(n *html.Node) {
		if !isElement(n, "th") {
			return
		}
		if role := columnRole(n); role != "" {
			headers = append(headers, role)
		} else {
			headers = append(headers, strings.TrimSpace(nodeText(n)))
		}
	})
	return headers
}

func columnRole(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, cls := range strings.Fields(a.Val) {
			if rest, ok := strings.CutPrefix(cls, "cdk-column-"); ok {
				return rest
			}
		}
	}
	return ""
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fn(c)
		walk(c, fn)
	}
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasAttrPart(n *html.Node, key, part string) bool {
	for _, a := range n.Attr {
		if a.Key == key && strings.Contains(a.Val, part) {
			return true
		}
	}
	return false
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}
