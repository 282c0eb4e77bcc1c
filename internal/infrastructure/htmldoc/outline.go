package htmldoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Diagnostic helpers for crafting stable CSS selectors from saved HTML.
// Not called by the tool loop; exposed for external use (cmd/inspect).

// candidateSelectors are common content containers plus table/heading
// conventions worth suggesting when present.
var candidateSelectors = []string{
	"main#content",
	"main",
	"article",
	"#content",
	"#mw-content-text",
	"table.wikitable",
	"table.infobox",
	"div.mw-parser-output h2",
	"div.mw-parser-output h3",
}

// Outline returns an indented outline of element tags annotated with id and
// class hints, bounded by depth and by children per node. It starts from
// <main> when present, otherwise from <body>.
func Outline(path string, depth, maxChildren int) ([]string, error) {
	doc, err := load(path)
	if err != nil {
		return nil, err
	}

	start := doc.Find("main").First()
	if start.Length() == 0 {
		start = doc.Find("body").First()
	}
	if start.Length() == 0 {
		return nil, fmt.Errorf("document has no body")
	}

	root := start.Nodes[0]
	lines := []string{nodeLabel(root)}
	walkOutline(root, 1, depth, maxChildren, &lines)
	return lines, nil
}

func walkOutline(n *html.Node, level, depth, maxChildren int, lines *[]string) {
	if level > depth {
		return
	}
	count := 0
	for c := n.FirstChild; c != nil && count < maxChildren; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		count++
		*lines = append(*lines, strings.Repeat("  ", level)+"- "+nodeLabel(c))
		walkOutline(c, level+1, depth, maxChildren, lines)
	}
}

// nodeLabel renders a node as tag#id.class, keeping at most three classes to
// avoid very long lines.
func nodeLabel(n *html.Node) string {
	label := n.Data
	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			if id := strings.TrimSpace(attr.Val); id != "" {
				label += "#" + id
			}
		case "class":
			classes := strings.Fields(attr.Val)
			if len(classes) > 3 {
				classes = classes[:3]
			}
			if len(classes) > 0 {
				label += "." + strings.Join(classes, ".")
			}
		}
	}
	return label
}

// SuggestSelectors returns candidates that actually match the document,
// deduplicated and capped at max.
func SuggestSelectors(path string, max int) ([]string, error) {
	doc, err := load(path)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	for _, sel := range candidateSelectors {
		if len(out) >= max {
			break
		}
		if seen[sel] {
			continue
		}
		if doc.Find(sel).Length() > 0 {
			seen[sel] = true
			out = append(out, sel)
		}
	}
	return out, nil
}

func load(path string) (*goquery.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read html file: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}
