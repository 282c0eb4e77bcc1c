package htmldoc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"

	"github.com/PuerkitoBio/goquery"
)

var _ output.Extractor = (*Extractor)(nil)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses a saved HTML document. With a selector it returns the
// collapsed text of every match; an invalid or non-matching selector simply
// yields count 0 so the model gets feedback and can retry with a better
// guess. Without a selector the whole document's text is returned, separated
// by single spaces.
func (e *Extractor) Extract(path, selector string) (*entity.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read html file: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if selector != "" {
		var items []string
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			items = append(items, collapseWhitespace(sel.Text()))
		})
		return &entity.ExtractionResult{
			Items:    items,
			Count:    len(items),
			Selector: selector,
		}, nil
	}

	return &entity.ExtractionResult{
		Text: collapseWhitespace(doc.Text()),
	}, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
