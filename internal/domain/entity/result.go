package entity

import "encoding/json"

// ScrapeResult confirms a page fetch: the rendered HTML was written to File.
type ScrapeResult struct {
	OK   bool   `json:"ok"`
	File string `json:"file"`
	URL  string `json:"url"`
}

// ExtractionResult is the outcome of reading a saved HTML document.
// With a selector it carries the matched texts plus a count; without one it
// carries the whole-page text. The two shapes serialize differently, matching
// what the model is prompted to expect.
type ExtractionResult struct {
	Items    []string
	Text     string
	Count    int
	Selector string
}

func (r *ExtractionResult) MarshalJSON() ([]byte, error) {
	if r.Selector == "" {
		return json.Marshal(struct {
			Data string `json:"data"`
		}{r.Text})
	}

	items := r.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(struct {
		Data     []string `json:"data"`
		Count    int      `json:"count"`
		Selector string   `json:"selector"`
	}{items, r.Count, r.Selector})
}
