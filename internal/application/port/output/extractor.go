package output

import "analyst-agent/internal/domain/entity"

// Extractor reads a previously saved HTML document. A non-matching or
// invalid selector yields an empty result set, not an error; only a missing
// file is an error.
type Extractor interface {
	Extract(path, selector string) (*entity.ExtractionResult, error)
}
