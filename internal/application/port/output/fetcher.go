package output

import (
	"context"

	"analyst-agent/internal/domain/entity"
)

// PageFetcher loads a URL in a headless browser and persists the rendered
// HTML to outputPath, creating parent directories and overwriting any
// existing file.
type PageFetcher interface {
	Fetch(ctx context.Context, url, outputPath string) (*entity.ScrapeResult, error)
	Close()
}
