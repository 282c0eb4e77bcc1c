package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"
)

// The three tool schemas below are a bit-exact contract with the upstream
// model: names, required argument sets and additionalProperties:false must
// not change, since the model is prompted against them.

type ScrapeTool struct {
	fetcher       output.PageFetcher
	logger        output.LoggerPort
	defaultOutput string
}

func NewScrapeTool(fetcher output.PageFetcher, logger output.LoggerPort, defaultOutput string) *ScrapeTool {
	return &ScrapeTool{fetcher: fetcher, logger: logger, defaultOutput: defaultOutput}
}

func (t *ScrapeTool) Name() entity.ToolName { return entity.ToolScrapeWebsite }
func (t *ScrapeTool) Description() string {
	return "Scrapes a website and saves the HTML to a file."
}
func (t *ScrapeTool) Strict() bool { return true }
func (t *ScrapeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to scrape",
			},
			"output_file": map[string]interface{}{
				"type":        "string",
				"description": "Path to save HTML (e.g., outputs/scraped_content.html)",
			},
		},
		"required":             []string{"url", "output_file"},
		"additionalProperties": false,
	}
}

func (t *ScrapeTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL        string `json:"url"`
		OutputFile string `json:"output_file"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}
	if input.URL == "" {
		return "", fmt.Errorf("url is required")
	}
	if input.OutputFile == "" {
		input.OutputFile = t.defaultOutput
	}

	result, err := t.fetcher.Fetch(ctx, input.URL, input.OutputFile)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type ExtractTool struct {
	extractor output.Extractor
	logger    output.LoggerPort
}

func NewExtractTool(extractor output.Extractor, logger output.LoggerPort) *ExtractTool {
	return &ExtractTool{extractor: extractor, logger: logger}
}

func (t *ExtractTool) Name() entity.ToolName { return entity.ToolGetRelevantData }
func (t *ExtractTool) Description() string {
	return "Extracts relevant text from a saved HTML file using a CSS selector."
}
func (t *ExtractTool) Strict() bool { return true }
func (t *ExtractTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "HTML file path",
			},
			"js_selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for elements to extract",
			},
		},
		"required":             []string{"file_name", "js_selector"},
		"additionalProperties": false,
	}
}

func (t *ExtractTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		FileName   string `json:"file_name"`
		JSSelector string `json:"js_selector"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}
	if input.FileName == "" {
		return "", fmt.Errorf("file_name is required")
	}

	result, err := t.extractor.Extract(input.FileName, input.JSSelector)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type AnswerTool struct {
	runner output.CodeRunner
	logger output.LoggerPort
}

func NewAnswerTool(runner output.CodeRunner, logger output.LoggerPort) *AnswerTool {
	return &AnswerTool{runner: runner, logger: logger}
}

func (t *AnswerTool) Name() entity.ToolName { return entity.ToolAnswerQuestions }
func (t *AnswerTool) Description() string {
	return "Runs provided Python code that computes the final answers/plot and prints ONLY the JSON array."
}
func (t *AnswerTool) Strict() bool { return true }
func (t *AnswerTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Standalone Python code that prints the final JSON array.",
			},
		},
		"required":             []string{"code"},
		"additionalProperties": false,
	}
}

// Execute returns the script's stdout verbatim. The runner already
// substitutes a JSON error object when the process fails with no output.
func (t *AnswerTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("parse arguments: %w", err)
	}
	if input.Code == "" {
		return "", fmt.Errorf("code is required")
	}

	return t.runner.Run(ctx, input.Code)
}
