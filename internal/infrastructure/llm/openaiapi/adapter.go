package openaiapi

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*ChatAdapter)(nil)

// ChatAdapter performs one chat-completions exchange per turn against an
// OpenAI-compatible endpoint with the tool registry attached. One attempt,
// no retry; upstream failures abort the run.
type ChatAdapter struct {
	client    *openai.Client
	model     string
	debugPath string
	logger    output.LoggerPort
}

type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	DebugPath string
	Logger    output.LoggerPort
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://aipipe.org/openai/v1",
	}
}

func NewChatAdapter(cfg Config) *ChatAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = cfg.BaseURL

	return &ChatAdapter{
		client:    openai.NewClientWithConfig(config),
		model:     cfg.Model,
		debugPath: cfg.DebugPath,
		logger:    cfg.Logger,
	}
}

func (a *ChatAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	messages := convertMessages(req.Messages)
	tools := convertTools(req.Tools)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    messages,
		Tools:       tools,
		ToolChoice:  "auto",
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	a.dumpResponse(resp)

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
	}, nil
}

// dumpResponse persists the raw response for debugging. Best-effort: a
// failed write must never fail the run.
func (a *ChatAdapter) dumpResponse(resp openai.ChatCompletionResponse) {
	if a.debugPath == "" {
		return
	}
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.debugPath), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(a.debugPath, data, 0o644); err != nil && a.logger != nil {
		a.logger.Warn("Failed to write debug response", "path", a.debugPath, "error", err)
	}
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		oaiMsg := openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}

		if msg.ToolCallID != "" {
			oaiMsg.ToolCallID = msg.ToolCallID
		}
		if msg.Name != "" {
			oaiMsg.Name = msg.Name
		}

		for _, tc := range msg.ToolCalls {
			oaiMsg.ToolCalls = append(oaiMsg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}

		result = append(result, oaiMsg)
	}
	return result
}

func convertTools(tools []entity.ToolDefinition) []openai.Tool {
	result := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		result = append(result, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Strict:      t.Strict,
				Parameters:  t.Parameters,
			},
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	result := entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}

	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, entity.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return result
}
