package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/domain/entity"
)

var _ input.TaskExecutor = (*UseCase)(nil)

const (
	defaultBudget        = 110 * time.Second
	defaultMaxIterations = 50
	maxObservationLen    = 20000
)

type Options struct {
	// Budget bounds wall-clock time for the whole loop. Checked before each
	// chat turn; individual tool calls are not bounded here.
	Budget time.Duration
	// MaxIterations is a defensive cap on chat turns on top of the time
	// budget.
	MaxIterations int
}

type UseCase struct {
	llm           output.LLMPort
	tools         output.ToolRegistry
	logger        output.LoggerPort
	systemPrompt  string
	budget        time.Duration
	maxIterations int
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	systemPrompt string,
	opts Options,
) *UseCase {
	if opts.Budget <= 0 {
		opts.Budget = defaultBudget
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = defaultMaxIterations
	}
	return &UseCase{
		llm:           llm,
		tools:         tools,
		logger:        logger,
		systemPrompt:  systemPrompt,
		budget:        opts.Budget,
		maxIterations: opts.MaxIterations,
	}
}

// Execute drives the conversation until the model replies without tool
// calls. That terminal reply must be a JSON array; anything else is a
// validation failure. The conversation only ever grows: every tool call is
// answered by exactly one tool message with the matching call ID before the
// next chat turn.
func (uc *UseCase) Execute(ctx context.Context, task, plan string) (*input.ExecuteResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: uc.systemPrompt},
		{Role: entity.RoleUser, Content: userMessage(task, plan)},
	}

	toolDefs := uc.tools.Definitions()
	start := time.Now()

	for iteration := 1; iteration <= uc.maxIterations; iteration++ {
		if elapsed := time.Since(start); elapsed > uc.budget {
			uc.logger.Error("Loop budget exhausted", "elapsed", elapsed.String(), "iteration", iteration)
			return nil, fmt.Errorf("%w after %s", ErrBudgetExceeded, elapsed.Round(time.Millisecond))
		}

		uc.logger.Debug("Starting iteration", "iteration", iteration)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			// Double-wrap so callers can still see context.DeadlineExceeded.
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			return uc.finish(resp.Message.Content, iteration)
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.dispatch(ctx, tc)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name,
				Content:    observation,
			})
		}
	}

	return nil, fmt.Errorf("%w: max iterations (%d) reached", ErrBudgetExceeded, uc.maxIterations)
}

// finish validates the terminal reply. Invalid JSON and valid-but-not-array
// content both map to ErrInvalidAnswer, distinguishable from a timeout.
func (uc *UseCase) finish(content string, iterations int) (*input.ExecuteResult, error) {
	text := strings.TrimSpace(content)

	var parsed any
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	answer, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: content is valid JSON but %T", ErrInvalidAnswer, parsed)
	}

	uc.logger.Info("Task completed", "iterations", iterations, "answerLen", len(answer))
	return &input.ExecuteResult{Answer: answer, Iterations: iterations}, nil
}

// dispatch never returns an error: every failure becomes structured textual
// tool output so the model can observe it and recover.
func (uc *UseCase) dispatch(ctx context.Context, tc entity.ToolCall) string {
	tool, ok := uc.tools.Get(entity.ToolName(tc.Name))
	if !ok {
		uc.logger.Warn("Unknown tool called", "name", tc.Name)
		return errorObservation(fmt.Sprintf("unknown tool '%s'", tc.Name))
	}

	args := normalizeArguments(tc.Arguments)

	uc.logger.Info("Executing tool", "name", tc.Name, "args", args)

	result, err := tool.Execute(ctx, args)
	if err != nil {
		uc.logger.Error("Tool execution failed", "name", tc.Name, "error", err)
		return errorObservation(err.Error())
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	uc.logger.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result
}

// normalizeArguments resolves malformed argument encodings to an empty
// argument object instead of failing the turn.
func normalizeArguments(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "{}"
	}
	if !json.Valid([]byte(raw)) {
		return "{}"
	}
	return raw
}

func errorObservation(msg string) string {
	data, err := json.Marshal(map[string]any{"ok": false, "error": msg})
	if err != nil {
		return fmt.Sprintf(`{"ok":false,"error":%q}`, msg)
	}
	return string(data)
}

func userMessage(task, plan string) string {
	return fmt.Sprintf("%s\n\nPlan:\n%s\n\nUse the tools. When done, return ONLY the final JSON array.", task, plan)
}
