package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"analyst-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

var _ output.PlannerPort = (*Planner)(nil)

// Planner makes the single stateless planning call: task text plus the
// breakdown prompt in, plan text out. The plan is also persisted to PlanPath
// best-effort for inspection.
type Planner struct {
	model    llms.Model
	prompt   string
	planPath string
	logger   output.LoggerPort
}

type Config struct {
	APIKey   string
	Model    string
	Prompt   string
	PlanPath string
	Logger   output.LoggerPort
}

func NewPlanner(ctx context.Context, cfg Config) (*Planner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing planner API key")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create planner client: %w", err)
	}

	return &Planner{
		model:    client,
		prompt:   cfg.Prompt,
		planPath: cfg.PlanPath,
		logger:   cfg.Logger,
	}, nil
}

func (p *Planner) Plan(ctx context.Context, task string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, p.model, task+"\n\n"+p.prompt)
	if err != nil {
		return "", fmt.Errorf("planner request failed: %w", err)
	}

	plan := strings.TrimSpace(out)
	p.persist(plan)
	return plan, nil
}

func (p *Planner) persist(plan string) {
	if p.planPath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p.planPath), 0o755); err != nil {
		return
	}
	if err := os.WriteFile(p.planPath, []byte(plan), 0o644); err != nil && p.logger != nil {
		p.logger.Warn("Failed to persist plan", "path", p.planPath, "error", err)
	}
}
