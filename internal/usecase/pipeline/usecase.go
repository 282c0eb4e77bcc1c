package pipeline

import (
	"context"
	"fmt"
	"time"

	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/application/port/output"
)

var _ input.AnalysisPipeline = (*UseCase)(nil)

const defaultTimeout = 170 * time.Second

// UseCase glues the planning call to the tool loop: plan, then execute under
// an outer deadline larger than the loop's own budget.
type UseCase struct {
	planner  output.PlannerPort
	executor input.TaskExecutor
	logger   output.LoggerPort
	timeout  time.Duration
}

func New(planner output.PlannerPort, executor input.TaskExecutor, logger output.LoggerPort, timeout time.Duration) *UseCase {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &UseCase{
		planner:  planner,
		executor: executor,
		logger:   logger,
		timeout:  timeout,
	}
}

func (uc *UseCase) Run(ctx context.Context, task string) ([]any, error) {
	plan, err := uc.planner.Plan(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("planning failed: %w", err)
	}
	uc.logger.Info("Plan generated", "planLen", len(plan))

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	result, err := uc.executor.Execute(ctx, task, plan)
	if err != nil {
		return nil, err
	}
	return result.Answer, nil
}
