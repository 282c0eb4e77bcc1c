package input

import "context"

type ExecuteResult struct {
	Answer     []any
	Iterations int
}

// TaskExecutor drives the tool-calling loop for one task and returns the
// validated final JSON array.
type TaskExecutor interface {
	Execute(ctx context.Context, task, plan string) (*ExecuteResult, error)
}

// AnalysisPipeline is the full plan-then-execute flow.
type AnalysisPipeline interface {
	Run(ctx context.Context, task string) ([]any, error)
}
