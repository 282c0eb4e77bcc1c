package output

import "context"

// PlannerPort is the single stateless planning exchange: task text in,
// step-by-step plan text out.
type PlannerPort interface {
	Plan(ctx context.Context, task string) (string, error)
}
