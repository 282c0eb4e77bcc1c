package output

import "context"

// CodeRunner executes model-generated source in a separate process and
// returns its standard output. A failed run with no stdout comes back as a
// JSON error object, so the loop always has textual tool output to append.
type CodeRunner interface {
	Run(ctx context.Context, code string) (string, error)
}
