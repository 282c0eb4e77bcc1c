package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"analyst-agent/internal/application/port/output"
)

var _ output.CodeRunner = (*Runner)(nil)

const defaultMaxOutput = 1 << 20 // 1 MiB per stream

// Runner persists model-generated source to a scratch file and runs it as a
// separate process. Separate-process execution is the whole isolation
// boundary here; the host environment is inherited and no stronger sandbox
// is applied.
type Runner struct {
	interpreter string
	scriptPath  string
	maxOutput   int
	logger      output.LoggerPort
}

type Config struct {
	// Interpreter is the executable used to run the script, e.g. python3.
	Interpreter string
	// ScriptPath is the scratch location for the generated source. Not safe
	// for concurrent overlapping runs unless each run gets its own path.
	ScriptPath string
	MaxOutput  int
}

func NewRunner(cfg Config, logger output.LoggerPort) *Runner {
	if cfg.Interpreter == "" {
		cfg.Interpreter = "python3"
	}
	if cfg.MaxOutput <= 0 {
		cfg.MaxOutput = defaultMaxOutput
	}
	return &Runner{
		interpreter: cfg.Interpreter,
		scriptPath:  cfg.ScriptPath,
		maxOutput:   cfg.MaxOutput,
		logger:      logger,
	}
}

// Run executes code to completion and returns its stdout. If the process
// exits non-zero having produced no stdout, the result is a JSON error
// object carrying stderr, so the loop always has textual tool output to feed
// back. Partial stdout from a failed run is returned as-is. No time limit is
// enforced here; the loop budget and ctx are the only guards.
func (r *Runner) Run(ctx context.Context, code string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(r.scriptPath), 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	if err := os.WriteFile(r.scriptPath, []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write script: %w", err)
	}
	defer os.Remove(r.scriptPath)

	cmd := exec.CommandContext(ctx, r.interpreter, r.scriptPath)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &boundedWriter{buf: &stdout, limit: r.maxOutput}
	cmd.Stderr = &boundedWriter{buf: &stderr, limit: r.maxOutput}

	runErr := cmd.Run()

	out := stdout.String()
	if runErr != nil && strings.TrimSpace(out) == "" {
		r.logger.Warn("Script failed with no output", "error", runErr)
		payload, err := json.Marshal(map[string]string{
			"error":  "code_failed",
			"stderr": stderr.String(),
		})
		if err != nil {
			return "", fmt.Errorf("encode failure payload: %w", err)
		}
		return string(payload), nil
	}

	return out, nil
}

// boundedWriter keeps the first limit bytes and silently drops the rest,
// preventing unbounded memory growth from chatty scripts.
type boundedWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *boundedWriter) Write(p []byte) (int, error) {
	if remaining := w.limit - w.buf.Len(); remaining > 0 {
		if len(p) > remaining {
			w.buf.Write(p[:remaining])
		} else {
			w.buf.Write(p)
		}
	}
	return len(p), nil
}
