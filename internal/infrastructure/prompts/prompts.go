package prompts

import (
	"os"
	"path/filepath"
)

// DefaultSystemPrompt seeds the tool loop. The contract with the model: use
// the tools, then return only the final JSON array.
const DefaultSystemPrompt = `You are an execution agent. Use tools to: (1) fetch the target page, ` +
	`(2) extract the necessary data, (3) when ready, generate complete Python code and call ` +
	`'answer_questions' with it. The code MUST print ONLY the final JSON array required by the task, ` +
	`e.g., [1, "Titanic", 0.485782, "data:image/png;base64,..."]. ` +
	`Do not include explanations in the final assistant message - return only the JSON array.`

// DefaultPlannerPrompt is the fallback task-breakdown instruction when no
// prompt file is present.
const DefaultPlannerPrompt = `Break the user question into do-able steps: URLs to fetch, ` +
	`selectors/tables to extract, computations/plots to perform, and the exact output shape ` +
	`(JSON array with base64 image if asked).`

// LoadPlannerPrompt prefers an on-disk override under dir, falling back to
// the built-in default.
func LoadPlannerPrompt(dir string) string {
	for _, name := range []string{"task_breakdown.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil && len(data) > 0 {
			return string(data)
		}
	}
	return DefaultPlannerPrompt
}
