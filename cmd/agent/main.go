package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"analyst-agent/internal/di"
	"analyst-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	task, err := readTask()
	if err != nil {
		log.Fatalf("Failed to read task: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, di.Config{
		ExecutorToken:   envService.MustGet("AIPIPE_TOKEN"),
		ExecutorModel:   envService.GetWithDefault("EXECUTOR_MODEL", "gpt-4o-mini"),
		ExecutorBaseURL: envService.Get("EXECUTOR_BASE_URL"),
		PlannerAPIKey:   envService.MustGet("GEMINI_API_KEY"),
		PlannerModel:    envService.GetWithDefault("GEMINI_MODEL", "gemini-2.0-flash-lite"),
		OutputsDir:      envService.GetWithDefault("OUTPUTS_DIR", "outputs"),
		PromptsDir:      envService.GetWithDefault("PROMPTS_DIR", "prompts"),
		PythonBin:       envService.GetWithDefault("PYTHON_BIN", "python3"),
		LoopBudget:      envService.GetSeconds("TOOL_LOOP_BUDGET", 110*time.Second),
		PipelineTimeout: envService.GetSeconds("EXECUTOR_TIMEOUT", 170*time.Second),
		BrowserHeadless: envService.GetBool("BROWSER_HEADLESS", true),
	})
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task)

	run := container.NewRun()
	answer, err := run.Pipeline.Run(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err)
		fmt.Fprintf(os.Stderr, "Execution failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.Marshal(answer)
	if err != nil {
		log.Fatalf("Failed to encode answer: %v", err)
	}
	fmt.Println(string(out))
}

// readTask takes the question from a file argument, a literal argument, or
// stdin, in that order of preference.
func readTask() (string, error) {
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if data, err := os.ReadFile(arg); err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		return strings.TrimSpace(arg), nil
	}

	fmt.Println("Enter the task for the agent:")
	reader := bufio.NewReader(os.Stdin)
	task, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(task), nil
}
