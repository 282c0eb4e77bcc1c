package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"analyst-agent/internal/adapter/httpapi"
	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/di"
	"analyst-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	ctx := context.Background()

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

	server := httpapi.NewServer(
		func() input.AnalysisPipeline { return container.NewRun().Pipeline },
		container.Logger,
		httpapi.Health{
			HasPlannerKey:    envService.Get("GEMINI_API_KEY") != "",
			HasExecutorToken: envService.Get("AIPIPE_TOKEN") != "",
		},
	)

	addr := ":" + envService.GetWithDefault("PORT", "8000")
	container.Logger.Info("Server listening", "addr", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
