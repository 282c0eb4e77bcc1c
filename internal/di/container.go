package di

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"analyst-agent/internal/adapter/tool"
	"analyst-agent/internal/application/port/input"
	"analyst-agent/internal/application/port/output"
	"analyst-agent/internal/application/service"
	"analyst-agent/internal/infrastructure/browser/rod"
	"analyst-agent/internal/infrastructure/htmldoc"
	"analyst-agent/internal/infrastructure/llm/gemini"
	"analyst-agent/internal/infrastructure/llm/openaiapi"
	"analyst-agent/internal/infrastructure/logger"
	"analyst-agent/internal/infrastructure/prompts"
	"analyst-agent/internal/infrastructure/sandbox"
	"analyst-agent/internal/usecase/executor"
	"analyst-agent/internal/usecase/pipeline"

	"github.com/google/uuid"
)

type Config struct {
	ExecutorToken   string
	ExecutorModel   string
	ExecutorBaseURL string
	PlannerAPIKey   string
	PlannerModel    string

	OutputsDir string
	PromptsDir string
	PythonBin  string

	LoopBudget      time.Duration
	PipelineTimeout time.Duration
	NavTimeout      time.Duration
	BrowserHeadless bool
	MaxIterations   int
}

// Container holds the long-lived pieces: one browser, one chat client, one
// planner client, one logger. Per-run state (scratch files, tool registry,
// loop) is built by NewRun.
type Container struct {
	Fetcher   output.PageFetcher
	Extractor output.Extractor
	LLM       output.LLMPort
	Planner   output.PlannerPort
	Logger    output.LoggerPort

	cfg Config
}

// Run is one isolated task execution: its own scratch directory, its own
// tool registry, its own conversation.
type Run struct {
	Pipeline input.AnalysisPipeline
	Executor input.TaskExecutor
	Dir      string
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if cfg.ExecutorToken == "" {
		return nil, fmt.Errorf("missing executor token")
	}

	log, err := logger.NewLoggerAdapter()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	if cfg.NavTimeout > 0 {
		browserCfg.NavTimeout = cfg.NavTimeout
	}
	fetcher, err := rod.NewFetcherAdapter(ctx, browserCfg)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	llmCfg := openaiapi.DefaultConfig(cfg.ExecutorToken, cfg.ExecutorModel)
	if cfg.ExecutorBaseURL != "" {
		llmCfg.BaseURL = cfg.ExecutorBaseURL
	}
	llmCfg.DebugPath = filepath.Join(cfg.OutputsDir, "gpt_response.json")
	llmCfg.Logger = log
	llm := openaiapi.NewChatAdapter(llmCfg)

	planner, err := gemini.NewPlanner(ctx, gemini.Config{
		APIKey:   cfg.PlannerAPIKey,
		Model:    cfg.PlannerModel,
		Prompt:   prompts.LoadPlannerPrompt(cfg.PromptsDir),
		PlanPath: filepath.Join(cfg.OutputsDir, "plan.txt"),
		Logger:   log,
	})
	if err != nil {
		fetcher.Close()
		log.Close()
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}

	return &Container{
		Fetcher:   fetcher,
		Extractor: htmldoc.NewExtractor(),
		LLM:       llm,
		Planner:   planner,
		Logger:    log,
		cfg:       cfg,
	}, nil
}

// NewRun allocates a unique scratch directory so concurrent runs never share
// scratch files.
func (c *Container) NewRun() *Run {
	runDir := filepath.Join(c.cfg.OutputsDir, "runs", uuid.NewString())

	runner := sandbox.NewRunner(sandbox.Config{
		Interpreter: c.cfg.PythonBin,
		ScriptPath:  filepath.Join(runDir, "temp_script.py"),
	}, c.Logger)

	registry := service.NewToolRegistry()
	registry.Register(tool.NewScrapeTool(c.Fetcher, c.Logger, filepath.Join(runDir, "scraped_content.html")))
	registry.Register(tool.NewExtractTool(c.Extractor, c.Logger))
	registry.Register(tool.NewAnswerTool(runner, c.Logger))

	exec := executor.New(c.LLM, registry, c.Logger, prompts.DefaultSystemPrompt, executor.Options{
		Budget:        c.cfg.LoopBudget,
		MaxIterations: c.cfg.MaxIterations,
	})

	return &Run{
		Pipeline: pipeline.New(c.Planner, exec, c.Logger, c.cfg.PipelineTimeout),
		Executor: exec,
		Dir:      runDir,
	}
}

func (c *Container) Close() {
	if c.Fetcher != nil {
		c.Fetcher.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
