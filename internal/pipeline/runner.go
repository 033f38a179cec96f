package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ldpcli/internal/config"
	"ldpcli/internal/dataset"
	"ldpcli/internal/exporter"
	"ldpcli/internal/files"
	"ldpcli/internal/infrastructure"
)

// Runner executes the pipeline stages strictly sequentially. The stage
// order is fixed; the configuration selects which stages run.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	writer *exporter.CSVWriter
	stages []Stage
}

// NewRunner builds a runner from the configuration. The silver directory
// comes from the config, not from process-wide state.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		logger: logger,
		writer: exporter.NewCSVWriter(cfg.Paths.SilverDir),
		stages: []Stage{
			NewCirculationStage(),
			NewEventsStage(),
			NewCatalogueStage(),
			NewFeedbackStage(),
		},
	}
}

// RunResult aggregates the outcome of one pipeline run.
type RunResult struct {
	RunID       string
	Duration    time.Duration
	Results     map[string]*dataset.Dataset
	States      []*StageState
	OutputFiles []files.FileInfo
}

// Run executes every enabled stage in order. The first stage failure stops
// the run; the stage's error propagates unmodified. Output listing covers
// whatever the silver directory holds when the run ends.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)

	result := &RunResult{
		RunID:   runID,
		Results: make(map[string]*dataset.Dataset),
	}
	start := time.Now()

	enabled := make(map[string]bool, len(r.cfg.Pipeline.EnabledStages))
	for _, id := range r.cfg.Pipeline.EnabledStages {
		enabled[id] = true
	}

	r.logger.InfoContext(ctx, "pipeline run started",
		slog.Int("enabled_stages", len(enabled)),
		slog.String("silver_dir", r.cfg.Paths.SilverDir))

	env := &Env{Config: r.cfg, Writer: r.writer, Logger: r.logger}

	// Register every stage's state up front so a failed run still reports
	// the stages it never reached.
	states := make(map[string]*StageState, len(r.stages))
	for _, stage := range r.stages {
		state := NewStageState(stage.ID(), stage.Name())
		if !enabled[stage.ID()] {
			state.Skip("stage disabled")
		}
		states[stage.ID()] = state
		result.States = append(result.States, state)
	}

	for _, stage := range r.stages {
		state := states[stage.ID()]
		if state.Status == StageStatusSkipped {
			continue
		}

		state.Start()
		r.logger.InfoContext(ctx, "stage started",
			slog.String("stage", stage.ID()),
			slog.String("name", stage.Name()))

		ds, err := stage.Run(ctx, env)
		if err != nil {
			state.Fail(err)
			result.Duration = time.Since(start)
			r.logger.ErrorContext(ctx, "pipeline failed",
				slog.String("stage", stage.ID()),
				slog.String("error", err.Error()))
			return result, err
		}

		state.Complete()
		result.Results[stage.ID()] = ds
		r.logger.InfoContext(ctx, "stage completed",
			slog.String("stage", stage.ID()),
			slog.Duration("duration", state.Duration()),
			slog.Int("rows", ds.Len()))
	}

	result.Duration = time.Since(start)

	outputs, err := files.NewDiscovery(r.cfg.Paths.SilverDir).FindCSVFiles(".")
	if err == nil {
		result.OutputFiles = outputs
	}

	r.logger.InfoContext(ctx, "pipeline run completed",
		slog.Duration("duration", result.Duration),
		slog.Int("stages_processed", len(result.Results)),
		slog.Int("output_files", len(result.OutputFiles)))

	return result, nil
}

// RunStage executes a single stage by ID regardless of the enabled list.
// Disabled stages stay individually invocable this way.
func (r *Runner) RunStage(ctx context.Context, stageID string) (*dataset.Dataset, error) {
	stage := r.findStage(stageID)
	if stage == nil {
		return nil, fmt.Errorf("unknown stage: %s", stageID)
	}

	ctx = infrastructure.WithRunID(ctx, uuid.NewString())
	env := &Env{Config: r.cfg, Writer: r.writer, Logger: r.logger}
	return stage.Run(ctx, env)
}

// Stages returns the stage IDs in execution order.
func (r *Runner) Stages() []string {
	ids := make([]string, len(r.stages))
	for i, stage := range r.stages {
		ids[i] = stage.ID()
	}
	return ids
}

func (r *Runner) findStage(id string) Stage {
	for _, stage := range r.stages {
		if stage.ID() == id {
			return stage
		}
	}
	return nil
}
