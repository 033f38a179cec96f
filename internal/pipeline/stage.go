package pipeline

import (
	"context"
	"log/slog"
	"time"

	"ldpcli/internal/config"
	"ldpcli/internal/dataset"
	"ldpcli/internal/exporter"
)

// Env carries the collaborators a stage needs: configuration, the silver
// CSV writer and the logger.
type Env struct {
	Config *config.Config
	Writer *exporter.CSVWriter
	Logger *slog.Logger
}

// Stage is a single pipeline stage: load, clean, persist, return the
// cleaned dataset.
type Stage interface {
	// ID returns the unique identifier for this stage.
	ID() string

	// Name returns the human-readable name for this stage.
	Name() string

	// Run executes the stage and returns the cleaned dataset.
	Run(ctx context.Context, env *Env) (*dataset.Dataset, error)
}

// StageStatus represents the current status of a stage.
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageState records the runtime state of a stage within one run.
type StageState struct {
	ID        string
	Name      string
	Status    StageStatus
	StartTime *time.Time
	EndTime   *time.Time
	Message   string
	Error     error
}

// NewStageState creates a pending stage state.
func NewStageState(id, name string) *StageState {
	return &StageState{
		ID:     id,
		Name:   name,
		Status: StageStatusPending,
	}
}

// Start marks the stage as active and sets the start time.
func (s *StageState) Start() {
	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the stage as completed and sets the end time.
func (s *StageState) Complete() {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
}

// Fail marks the stage as failed with the given error.
func (s *StageState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Error = err
}

// Skip marks the stage as skipped with the given reason.
func (s *StageState) Skip(reason string) {
	s.Status = StageStatusSkipped
	s.Message = reason
}

// Duration returns the duration of the stage execution.
func (s *StageState) Duration() time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// logSummary emits a dataset's shape and quality statistics.
func logSummary(ctx context.Context, logger *slog.Logger, stageID, label string, s dataset.Summary) {
	logger.InfoContext(ctx, "dataset summary",
		slog.String("stage", stageID),
		slog.String("dataset", label),
		slog.Int("rows", s.Rows),
		slog.Int("columns", s.Columns),
		slog.Int("missing_cells", s.MissingCells),
		slog.Int("duplicate_rows", s.DuplicateRows))
}
