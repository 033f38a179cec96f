package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"

	"ldpcli/internal/clean"
	"ldpcli/internal/dataset"
	"ldpcli/internal/feedback"
	"ldpcli/internal/ingest"
	"ldpcli/internal/validation"
)

// Stage identifiers, in fixed execution order.
const (
	StageCirculation = "circulation"
	StageEvents      = "events"
	StageCatalogue   = "catalogue"
	StageFeedback    = "feedback"
)

// Silver output filenames, one per dataset kind.
const (
	circulationOutput = "circulation_clean.csv"
	eventsOutput      = "events_clean.csv"
	catalogueOutput   = "catalogue_clean.csv"
	feedbackOutput    = "feedback_summary.csv"
)

// presentColumns filters the configured date columns down to those the
// dataset actually has; extracts can legitimately omit optional columns.
func presentColumns(ds *dataset.Dataset, columns []string) []string {
	var present []string
	for _, c := range columns {
		if ds.HasColumn(c) {
			present = append(present, c)
		}
	}
	return present
}

// CirculationStage cleans the circulation transactions extract.
type CirculationStage struct{}

func NewCirculationStage() *CirculationStage { return &CirculationStage{} }

func (s *CirculationStage) ID() string   { return StageCirculation }
func (s *CirculationStage) Name() string { return "Circulation Data" }

func (s *CirculationStage) Run(ctx context.Context, env *Env) (*dataset.Dataset, error) {
	cfg := env.Config.Pipeline.Circulation
	path := filepath.Join(env.Config.Paths.BronzeDir, cfg.File)

	ds, err := ingest.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "raw", ds.Summarize())

	cleaned, err := clean.RemoveDuplicates(ds, cfg.DuplicateKey)
	if err != nil {
		return nil, err
	}
	env.Logger.InfoContext(ctx, "removed duplicate rows",
		slog.String("stage", s.ID()),
		slog.Int("removed", ds.Len()-cleaned.Len()))

	cleaned, err = clean.HandleMissingValues(cleaned, clean.Strategy(cfg.MissingStrategy), dataset.InferValue(cfg.FillValue))
	if err != nil {
		return nil, err
	}

	if cols := presentColumns(cleaned, cfg.DateColumns); len(cols) > 0 {
		cleaned, err = clean.StandardizeDates(cleaned, cols)
		if err != nil {
			return nil, err
		}
	}

	if _, err := env.Writer.WriteDataset(circulationOutput, cleaned); err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "clean", cleaned.Summarize())
	return cleaned, nil
}

// EventsStage cleans the library events extract.
type EventsStage struct{}

func NewEventsStage() *EventsStage { return &EventsStage{} }

func (s *EventsStage) ID() string   { return StageEvents }
func (s *EventsStage) Name() string { return "Events Data" }

func (s *EventsStage) Run(ctx context.Context, env *Env) (*dataset.Dataset, error) {
	cfg := env.Config.Pipeline.Events
	path := filepath.Join(env.Config.Paths.BronzeDir, cfg.File)

	ds, err := ingest.LoadJSON(path)
	if err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "raw", ds.Summarize())

	cleaned, err := clean.HandleMissingValues(ds, clean.Strategy(cfg.MissingStrategy), dataset.InferValue(cfg.FillValue))
	if err != nil {
		return nil, err
	}

	if cols := presentColumns(cleaned, cfg.DateColumns); len(cols) > 0 {
		cleaned, err = clean.StandardizeDates(cleaned, cols)
		if err != nil {
			return nil, err
		}
	}

	if _, err := env.Writer.WriteDataset(eventsOutput, cleaned); err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "clean", cleaned.Summarize())
	return cleaned, nil
}

// CatalogueStage cleans the catalogue spreadsheet and attaches ISBN
// validity.
type CatalogueStage struct{}

func NewCatalogueStage() *CatalogueStage { return &CatalogueStage{} }

func (s *CatalogueStage) ID() string   { return StageCatalogue }
func (s *CatalogueStage) Name() string { return "Catalogue Data" }

func (s *CatalogueStage) Run(ctx context.Context, env *Env) (*dataset.Dataset, error) {
	cfg := env.Config.Pipeline.Catalogue
	path := filepath.Join(env.Config.Paths.BronzeDir, cfg.File)

	ds, err := ingest.LoadExcel(path)
	if err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "raw", ds.Summarize())

	cleaned, err := clean.RemoveDuplicates(ds, cfg.DuplicateKey)
	if err != nil {
		return nil, err
	}
	env.Logger.InfoContext(ctx, "removed duplicate rows",
		slog.String("stage", s.ID()),
		slog.Int("removed", ds.Len()-cleaned.Len()))

	if cleaned.HasColumn(cfg.ISBNColumn) {
		cleaned, err = validation.AttachValidity(cleaned, cfg.ISBNColumn, cfg.ValidityColumn)
		if err != nil {
			return nil, err
		}
		invalid := 0
		for i := 0; i < cleaned.Len(); i++ {
			if v, _ := cleaned.Cell(i, cfg.ValidityColumn); v == false {
				invalid++
			}
		}
		env.Logger.InfoContext(ctx, "validated ISBNs",
			slog.String("stage", s.ID()),
			slog.Int("invalid", invalid))
	}

	if _, err := env.Writer.WriteDataset(catalogueOutput, cleaned); err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "clean", cleaned.Summarize())
	return cleaned, nil
}

// FeedbackStage extracts branch ratings from the free-text feedback log and
// persists the grouped summary. The returned dataset is the raw extracted
// pairs; the entry count and pair count may diverge and both are logged.
type FeedbackStage struct{}

func NewFeedbackStage() *FeedbackStage { return &FeedbackStage{} }

func (s *FeedbackStage) ID() string   { return StageFeedback }
func (s *FeedbackStage) Name() string { return "Feedback Data" }

func (s *FeedbackStage) Run(ctx context.Context, env *Env) (*dataset.Dataset, error) {
	cfg := env.Config.Pipeline.Feedback
	path := filepath.Join(env.Config.Paths.BronzeDir, cfg.File)

	result, err := feedback.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	env.Logger.InfoContext(ctx, "extracted feedback entries",
		slog.String("stage", s.ID()),
		slog.Int("entries_found", result.EntryCount),
		slog.Int("pairs_extracted", result.Pairs.Len()))

	if _, err := env.Writer.WriteDataset(feedbackOutput, result.Summary); err != nil {
		return nil, err
	}
	logSummary(ctx, env.Logger, s.ID(), "summary", result.Summary.Summarize())
	return result.Pairs, nil
}
