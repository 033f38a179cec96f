// Command pipeline runs the library data-cleaning pipeline: it loads raw
// bronze-layer extracts, applies each dataset's cleaning sequence and
// writes the cleaned silver-layer CSV files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"ldpcli/internal/config"
	"ldpcli/internal/infrastructure"
	"ldpcli/internal/pipeline"
)

func main() {
	inDir := flag.String("in", "", "bronze input directory (default from config)")
	outDir := flag.String("out", "", "silver output directory (default from config)")
	configFile := flag.String("config", "", "path to YAML config file")
	stages := flag.String("stages", "", "comma-separated stage list overriding the config")
	stage := flag.String("stage", "", "run a single stage by ID, even when disabled")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *inDir != "" {
		cfg.Paths.BronzeDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.SilverDir = *outDir
	}
	if *stages != "" {
		cfg.Pipeline.EnabledStages = strings.Split(*stages, ",")
		if err := cfg.Validate(); err != nil {
			slog.Error("Invalid stage list", "error", err)
			os.Exit(1)
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	logger.Info("Starting library data pipeline",
		slog.String("bronze_dir", cfg.Paths.BronzeDir),
		slog.String("silver_dir", cfg.Paths.SilverDir),
		slog.String("enabled_stages", strings.Join(cfg.Pipeline.EnabledStages, ",")))

	runner := pipeline.NewRunner(cfg, logger)
	ctx := context.Background()

	if *stage != "" {
		ds, err := runner.RunStage(ctx, *stage)
		if err != nil {
			logger.Error("Stage failed", slog.String("stage", *stage), slog.String("error", err.Error()))
			fmt.Printf("\n[ERROR] Stage %s failed: %s\n", *stage, err)
			os.Exit(1)
		}
		fmt.Printf("Stage %s complete: %d rows\n", *stage, ds.Len())
		return
	}

	printHeader("LIBRARY DATA PIPELINE")
	fmt.Println("  Starting pipeline execution...")
	fmt.Println("  Time: " + time.Now().Format("2006-01-02 15:04:05"))

	result, err := runner.Run(ctx)
	if err != nil {
		fmt.Printf("\n[ERROR] Pipeline failed with error: %s\n", err)
		fmt.Println("  - Check your data files exist")
		fmt.Println("  - Check your configuration")
		os.Exit(1)
	}

	printHeader("PIPELINE SUMMARY")
	fmt.Println("\nPipeline completed successfully!")
	fmt.Printf("  - Duration: %.2f seconds\n", result.Duration.Seconds())
	fmt.Printf("  - Stages processed: %d\n", len(result.Results))
	fmt.Printf("  - Output directory: %s\n", cfg.Paths.SilverDir)

	fmt.Println("\nCleaned files created:")
	for _, f := range result.OutputFiles {
		fmt.Printf("  - %s\n", f.Name)
	}
}

func printHeader(title string) {
	line := strings.Repeat("=", 60)
	fmt.Println("\n" + line)
	fmt.Printf("  %s\n", title)
	fmt.Println(line)
}
