// Command roomcraftd is the CLI entrypoint for local/offline layout runs:
// a config-driven generator with
// flag-selected export formats, used for development and for driving the
// pipeline outside of the message-bus adapter (the bus is
// the production entrypoint; this is the offline one).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caspian-labs/roomcraft/pkg/adapter"
	"github.com/caspian-labs/roomcraft/pkg/export"
	"github.com/caspian-labs/roomcraft/pkg/layout"
	"github.com/caspian-labs/roomcraft/pkg/validator"
)

const version = "1.0.0"

var (
	configPath = flag.String("config", "", "Path to YAML pipeline configuration file")
	jobPath    = flag.String("job", "", "Path to a JSON layout job record (required)")
	outputDir  = flag.String("output", ".", "Output directory for generated files")
	format     = flag.String("format", "json", "Export format: json, svg, or all")
	seedFlag   = flag.Uint64("seed", 0, "Override the seed from config (0 = use config seed)")
	verbose    = flag.Bool("verbose", false, "Enable verbose output")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("roomcraftd version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}
	if *jobPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -job flag is required")
		printUsage()
		os.Exit(1)
	}

	validFormats := map[string]bool{"json": true, "svg": true, "all": true}
	if !validFormats[*format] {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q, must be one of: json, svg, all\n", *format)
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg := layout.DefaultConfig()
	if *configPath != "" {
		loaded, err := layout.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	jobData, err := os.ReadFile(*jobPath)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	var rec adapter.LayoutJobRecord
	if err := json.Unmarshal(jobData, &rec); err != nil {
		return fmt.Errorf("failed to parse job: %w", err)
	}

	if *verbose {
		fmt.Printf("Running job %s against room %s with %d catalog items (seed=%d)\n",
			rec.ID, rec.RoomID, len(rec.Catalog), cfg.Seed)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	start := time.Now()
	result := adapter.HandleLayoutJob(ctx, rec, cfg)
	elapsed := time.Since(start)

	if result.Status == adapter.StatusFailed {
		return fmt.Errorf("job failed: %s", result.Error)
	}

	if *verbose {
		fmt.Printf("Generated %d layout variant(s) in %v\n", len(result.Layouts), elapsed)
		for _, l := range result.Layouts {
			fmt.Printf("  %s: score=%.3f furniture=%d cost=$%.2f\n",
				l.Strategy, l.Score, l.Metrics.FurnitureCount, float64(l.Metrics.TotalCostCents)/100)
		}
	}

	cons := rec.Constraints.ToConstraints()
	for i, l := range result.Layouts {
		baseName := fmt.Sprintf("layout_%s_%d", rec.ID, i)

		var report *validator.Report
		if rep, err := validator.Validate(ctx, rec.FloorPlan, l.Placements, cons); err == nil {
			report = rep
		} else if *verbose {
			fmt.Printf("  warning: validation failed for %s: %v\n", baseName, err)
		}

		if *format == "json" || *format == "all" {
			bundle := export.Bundle{Layout: l, Report: report}
			jsonPath := filepath.Join(*outputDir, baseName+".json")
			if err := export.SaveJSONToFile(bundle, jsonPath); err != nil {
				return fmt.Errorf("failed to export JSON for %s: %w", baseName, err)
			}
		}
		if *format == "svg" || *format == "all" {
			var heatmap *validator.Heatmap
			if report != nil {
				heatmap = &report.Heatmap
			}
			opts := export.DefaultSVGOptions()
			opts.Title = fmt.Sprintf("%s (%s)", rec.ID, l.Strategy)
			svgPath := filepath.Join(*outputDir, baseName+".svg")
			if err := export.SaveSVGToFile(rec.FloorPlan, l, heatmap, svgPath, opts); err != nil {
				return fmt.Errorf("failed to export SVG for %s: %w", baseName, err)
			}
		}
	}

	fmt.Printf("Successfully ran job %s (%d layouts) in %v\n", rec.ID, len(result.Layouts), elapsed)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: roomcraftd -job <path> [-config <path>] [-output <dir>] [-format json|svg|all]")
}

func printHelp() {
	fmt.Println("roomcraftd - local/offline spatial layout generator")
	fmt.Println()
	printUsage()
	fmt.Println()
	flag.PrintDefaults()
}
