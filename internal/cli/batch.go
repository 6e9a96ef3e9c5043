package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairscore/crednorm/internal/pipeline"
	"github.com/fairscore/crednorm/internal/worker"
)

var (
	concurrency  int
	fileRate     float64
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Normalize multiple report files from a list in parallel",
	Long: `Batch processes multiple report files concurrently:
- Read input paths from a list file (one per line)
- Normalize files in parallel with configurable worker count
- Write one credit file JSON per input
- Print a per-file and overall summary

Example:
  crednorm batch reports.txt
  crednorm batch reports.txt --concurrency 10 --output-dir ./normalized
  crednorm batch reports.txt --rate 20 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().Float64Var(&fileRate, "rate", 0, "max files read per second per directory (0 = unlimited)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./crednorm-output", "output directory for credit files")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Shared run and cache flags
	batchCmd.Flags().StringVar(&subjectID, "subject", "subject:1", "subject identifier assigned to each report owner")
	batchCmd.Flags().StringVar(&currency, "currency", "GBP", "ISO currency code for monetary amounts")
	batchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent result cache (default: $HOME/.crednorm/cache)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force fresh runs)")
	batchCmd.Flags().BoolVar(&compactOut, "compact", false, "write compact JSON instead of indented")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Crednorm Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input list:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	cfg := buildRunConfig()
	cfg.Concurrency.Workers = concurrency
	cfg.Concurrency.Rate = fileRate
	cfg.Output.IncludeSummary = false

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.NewPipeline(cfg, logger)
	processor := worker.NewBatchProcessor(p, concurrency, fileRate, logger)

	fmt.Fprintf(os.Stderr, "⚙️  Reading input paths...\n")
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		if !result.File.Result.Success {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %d validation errors\n", result.Path, len(result.File.Result.Errors))
			continue
		}

		successCount++

		jsonPath := filepath.Join(outputDir, outputName(result.Path))
		renderer := pipeline.NewRenderer(cfg.Output.Pretty)
		if err := renderer.RenderJSON(result.File.Result, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (tradelines: %d, warnings: %d)\n",
			result.Path, result.File.Result.Summary.Tradelines, result.File.Result.Summary.Warnings)
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d files\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d files failed", failureCount, len(results))
	}
	return nil
}

// outputName derives the output filename for an input path, keeping the
// base name and swapping the extension for .creditfile.json.
func outputName(inputPath string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		base = "report"
	}
	return base + ".creditfile.json"
}
