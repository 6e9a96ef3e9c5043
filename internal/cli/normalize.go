package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fairscore/crednorm/internal/model"
	"github.com/fairscore/crednorm/internal/pipeline"
)

var (
	outJSON    string
	outMD      string
	timeout    time.Duration
	subjectID  string
	currency   string
	cacheDir   string
	noCache    bool
	noSummary  bool
	compactOut bool
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a single raw report file into a canonical credit file",
	Long: `Normalize reads one adapter output file (JSON or YAML) and:
- Canonicalizes raw field values (account types, statuses, dates, amounts)
- Deduplicates addresses and organisations across source systems
- Reconstructs payment history grids from PDF token streams
- Assembles a schema-valid credit file with stable identifiers
- Validates structure and referential integrity

Example:
  crednorm normalize report.json
  crednorm normalize report.json --json out.json --md out.md
  crednorm normalize report.yaml --subject subject:1 --currency GBP`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	// Output flags
	normalizeCmd.Flags().StringVar(&outJSON, "json", "-", "output JSON path, - for stdout")
	normalizeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	normalizeCmd.Flags().BoolVar(&noSummary, "no-summary", false, "suppress terminal summary")
	normalizeCmd.Flags().BoolVar(&compactOut, "compact", false, "write compact JSON instead of indented")

	// Run flags
	normalizeCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "overall run timeout")
	normalizeCmd.Flags().StringVar(&subjectID, "subject", "subject:1", "subject identifier assigned to the report owner")
	normalizeCmd.Flags().StringVar(&currency, "currency", "GBP", "ISO currency code for monetary amounts")

	// Cache flags
	normalizeCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "directory for the persistent result cache (default: $HOME/.crednorm/cache)")
	normalizeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result cache (force a fresh run)")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Normalizing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg := buildRunConfig()

	logger := buildLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.NewPipeline(cfg, logger)

	res, err := p.NormalizeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("normalize failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Tradelines: %d\n", res.Result.Summary.Tradelines)
		fmt.Fprintf(os.Stderr, "✓ Searches: %d\n", res.Result.Summary.Searches)
		fmt.Fprintf(os.Stderr, "✓ Warnings: %d\n", res.Result.Summary.Warnings)
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderResult(res, outJSON, outMD); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if !res.Result.Success {
		return fmt.Errorf("normalization produced %d validation errors", len(res.Result.Errors))
	}

	return nil
}

// buildRunConfig assembles the effective configuration from defaults
// and flags.
func buildRunConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Run.DefaultSubjectID = subjectID
	cfg.Run.CurrencyCode = currency
	cfg.Cache.Enabled = !noCache
	cfg.Cache.Dir = resolveCacheDir(cacheDir)
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeSummary = !noSummary
	cfg.Output.Pretty = !compactOut
	return cfg
}

// resolveCacheDir defaults the persistent cache under the user's home
// directory; an empty result keeps the cache memory-only.
func resolveCacheDir(flag string) string {
	if flag != "" {
		return flag
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.crednorm/cache"
}
