package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairscore/crednorm/internal/pipeline"
)

// Normalizer defines the interface for normalizing one input file
type Normalizer interface {
	NormalizeFile(ctx context.Context, path string) (*pipeline.FileResult, error)
}

// NormalizeJob represents a single-file normalization job
type NormalizeJob struct {
	Path       string
	Normalizer Normalizer
	Limiter    *Limiter
}

// Execute executes the normalization job
func (j *NormalizeJob) Execute(ctx context.Context) *NormalizeResult {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Path); err != nil {
			return &NormalizeResult{Path: j.Path, Error: err}
		}
	}

	file, err := j.Normalizer.NormalizeFile(ctx, j.Path)
	if err != nil {
		return &NormalizeResult{Path: j.Path, Error: err}
	}
	return &NormalizeResult{Path: j.Path, File: file}
}

// NormalizeResult represents the result of a normalization job
type NormalizeResult struct {
	Path  string
	File  *pipeline.FileResult
	Error error
}

// BatchProcessor normalizes multiple report files concurrently
type BatchProcessor struct {
	normalizer  Normalizer
	concurrency int
	limiter     *Limiter
	logger      *zap.Logger
}

// NewBatchProcessor creates a new batch processor. A rate of 0 disables
// read pacing.
func NewBatchProcessor(normalizer Normalizer, concurrency int, filesPerSecond float64, logger *zap.Logger) *BatchProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *Limiter
	if filesPerSecond > 0 {
		limiter = NewLimiter(filesPerSecond, 0)
	}

	return &BatchProcessor{
		normalizer:  normalizer,
		concurrency: concurrency,
		limiter:     limiter,
		logger:      logger,
	}
}

// ProcessPaths normalizes the given files concurrently. Result order
// follows completion, not submission.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*NormalizeResult {
	if len(paths) == 0 {
		return []*NormalizeResult{}
	}

	runID := uuid.NewString()
	b.logger.Info("batch started",
		zap.String("run_id", runID),
		zap.Int("files", len(paths)),
		zap.Int("workers", b.concurrency))

	pool := NewPool[*NormalizeResult](b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&NormalizeJob{
			Path:       path,
			Normalizer: b.normalizer,
			Limiter:    b.limiter,
		})
	}

	results := pool.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
			b.logger.Warn("normalization failed",
				zap.String("run_id", runID),
				zap.String("path", r.Path),
				zap.Error(r.Error))
		}
	}
	b.logger.Info("batch finished",
		zap.String("run_id", runID),
		zap.Int("ok", len(results)-failed),
		zap.Int("failed", failed))

	return results
}

// ProcessFile reads input paths from a list file and normalizes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*NormalizeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read paths: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads input paths from a file (one per line)
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
