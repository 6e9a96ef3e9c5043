package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fairscore/crednorm/internal/cache"
	"github.com/fairscore/crednorm/internal/decode"
	"github.com/fairscore/crednorm/internal/model"
	"github.com/fairscore/crednorm/internal/normalize"
)

// Pipeline orchestrates the complete normalization process for one input
// file: decode, cache lookup, engine run, cache store.
type Pipeline struct {
	registry *decode.Registry
	cache    cache.Cache
	renderer *Renderer
	logger   *zap.Logger
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		registry: decode.NewRegistry(),
		cache:    c,
		renderer: NewRenderer(cfg.Output.Pretty),
		logger:   logger,
		config:   cfg,
	}
}

// FileResult is the outcome of normalizing one input file.
type FileResult struct {
	Path   string
	Result *model.Result
	Cached bool
}

// NormalizeFile normalizes a single report file.
func (p *Pipeline) NormalizeFile(ctx context.Context, path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.NormalizeData(ctx, path, data)
}

// NormalizeData normalizes raw input bytes. The name is used for decoder
// selection and logging only.
func (p *Pipeline) NormalizeData(ctx context.Context, name string, data []byte) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cache.Key(data)
	if p.cache != nil {
		if stored, found := p.cache.Get(key); found {
			var result model.Result
			if err := json.Unmarshal(stored, &result); err == nil {
				p.logger.Debug("cache hit", zap.String("input", name))
				return &FileResult{Path: name, Result: &result, Cached: true}, nil
			}
			// Unreadable entry, fall through and overwrite it.
			p.cache.Delete(key)
		}
	}

	decoder := p.registry.FindDecoder(name, data)
	doc, err := decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}

	p.logger.Debug("normalizing",
		zap.String("input", name),
		zap.String("decoder", decoder.Name()),
		zap.String("adapter", doc.Metadata.AdapterID),
		zap.Int("sections", len(doc.Sections)))

	result := normalize.Run(&doc.RawObservationSet, p.config.Run, doc.Page, time.Now().UTC())

	if p.cache != nil && result.Success {
		if stored, err := json.Marshal(result); err == nil {
			if err := p.cache.Set(key, stored, p.config.Cache.TTL); err != nil {
				p.logger.Warn("cache store failed", zap.String("input", name), zap.Error(err))
			}
		}
	}

	return &FileResult{Path: name, Result: result, Cached: false}, nil
}

// RenderResult renders the result to the specified outputs
func (p *Pipeline) RenderResult(res *FileResult, jsonPath string, mdPath string) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(res.Result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if p.config.Output.Verbose && jsonPath != "-" {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(res.Result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if p.config.Output.Verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	if p.config.Output.IncludeSummary {
		p.renderer.RenderSummary(res)
	}

	return nil
}
