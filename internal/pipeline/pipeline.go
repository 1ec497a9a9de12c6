// Package pipeline orchestrates one enrichment run: read the project list,
// fetch each project's page, build its card, and write the enriched document.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"projectmeta/internal/card"
	"projectmeta/internal/config"
	"projectmeta/internal/fetch"
	"projectmeta/internal/htmlmeta"
	"projectmeta/internal/metrics"
	"projectmeta/internal/projects"
)

// generatedAtLayout is ISO-8601 at second precision with an explicit Z.
const generatedAtLayout = "2006-01-02T15:04:05Z"

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	NewID() (string, error)
}

// Document is the serialized output of one enrichment run.
type Document struct {
	GeneratedAt string             `json:"generated_at"`
	Projects    []*projects.Record `json:"projects"`
}

// Pipeline enriches project records one at a time, in input order. Fetch
// failures are scoped to their record; only a missing input file aborts
// the run.
type Pipeline struct {
	cfg     config.Config
	fetcher fetch.Fetcher
	sink    Sink
	clock   Clock
	ids     IDGenerator
	logger  *zap.Logger
}

// New constructs a Pipeline from its collaborators.
func New(cfg config.Config, fetcher fetch.Fetcher, sink Sink, clock Clock, ids IDGenerator, logger *zap.Logger) *Pipeline {
	metrics.Init()
	return &Pipeline{
		cfg:     cfg,
		fetcher: fetcher,
		sink:    sink,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Run executes the batch. The returned error wraps fs.ErrNotExist when the
// input file is absent; per-record fetch failures never surface here.
func (p *Pipeline) Run(ctx context.Context) error {
	text, err := os.ReadFile(p.cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("read input %s: %w", p.cfg.Input.Path, err)
	}

	runID, err := p.ids.NewID()
	if err != nil {
		p.logger.Warn("Failed to generate run ID", zap.Error(err))
	}

	records := projects.Parse(string(text))
	enriched := make([]*projects.Record, 0, len(records))
	fetched, failed := 0, 0

	for _, rec := range records {
		out, outcome := p.enrich(ctx, rec)
		switch outcome {
		case outcomeFetched:
			fetched++
		case outcomeFailed:
			failed++
		}
		enriched = append(enriched, out)
	}

	doc := Document{
		GeneratedAt: p.clock.Now().Truncate(time.Second).Format(generatedAtLayout),
		Projects:    enriched,
	}
	if err := p.sink.WriteDocument(ctx, doc); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	p.logger.Info("Enrichment run complete",
		zap.String("run_id", runID),
		zap.Int("records", len(records)),
		zap.Int("fetched", fetched),
		zap.Int("failed", failed),
		zap.String("output", p.cfg.Output.Path),
	)
	return nil
}

// Per-record outcomes, also used as the records_total metric label.
const (
	outcomeFetched = "fetched"
	outcomeFailed  = "failed"
	outcomeSkipped = "skipped"
)

// enrich computes one output record and reports its outcome: fetched,
// failed, or skipped (no URL, no network call).
func (p *Pipeline) enrich(ctx context.Context, rec *projects.Record) (*projects.Record, string) {
	rawURL := strings.TrimSpace(rec.GetString("url"))
	titleFallback := strings.TrimSpace(rec.GetString("name"))
	descFallback := strings.TrimSpace(rec.GetString("description"))

	c := card.Fallback(titleFallback, descFallback)
	outcome := outcomeSkipped

	if rawURL != "" {
		start := p.clock.Now()
		page, err := p.fetcher.Fetch(ctx, rawURL)
		duration := p.clock.Now().Sub(start)

		if err != nil {
			c.Error = fmt.Sprintf("fetch_failed: %v", err)
			outcome = outcomeFailed
			metrics.ObserveFetch(rawURL, "error", 0, duration)
			p.logger.Warn("Fetch failed",
				zap.String("url", rawURL),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
		} else {
			html := fetch.DecodeHTML(page.Body, page.Headers.Get("Content-Type"))
			tags, rawTitle := htmlmeta.Extract(html)
			title := strings.TrimSpace(rawTitle)
			if title == "" {
				title = titleFallback
			}
			c = card.Build(rawURL, tags, title, descFallback)
			outcome = outcomeFetched
			metrics.ObserveFetch(rawURL, "success", len(page.Body), duration)
			p.logger.Info("Fetched page",
				zap.String("url", rawURL),
				zap.Int("status_code", page.StatusCode),
				zap.Int("bytes", len(page.Body)),
				zap.Duration("duration", duration),
			)
		}
	}

	metrics.ObserveRecord(outcome)
	out := rec.Clone()
	out.Set("card", c)
	return out, outcome
}
