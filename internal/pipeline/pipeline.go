package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw observation messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns a raw observation into a serialized assessment.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes serialized assessments to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Pipeline runs the consume-assess-publish loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
	backoff     time.Duration
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		backoff:     initialBackoff,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one
// assessment.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not published any assessments yet")
	}
	return nil
}

// Run processes batches until the context is cancelled. It returns nil on
// cancellation. Extract failures are retried with backoff; a failed load is
// retried on the same batch, so offsets only advance past published
// assessments.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for ctx.Err() == nil {
		if !p.processBatch(ctx) {
			break
		}
	}
	p.logger.Info("pipeline stopping", "reason", context.Cause(ctx))
	return nil
}

// processBatch runs one consume-assess-publish cycle. It returns false when
// the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.retryAfterBackoff(ctx)
	}
	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	p.backoff = initialBackoff

	outBatch, assessed := p.assessBatch(ctx, rawBatch)
	if len(outBatch) == 0 {
		return true
	}

	if !p.loadWithRetry(ctx, outBatch) {
		return false
	}
	p.metrics.MessagesProduced.Add(float64(len(outBatch)))

	for _, raw := range assessed {
		p.commitOffset(ctx, raw)
	}

	p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	return true
}

// loadWithRetry publishes outBatch, retrying the same events with backoff
// until the load succeeds. No later batch is extracted while one is pending.
// It returns false if the context ends first.
func (p *Pipeline) loadWithRetry(ctx context.Context, outBatch []domain.OutputEvent) bool {
	for {
		err := p.loader.LoadBatch(ctx, outBatch)
		if err == nil {
			p.backoff = initialBackoff
			return true
		}
		p.logger.Error("load batch failed, retrying", "error", err, "batch_size", len(outBatch))
		if !p.retryAfterBackoff(ctx) {
			return false
		}
	}
}

// assessBatch transforms each message. Rejected messages are logged and
// committed immediately so a poison record never blocks its partition; the
// returned raws are the ones still awaiting commit.
func (p *Pipeline) assessBatch(ctx context.Context, rawBatch []domain.RawEvent) ([]domain.OutputEvent, []domain.RawEvent) {
	outBatch := make([]domain.OutputEvent, 0, len(rawBatch))
	assessed := make([]domain.RawEvent, 0, len(rawBatch))

	for _, raw := range rawBatch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("observation rejected, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commitOffset(ctx, raw)
			continue
		}
		outBatch = append(outBatch, out)
		assessed = append(assessed, raw)
	}
	return outBatch, assessed
}

// retryAfterBackoff sleeps for the current backoff and doubles it up to
// maxBackoff. It returns false if the context ends first.
func (p *Pipeline) retryAfterBackoff(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	timer := time.NewTimer(p.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
	}
	p.backoff = min(p.backoff*2, maxBackoff)
	return true
}

func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
