package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

// Rejection reasons reported on rejected_inputs_total.
const (
	reasonInvalidCoordinate = "invalid_coordinate"
	reasonInvalidCategory   = "invalid_category"
	reasonUnknownHazard     = "unknown_hazard"
	reasonMalformed         = "malformed"
)

// AssessmentTransformer scores observations with the risk engine, enriching
// them with geocoded place details when a geocoder is configured. It
// implements Transformer for the Kafka pipeline and serves the predict API
// through Assess.
type AssessmentTransformer struct {
	engine   *domain.Engine
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates an AssessmentTransformer. Pass a nil geocoder to
// disable geocoding enrichment.
func NewTransformer(engine *domain.Engine, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *AssessmentTransformer {
	return &AssessmentTransformer{
		engine:   engine,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Transform decodes a source message, scores it and serializes the
// assessment for the sink topic. The hazard comes from the record, falling
// back to the message's hazard header.
func (t *AssessmentTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	rec, err := domain.DecodeObservation(raw.Value)
	if err != nil {
		t.reject(headerHazard(raw), err)
		return domain.OutputEvent{}, err
	}
	if rec.Hazard == "" {
		h, err := domain.ParseHazard(raw.Headers["hazard"])
		if err != nil {
			t.reject("", err)
			return domain.OutputEvent{}, err
		}
		rec.Hazard = h
	}

	a, err := t.Assess(ctx, rec)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	return domain.SerializeAssessment(a)
}

// Assess scores a decoded observation. Rejections are counted by reason and
// returned unchanged so callers can match them with errors.Is.
func (t *AssessmentTransformer) Assess(ctx context.Context, rec domain.ObservationRecord) (domain.Assessed, error) {
	rec, placement := domain.LocateObservation(ctx, rec, t.geocoder, t.logger)

	a, err := t.engine.AssessObservation(rec)
	if err != nil {
		t.reject(rec.Hazard, err)
		return nil, err
	}
	a = domain.EnrichWithGeocoding(ctx, a, placement, t.geocoder, t.logger)

	meta := a.Meta()
	t.metrics.Assessments.WithLabelValues(string(meta.Hazard), meta.RiskLevel.String()).Inc()
	t.metrics.AssessmentConfidence.WithLabelValues(string(meta.Hazard)).Observe(meta.ConfidenceScore)
	t.logger.Debug("observation assessed",
		"assessment_id", meta.ID,
		"hazard", meta.Hazard,
		"risk_level", meta.RiskLevel,
		"confidence", meta.ConfidenceScore,
	)
	return a, nil
}

func (t *AssessmentTransformer) reject(h domain.Hazard, err error) {
	hazard := string(h)
	if hazard == "" {
		hazard = "unknown"
	}
	t.metrics.RejectedInputs.WithLabelValues(hazard, rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return reasonInvalidCoordinate
	case errors.Is(err, domain.ErrInvalidCategoricalValue):
		return reasonInvalidCategory
	case errors.Is(err, domain.ErrUnknownHazard):
		return reasonUnknownHazard
	default:
		return reasonMalformed
	}
}

// headerHazard returns the hazard named by the message header, or "" when it
// is absent or unrecognized.
func headerHazard(raw domain.RawEvent) domain.Hazard {
	h, err := domain.ParseHazard(raw.Headers["hazard"])
	if err != nil {
		return ""
	}
	return h
}

