package domain

import (
	"context"
	"log/slog"
)

// LocateObservation forward geocodes the record's place name when it has no
// coordinates. Without a geocoder, or when coordinates are present, the
// record is returned unchanged. Failures degrade gracefully: the record keeps
// its missing coordinates and scoring rejects it later.
func LocateObservation(ctx context.Context, rec ObservationRecord, geocoder Geocoder, logger *slog.Logger) (ObservationRecord, Placement) {
	p := Placement{PlaceName: rec.PlaceName}
	if geocoder == nil || rec.HasCoordinates() || rec.PlaceName == "" {
		return rec, p
	}

	result, err := geocoder.ForwardGeocode(ctx, rec.PlaceName)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"place_name", rec.PlaceName,
			"hazard", rec.Hazard,
			"error", err,
		)
		p.Source = "failed"
		return rec, p
	}
	if result.Lat == 0 && result.Lon == 0 {
		p.Source = "original"
		return rec, p
	}

	rec.Latitude = Ptr(result.Lat)
	rec.Longitude = Ptr(result.Lon)
	return rec, Placement{
		PlaceName:        result.PlaceName,
		FormattedAddress: result.FormattedAddress,
		Confidence:       result.Confidence,
		Source:           "forward",
	}
}

// EnrichWithGeocoding applies the placement to an assessment and, when no
// place is known yet, reverse geocodes its coordinates. If geocoder is nil
// or geocoding fails, the assessment is returned with GeoSource set
// accordingly.
func EnrichWithGeocoding(ctx context.Context, a Assessed, p Placement, geocoder Geocoder, logger *slog.Logger) Assessed {
	switch v := a.(type) {
	case FloodAssessment:
		v.Assessment = enrichMeta(ctx, v.Assessment, p, geocoder, logger)
		return v
	case EarthquakeAssessment:
		v.Assessment = enrichMeta(ctx, v.Assessment, p, geocoder, logger)
		return v
	default:
		return a
	}
}

func enrichMeta(ctx context.Context, a Assessment, p Placement, geocoder Geocoder, logger *slog.Logger) Assessment {
	a.PlaceName = p.PlaceName
	a.FormattedAddress = p.FormattedAddress
	a.GeoConfidence = p.Confidence
	a.GeoSource = p.Source

	if geocoder == nil || p.Source != "" {
		return a
	}
	if a.PlaceName != "" {
		a.GeoSource = "original"
		return a
	}

	result, err := geocoder.ReverseGeocode(ctx, a.Latitude, a.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"assessment_id", a.ID,
			"lat", a.Latitude,
			"lon", a.Longitude,
			"error", err,
		)
		a.GeoSource = "failed"
		return a
	}
	if result.FormattedAddress == "" {
		a.GeoSource = "original"
		return a
	}
	a.PlaceName = result.PlaceName
	a.FormattedAddress = result.FormattedAddress
	a.GeoConfidence = result.Confidence
	a.GeoSource = "reverse"
	return a
}
