package main

import (
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/spf13/pflag"
)

// floatField binds an optional numeric flag to an observation field. The
// field is set only when the flag is given, so absent stays distinct from zero.
type floatField struct {
	name  string
	usage string
	set   func(rec *domain.ObservationRecord, v float64)
}

func registerFloats(fs *pflag.FlagSet, fields []floatField) {
	for _, f := range fields {
		fs.Float64(f.name, 0, f.usage)
	}
}

func applyFloats(fs *pflag.FlagSet, fields []floatField, rec *domain.ObservationRecord) error {
	for _, f := range fields {
		if !fs.Changed(f.name) {
			continue
		}
		v, err := fs.GetFloat64(f.name)
		if err != nil {
			return err
		}
		f.set(rec, v)
	}
	return nil
}

var locationFields = []floatField{
	{"lat", "latitude in degrees", func(r *domain.ObservationRecord, v float64) { r.Latitude = domain.Ptr(v) }},
	{"lon", "longitude in degrees", func(r *domain.ObservationRecord, v float64) { r.Longitude = domain.Ptr(v) }},
}

// applyCommon sets the location and horizon flags shared by both hazards.
func applyCommon(fs *pflag.FlagSet, rec *domain.ObservationRecord) error {
	if err := applyFloats(fs, locationFields, rec); err != nil {
		return err
	}
	if fs.Changed("hours-ahead") {
		h, err := fs.GetInt("hours-ahead")
		if err != nil {
			return err
		}
		rec.HoursAhead = h
	}
	return nil
}

func registerCommon(fs *pflag.FlagSet) {
	registerFloats(fs, locationFields)
	fs.Int("hours-ahead", domain.DefaultHoursAhead, "forecast horizon in hours (1-168)")
}
