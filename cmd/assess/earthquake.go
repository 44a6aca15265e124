package main

import (
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/spf13/cobra"
)

var earthquakeFields = []floatField{
	{"max-magnitude", "largest magnitude in the last 30 days", func(r *domain.ObservationRecord, v float64) { r.MaxMagnitude30d = domain.Ptr(v) }},
	{"avg-magnitude", "average magnitude in the last 30 days", func(r *domain.ObservationRecord, v float64) { r.AvgMagnitude30d = domain.Ptr(v) }},
	{"avg-depth", "average hypocenter depth in km", func(r *domain.ObservationRecord, v float64) { r.AvgDepth = domain.Ptr(v) }},
	{"fault-distance", "distance to the nearest fault in km", func(r *domain.ObservationRecord, v float64) { r.FaultDistance = domain.Ptr(v) }},
	{"population-density", "people per km²", func(r *domain.ObservationRecord, v float64) { r.PopulationDensity = domain.Ptr(v) }},
}

func newEarthquakeCmd(a *app) *cobra.Command {
	var (
		recent    int
		tectonic  string
		stability string
	)

	cmd := &cobra.Command{
		Use:     "earthquake",
		Aliases: []string{"quake"},
		Short:   "Assess earthquake risk",
		Example: `  assess earthquake --lat 37.77 --lon -122.42 --recent 8 --max-magnitude 5.2 --fault-distance 15 --tectonic-activity high`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.observation()
			if err != nil {
				return err
			}
			rec.Hazard = domain.HazardEarthquake

			fs := cmd.Flags()
			if err := applyCommon(fs, &rec); err != nil {
				return err
			}
			if err := applyFloats(fs, earthquakeFields, &rec); err != nil {
				return err
			}
			if fs.Changed("recent") {
				rec.RecentEarthquakes = domain.Ptr(recent)
			}
			if fs.Changed("tectonic-activity") {
				if err := rec.TectonicActivity.UnmarshalText([]byte(tectonic)); err != nil {
					return err
				}
			}
			if fs.Changed("geological-stability") {
				if err := rec.GeologicalStability.UnmarshalText([]byte(stability)); err != nil {
					return err
				}
			}
			return a.assess(cmd.OutOrStdout(), rec)
		},
	}

	registerCommon(cmd.Flags())
	registerFloats(cmd.Flags(), earthquakeFields)
	cmd.Flags().IntVar(&recent, "recent", 0, "earthquakes recorded nearby in the last 30 days")
	cmd.Flags().StringVar(&tectonic, "tectonic-activity", "", "tectonic activity: LOW, MEDIUM or HIGH")
	cmd.Flags().StringVar(&stability, "geological-stability", "", "geological stability: STABLE, MODERATE or UNSTABLE")
	return cmd
}
