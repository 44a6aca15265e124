package main

import (
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/spf13/cobra"
)

var floodFields = []floatField{
	{"temperature", "air temperature in °C", func(r *domain.ObservationRecord, v float64) { r.Temperature = domain.Ptr(v) }},
	{"humidity", "relative humidity in %", func(r *domain.ObservationRecord, v float64) { r.Humidity = domain.Ptr(v) }},
	{"precip-24h", "precipitation over the last 24h in mm", func(r *domain.ObservationRecord, v float64) { r.Precipitation24h = domain.Ptr(v) }},
	{"precip-48h", "precipitation over the last 48h in mm", func(r *domain.ObservationRecord, v float64) { r.Precipitation48h = domain.Ptr(v) }},
	{"wind-speed", "wind speed in m/s", func(r *domain.ObservationRecord, v float64) { r.WindSpeed = domain.Ptr(v) }},
	{"water-level", "water level in m", func(r *domain.ObservationRecord, v float64) { r.WaterLevel = domain.Ptr(v) }},
	{"river-flow", "river flow in m³/s", func(r *domain.ObservationRecord, v float64) { r.RiverFlow = domain.Ptr(v) }},
	{"elevation", "elevation in m", func(r *domain.ObservationRecord, v float64) { r.Elevation = domain.Ptr(v) }},
}

func newFloodCmd(a *app) *cobra.Command {
	var soil string

	cmd := &cobra.Command{
		Use:   "flood",
		Short: "Assess flood risk",
		Example: `  assess flood --lat 29.76 --lon -95.37 --precip-24h 75 --precip-48h 120 --water-level 4.5 --elevation 45 --soil-type clay
  assess flood --file observation.json --hours-ahead 48`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rec, err := a.observation()
			if err != nil {
				return err
			}
			rec.Hazard = domain.HazardFlood

			fs := cmd.Flags()
			if err := applyCommon(fs, &rec); err != nil {
				return err
			}
			if err := applyFloats(fs, floodFields, &rec); err != nil {
				return err
			}
			if fs.Changed("soil-type") {
				if err := rec.SoilType.UnmarshalText([]byte(soil)); err != nil {
					return err
				}
			}
			return a.assess(cmd.OutOrStdout(), rec)
		},
	}

	registerCommon(cmd.Flags())
	registerFloats(cmd.Flags(), floodFields)
	cmd.Flags().StringVar(&soil, "soil-type", "", "soil type: CLAY, LOAM, SAND or ROCK")
	return cmd
}
