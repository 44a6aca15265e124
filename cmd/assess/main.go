// Command assess scores a single flood or earthquake observation and prints
// the assessment as JSON.
//
// Usage:
//
//	assess flood --lat 29.76 --lon -95.37 --precip-24h 75 --water-level 4.5
//	assess earthquake --file observation.json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by subcommands once the root pre-run has built it.
type app struct {
	modelFile string
	file      string
	logLevel  string
	engine    *domain.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "assess",
		Short:        "Score a hazard observation with the risk model",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			if !cmd.Flags().Changed("model") {
				a.modelFile = os.Getenv("RISK_MODEL_FILE")
			}

			logger := observability.NewCLILogger(a.logLevel)
			model, err := config.LoadModel(a.modelFile)
			if err != nil {
				return err
			}
			engine, err := domain.NewEngine(model, nil)
			if err != nil {
				return err
			}
			a.engine = engine
			logger.Debug("risk model loaded", "version", model.Version, "file", a.modelFile)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.modelFile, "model", "", "risk model YAML file (default $RISK_MODEL_FILE)")
	pf.StringVarP(&a.file, "file", "f", "", "read the observation from a JSON file; flags override its fields")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(newFloodCmd(a), newEarthquakeCmd(a))
	return root
}

// observation returns the base record from --file, or an empty one.
func (a *app) observation() (domain.ObservationRecord, error) {
	if a.file == "" {
		return domain.ObservationRecord{}, nil
	}
	data, err := os.ReadFile(a.file)
	if err != nil {
		return domain.ObservationRecord{}, fmt.Errorf("read observation: %w", err)
	}
	return domain.DecodeObservation(data)
}

func (a *app) assess(w io.Writer, rec domain.ObservationRecord) error {
	result, err := a.engine.AssessObservation(rec)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
