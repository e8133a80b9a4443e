package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-atlas/analysis"
	"github.com/RyanBlaney/sonido-atlas/decode"
	"github.com/RyanBlaney/sonido-atlas/logging"
)

// Params are the tunable analysis settings loadable from YAML.
type Params struct {
	DegenerateRMSThreshold float64 `yaml:"degenerate_rms_threshold"`
	LogLevel               string  `yaml:"log_level"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.wav>",
	Short: "Analyze a WAV file and print its descriptors as JSON",
	Long: `Decode a WAV file, run the full descriptor pipeline and print the
result as JSON.

Example parameter file (params.yaml):
  degenerate_rms_threshold: 0.000001
  log_level: debug

Examples:
  sonido-atlas analyze track.wav
  sonido-atlas analyze track.wav --pretty
  sonido-atlas analyze track.wav --params params.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := loadParams(paramsFile)
		if err != nil {
			return err
		}
		applyLogLevel(params.LogLevel)

		audio, err := decode.WAVFile(args[0])
		if err != nil {
			return fmt.Errorf("decode %s: %w", args[0], err)
		}

		analyzer := analysis.NewAnalyzer(analysis.Options{
			DegenerateRMSThreshold: params.DegenerateRMSThreshold,
		})

		result, err := analyzer.AnalyzeTrack(cmd.Context(), audio.PCM, audio.SampleRate)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", args[0], err)
		}

		return printJSON(result)
	},
}

func loadParams(path string) (*Params, error) {
	params := &Params{}
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	if err := yaml.Unmarshal(data, params); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return params, nil
}

// applyLogLevel lets the params file raise or lower the level chosen by
// the --verbose flag.
func applyLogLevel(level string) {
	switch level {
	case "debug":
		logging.SetLevel(logging.DebugLevel)
	case "info":
		logging.SetLevel(logging.InfoLevel)
	case "warn":
		logging.SetLevel(logging.WarnLevel)
	case "error":
		logging.SetLevel(logging.ErrorLevel)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	if prettyJSON {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
