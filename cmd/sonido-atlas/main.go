package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-atlas/logging"
)

var (
	paramsFile string
	prettyJSON bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sonido-atlas",
	Short: "Audio descriptor engine",
	Long: `sonido-atlas extracts musical descriptors from audio files:
key, tempo, loudness, mood, genre hints and a 7-dimension perceptual
profile, printed as JSON.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logging.SetLevel(logging.DebugLevel)
		} else {
			logging.SetLevel(logging.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&paramsFile, "params", "", "YAML parameter file")
	rootCmd.PersistentFlags().BoolVar(&prettyJSON, "pretty", false, "indent the JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(analyzeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
