package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [image]...",
	Short: "Sort one or more screenshots immediately",
	Long: `Runs the full pipeline for the given image files without watching.
Each file is processed independently; a failure on one does not stop
the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if pipeline == nil {
		return errors.New("pipeline not configured")
	}

	failures := 0
	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			path = arg
		}

		result := pipeline.Process(cmd.Context(), path)
		if result.Succeeded() {
			cmd.Printf("%s -> %s (%s)\n", filepath.Base(path), result.FinalPath, result.Category)
		} else {
			failures++
			cmd.Printf("%s: %v\n", filepath.Base(path), result.Err)
		}
	}

	if failures > 0 {
		return errors.New("some screenshots could not be sorted")
	}
	return nil
}
