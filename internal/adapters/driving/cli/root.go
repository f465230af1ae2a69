// Package cli implements the clipsort command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clipsort/clipsort-cli/internal/core/ports/driven"
	"github.com/clipsort/clipsort-cli/internal/core/ports/driving"
	"github.com/clipsort/clipsort-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	pipeline    driving.Pipeline
	categories  driving.CategoryManager
	screenshots driving.ScreenshotInventory
	maintenance driven.StoreMaintenance
	configStore driven.ConfigStore
	validateLLM func() error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "clipsort",
	Short: "Sort screenshots into folders by their text content",
	Long: `Clipsort watches a directory for new screenshots, reads their text
with OCR, classifies them against your categories with an LLM and files
them into per-category folders.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Services bundles everything the commands need.
type Services struct {
	Pipeline    driving.Pipeline
	Categories  driving.CategoryManager
	Screenshots driving.ScreenshotInventory
	Maintenance driven.StoreMaintenance
	Config      driven.ConfigStore

	// ValidateLLM checks the persisted LLM settings against the
	// backend. Optional; used by `config set` to flag bad credentials
	// early.
	ValidateLLM func() error
}

// SetServices injects the application services. Called by the
// composition root before Execute.
func SetServices(s Services) {
	pipeline = s.Pipeline
	categories = s.Categories
	screenshots = s.Screenshots
	maintenance = s.Maintenance
	configStore = s.Config
	validateLLM = s.ValidateLLM
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
