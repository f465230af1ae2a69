package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clipsort/clipsort-cli/internal/core/domain"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Query and maintain sorted screenshots",
}

var screenshotSearchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Find screenshots by their recognised text",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshotSearch,
}

var screenshotListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List screenshots in a category, newest first",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshotList,
}

var screenshotReclassifyCmd = &cobra.Command{
	Use:   "reclassify [path] [category]",
	Short: "Move a sorted screenshot to a different category",
	Args:  cobra.ExactArgs(2),
	RunE:  runScreenshotReclassify,
}

var screenshotCleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove records for screenshots deleted from disk",
	RunE:  runScreenshotCleanup,
}

func init() {
	screenshotCmd.AddCommand(screenshotSearchCmd)
	screenshotCmd.AddCommand(screenshotListCmd)
	screenshotCmd.AddCommand(screenshotReclassifyCmd)
	screenshotCmd.AddCommand(screenshotCleanupCmd)
	rootCmd.AddCommand(screenshotCmd)
}

func runScreenshotSearch(cmd *cobra.Command, args []string) error {
	if screenshots == nil {
		return errors.New("screenshot service not configured")
	}

	results, err := screenshots.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search screenshots: %w", err)
	}

	printScreenshots(cmd, results)
	return nil
}

func runScreenshotList(cmd *cobra.Command, args []string) error {
	if screenshots == nil {
		return errors.New("screenshot service not configured")
	}

	results, err := screenshots.ListByCategory(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("list screenshots: %w", err)
	}

	printScreenshots(cmd, results)
	return nil
}

func runScreenshotReclassify(cmd *cobra.Command, args []string) error {
	if screenshots == nil {
		return errors.New("screenshot service not configured")
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		path = args[0]
	}

	newPath, err := screenshots.Reclassify(cmd.Context(), path, args[1])
	if err != nil {
		return fmt.Errorf("reclassify: %w", err)
	}

	cmd.Printf("Moved to %s\n", newPath)
	return nil
}

func runScreenshotCleanup(cmd *cobra.Command, _ []string) error {
	if screenshots == nil {
		return errors.New("screenshot service not configured")
	}

	removed, err := screenshots.Cleanup(cmd.Context())
	if err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	cmd.Printf("Removed %d stale record(s).\n", removed)
	return nil
}

func printScreenshots(cmd *cobra.Command, results []domain.Screenshot) {
	if len(results) == 0 {
		cmd.Println("No screenshots found.")
		return
	}
	for _, shot := range results {
		cmd.Printf("%s  [%s]  %s\n",
			shot.CreatedAt.Format("2006-01-02 15:04"), shot.Category, shot.Path)
	}
}
