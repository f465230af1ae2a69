package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
	Long: `Categories define the folders screenshots are sorted into. Each
category has a name and optional keywords that guide classification.`,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create or update a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE:  runCategoryList,
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryRemove,
}

var categoryKeywordsCmd = &cobra.Command{
	Use:   "keywords [name] [keyword]...",
	Short: "Replace the keywords of an existing category",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCategoryKeywords,
}

var categorySearchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Find categories by keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategorySearch,
}

var categoryKeywordsFlag []string

func init() {
	categoryAddCmd.Flags().StringSliceVarP(&categoryKeywordsFlag, "keywords", "k", nil,
		"comma-separated keywords guiding classification")

	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryRemoveCmd)
	categoryCmd.AddCommand(categoryKeywordsCmd)
	categoryCmd.AddCommand(categorySearchCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	if categories == nil {
		return errors.New("category service not configured")
	}

	name := args[0]
	if err := categories.Add(cmd.Context(), name, categoryKeywordsFlag); err != nil {
		return fmt.Errorf("add category: %w", err)
	}

	cmd.Printf("Category %q saved.\n", name)
	return nil
}

func runCategoryList(cmd *cobra.Command, _ []string) error {
	if categories == nil {
		return errors.New("category service not configured")
	}

	list, err := categories.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	if len(list) == 0 {
		cmd.Println("No categories configured. Screenshots will be filed as Unclassified.")
		return nil
	}

	for _, cat := range list {
		if len(cat.Keywords) == 0 {
			cmd.Println(cat.Name)
			continue
		}
		cmd.Printf("%s (%s)\n", cat.Name, strings.Join(cat.Keywords, ", "))
	}
	return nil
}

func runCategoryRemove(cmd *cobra.Command, args []string) error {
	if categories == nil {
		return errors.New("category service not configured")
	}

	if err := categories.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("remove category: %w", err)
	}

	cmd.Printf("Category %q removed.\n", args[0])
	return nil
}

func runCategoryKeywords(cmd *cobra.Command, args []string) error {
	if categories == nil {
		return errors.New("category service not configured")
	}

	name := args[0]
	if err := categories.SetKeywords(cmd.Context(), name, args[1:]); err != nil {
		return fmt.Errorf("set keywords: %w", err)
	}

	cmd.Printf("Keywords for %q updated.\n", name)
	return nil
}

func runCategorySearch(cmd *cobra.Command, args []string) error {
	if categories == nil {
		return errors.New("category service not configured")
	}

	matches, err := categories.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search categories: %w", err)
	}

	if len(matches) == 0 {
		cmd.Println("No matching categories.")
		return nil
	}
	for _, cat := range matches {
		cmd.Printf("%s (%s)\n", cat.Name, strings.Join(cat.Keywords, ", "))
	}
	return nil
}
