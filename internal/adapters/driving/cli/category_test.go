package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipsort/clipsort-cli/internal/adapters/driven/storage/memory"
	"github.com/clipsort/clipsort-cli/internal/core/services"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func withCategoryService(t *testing.T) {
	t.Helper()
	original := categories
	categories = services.NewCategoryService(memory.NewCategoryStore())
	t.Cleanup(func() { categories = original })
}

func TestCategoryCmd(t *testing.T) {
	t.Run("add and list", func(t *testing.T) {
		withCategoryService(t)

		out, err := execute(t, "category", "add", "Work", "--keywords", "invoice,meeting")
		require.NoError(t, err)
		assert.Contains(t, out, `Category "Work" saved.`)

		out, err = execute(t, "category", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Work (invoice, meeting)")
	})

	t.Run("empty list mentions the fallback label", func(t *testing.T) {
		withCategoryService(t)

		out, err := execute(t, "category", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Unclassified")
	})

	t.Run("remove unknown category fails", func(t *testing.T) {
		withCategoryService(t)

		_, err := execute(t, "category", "remove", "Missing")
		assert.Error(t, err)
	})

	t.Run("unconfigured service is an error", func(t *testing.T) {
		original := categories
		categories = nil
		t.Cleanup(func() { categories = original })

		_, err := execute(t, "category", "list")
		assert.Error(t, err)
	})
}
