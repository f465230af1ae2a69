package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Maintain the metadata database",
}

var dbBackupCmd = &cobra.Command{
	Use:   "backup [destination]",
	Short: "Write a consistent copy of the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDBBackup,
}

var dbMaintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Vacuum and re-analyse the database",
	RunE:  runDBMaintain,
}

func init() {
	dbCmd.AddCommand(dbBackupCmd)
	dbCmd.AddCommand(dbMaintainCmd)
	rootCmd.AddCommand(dbCmd)
}

func runDBBackup(cmd *cobra.Command, args []string) error {
	if maintenance == nil {
		return errors.New("database not configured")
	}

	dest, err := filepath.Abs(args[0])
	if err != nil {
		dest = args[0]
	}

	if err := maintenance.Backup(cmd.Context(), dest); err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	cmd.Printf("Database backed up to %s\n", dest)
	return nil
}

func runDBMaintain(cmd *cobra.Command, _ []string) error {
	if maintenance == nil {
		return errors.New("database not configured")
	}

	if err := maintenance.PerformMaintenance(cmd.Context()); err != nil {
		return fmt.Errorf("maintenance failed: %w", err)
	}

	cmd.Println("Database maintenance complete.")
	return nil
}
