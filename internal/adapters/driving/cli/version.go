package cli

import "github.com/spf13/cobra"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the clipsort version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("clipsort version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
