package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicecheck/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetVersionInfo())
		},
	}
}
