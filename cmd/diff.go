package cmd

import (
	"github.com/spf13/cobra"
)

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [paths...]",
		Short: "Print the pending rewrites as unified diffs",
		Long:  diffLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixArgs, err := buildFixArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Diff(fixArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
