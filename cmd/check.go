package cmd

import (
	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report handlers missing early exits without rewriting",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixArgs, err := buildFixArgs(cmd, args)
			if err != nil {
				return err
			}

			return workflow.Check(fixArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
