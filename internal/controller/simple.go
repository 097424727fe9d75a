package controller

import (
	"bytes"
	"fmt"

	m "github.com/mouse-blink/earlyexit/internal/model"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd  *cobra.Command
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(options ...StartOption) error {
	s.mode = newStartConfig(options).mode
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() {}

// DisplayFileResult prints one status line.
func (s *SimpleUI) DisplayFileResult(result m.FileResult) {
	s.printf("%s\n", statusMessage(s.mode, result))
}

// DisplayDiff prints a unified diff as is.
func (s *SimpleUI) DisplayDiff(_ m.Path, unified string) {
	if unified == "" {
		return
	}

	s.printf("%s", unified)
}

// DisplaySummary prints a table of every processed file.
func (s *SimpleUI) DisplaySummary(results []m.FileResult) error {
	if len(results) == 0 {
		s.printf("No source files found\n")
		return nil
	}

	counts := countResults(results)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Status", "Changes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, result := range results {
		table.Append([]string{
			string(result.Path),
			statusLabel(s.mode, result.Status),
			fmt.Sprintf("%d", result.Changes),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", counts.files),
		fmt.Sprintf("Errors %d", counts.failed),
		fmt.Sprintf("%d", counts.changes),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())
	s.printf("\n✓ Done\n")

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
