package cmd

import (
	"encoding/json"
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Print the structure chosen for every feature combination",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		asJSON, _ := cmd.Flags().GetBool("json")

		rows, err := matrixRows(all)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("plain", "html", "calendar", "embedded", "attachments", "forward", "structure")
		for _, r := range rows {
			f := r.Features
			t.Row(mark(f.PlainText), mark(f.HTMLText), mark(f.CalendarEvent),
				mark(f.EmbeddedContent), mark(f.Attachments), mark(f.EmailForward),
				r.Structure.Label())
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func init() {
	matrixCmd.Flags().Bool("all", false, "Include embedded content without HTML")
	matrixCmd.Flags().Bool("json", false, "Print JSON instead of a table")
}

type matrixRow struct {
	Features  mimestruct.Features  `json:"features"`
	Structure mimestruct.Structure `json:"structure"`
}

func matrixRows(all bool) ([]matrixRow, error) {
	var rows []matrixRow
	for _, f := range mimestruct.AllFeatures() {
		if !all && f.EmbeddedContent && !f.HTMLText {
			continue
		}
		res, err := mimestruct.Determine(f)
		if err != nil {
			return nil, err
		}
		rows = append(rows, matrixRow{Features: f, Structure: res.Structure})
	}
	return rows, nil
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return ""
}
