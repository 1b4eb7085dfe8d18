package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simplejavamail/rfcpicker/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent classifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		stats, _ := cmd.Flags().GetBool("stats")

		e, err := setup(cmd, setupOpts{store: true})
		if err != nil {
			return err
		}
		defer e.close()

		ctx := cmd.Context()
		repo := e.store.EventRepo()
		out := cmd.OutOrStdout()

		if stats {
			counts, err := repo.CountByStructure(ctx)
			if err != nil {
				return fmt.Errorf("count events: %w", err)
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
				Headers("structure", "count")
			for _, c := range counts {
				t.Row(c.Structure.Label(), humanize.Comma(int64(c.Count)))
			}
			fmt.Fprintln(out, t.Render())
			return nil
		}

		events, err := repo.Recent(ctx, limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No classifications recorded yet.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
			Headers("when", "structure", "source", "features")
		for _, ev := range events {
			t.Row(humanize.Time(ev.CreatedAt), ev.Structure.Label(), ev.Source, ev.Features.String())
		}
		fmt.Fprintln(out, t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	historyCmd.Flags().Bool("stats", false, "Show counts per structure instead")
}
