package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/mavensearch"
)

var dependencyCmd = &cobra.Command{
	Use:   "dependency",
	Short: "Print the Maven dependency snippet with the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, _ := cmd.Flags().GetString("current")
		offline, _ := cmd.Flags().GetBool("offline")

		e, err := setup(cmd, setupOpts{store: true})
		if err != nil {
			return err
		}
		defer e.close()

		svc, err := e.dependencyService()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		var res dependency.Resolution
		if offline {
			res = svc.Cached(ctx)
		} else {
			res = svc.Resolve(ctx)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Snippet())

		switch res.Source {
		case dependency.SourceCache:
			fmt.Fprintf(out, "\n(cached %s)\n", humanize.Time(res.FetchedAt))
		case dependency.SourceNone:
			if res.Err != nil {
				return fmt.Errorf("latest version unavailable: %w", res.Err)
			}
			return fmt.Errorf("latest version unavailable")
		}

		if current != "" && mavensearch.UpdateAvailable(current, res.Version) {
			fmt.Fprintf(out, "\nUpdate available: %s -> %s\n", current, res.Version)
		}
		return nil
	},
}

func init() {
	dependencyCmd.Flags().String("current", "", "Version you use now; reports whether a newer one exists")
	dependencyCmd.Flags().Bool("offline", false, "Use the cached version only")
}
