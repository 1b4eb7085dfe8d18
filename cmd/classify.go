package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the MIME structure for the given content flags",
	Example: "  rfcpicker classify --plain --html --attachments\n" +
		"  rfcpicker classify --html --embedded --format mime",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		noHistory, _ := cmd.Flags().GetBool("no-history")

		e, err := setup(cmd, setupOpts{store: !noHistory})
		if err != nil {
			return err
		}
		defer e.close()

		choices := choicesFromFlags(cmd)
		f := choices.Features()
		res, err := mimestruct.Determine(f)
		if err != nil {
			return err
		}
		e.logger.Debug("classified",
			zap.Stringer("features", f),
			zap.String("structure", string(res.Structure)))

		if err := writeResult(cmd, res, format); err != nil {
			return err
		}

		e.record(cmd.Context(), store.Event{Features: f, Structure: res.Structure, Source: store.SourceCLI})
		return nil
	},
}

func init() {
	addFeatureFlags(classifyCmd)
	classifyCmd.Flags().StringP("format", "f", "text", "Output format: text, html, json or mime")
	classifyCmd.Flags().Bool("no-history", false, "Do not record this classification")
}

func writeResult(cmd *cobra.Command, res mimestruct.Result, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "text":
		fmt.Fprintf(out, "%s\n\n%s", res.Structure.Label(), render.Text(res))
	case "html":
		html, err := render.HTML(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, html)
	case "json":
		data, err := render.JSON(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "mime":
		data, err := render.MIME(res)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, html, json or mime)", format)
	}
	return nil
}
