package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/detect"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/screens/inspect"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.eml|->",
	Short: "Check an existing message against the recommended structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		strict, _ := cmd.Flags().GetBool("strict")

		e, err := setup(cmd, setupOpts{store: true})
		if err != nil {
			return err
		}
		defer e.close()

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}

		rep, err := detect.FromReader(r)
		if err != nil {
			return err
		}
		e.logger.Debug("inspected message",
			zap.String("file", args[0]),
			zap.Int("parts", len(rep.Parts)),
			zap.Bool("roots_agree", rep.RootsAgree))
		e.record(cmd.Context(), store.Event{
			Features:  rep.Features,
			Structure: rep.Recommended.Structure,
			Source:    store.SourceInspect,
		})

		out := cmd.OutOrStdout()
		if asJSON {
			data, err := json.MarshalIndent(newInspectJSON(rep), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		} else {
			fmt.Fprint(out, inspect.RenderReport(rep))
		}

		if strict && !rep.RootsAgree {
			return fmt.Errorf("root %s does not match recommended %s", rep.ActualRoot, rep.ExpectedRoot)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "Print the report as JSON")
	inspectCmd.Flags().Bool("strict", false, "Exit with an error when the root does not match")
}

type inspectJSON struct {
	Features     any             `json:"features"`
	ActualRoot   string          `json:"actual_root"`
	ExpectedRoot string          `json:"expected_root"`
	RootsAgree   bool            `json:"roots_agree"`
	Recommended  render.Document `json:"recommended"`
	Parts        []inspectPart   `json:"parts"`
	Warnings     []string        `json:"warnings,omitempty"`
}

type inspectPart struct {
	Path        string `json:"path"`
	ContentType string `json:"content_type"`
	Disposition string `json:"disposition,omitempty"`
	FileName    string `json:"file_name,omitempty"`
	Size        int    `json:"size"`
	Kind        string `json:"kind"`
}

func newInspectJSON(rep *detect.Report) inspectJSON {
	out := inspectJSON{
		Features:     rep.Features,
		ActualRoot:   rep.ActualRoot,
		ExpectedRoot: rep.ExpectedRoot,
		RootsAgree:   rep.RootsAgree,
		Recommended:  render.NewDocument(rep.Recommended),
		Warnings:     rep.ParseWarnings,
	}
	for _, p := range rep.Parts {
		out.Parts = append(out.Parts, inspectPart{
			Path:        p.Path,
			ContentType: p.ContentType,
			Disposition: p.Disposition,
			FileName:    p.FileName,
			Size:        p.Size,
			Kind:        string(p.Kind),
		})
	}
	return out
}
