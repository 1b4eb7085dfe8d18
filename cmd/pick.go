package cmd

import (
	"github.com/spf13/cobra"

	"github.com/simplejavamail/rfcpicker/internal/app"
	pickerscreen "github.com/simplejavamail/rfcpicker/internal/screens/picker"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Open the interactive picker (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

func init() {
	addFeatureFlags(pickCmd)
}

func runPicker(cmd *cobra.Command) error {
	e, err := setup(cmd, setupOpts{store: true, quiet: true})
	if err != nil {
		return err
	}
	defer e.close()

	svc, err := e.dependencyService()
	if err != nil {
		return err
	}

	return app.Run(pickerscreen.Deps{
		Dependency: svc,
		Events:     e.store.EventRepo(),
	}, choicesFromFlags(cmd))
}
