package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/di"
	"github.com/simplejavamail/rfcpicker/internal/server"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the picker as a web page",
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		dbPath, _ := cmd.Flags().GetString("db")
		listen, _ := cmd.Flags().GetString("listen")
		verbose, _ := cmd.Flags().GetBool("verbose")

		container, err := di.BuildContainer(di.Options{
			ConfigFile:    configFile,
			DBPath:        dbPath,
			ListenAddress: listen,
			Verbose:       verbose,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return container.Invoke(func(srv *server.Server, st *store.Store, logger *zap.Logger) error {
			defer st.Close()
			defer logger.Sync()
			return srv.Run(ctx)
		})
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides server.listen_address)")
}
