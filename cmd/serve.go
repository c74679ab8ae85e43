package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the api server and scheduled download checks",
	Long:  `start the api server and scheduled download checks`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a := setup(ctx, true)
		defer a.Close()

		log := logger.Get()
		ctx = logger.WithCtx(ctx, log)
		srv := server.New(log, a.manager)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return a.manager.Run(ctx, a.cfg.Jobs.Downloads)
		})
		g.Go(func() error {
			return srv.Serve(ctx, a.cfg.Server.Port)
		})

		if err := g.Wait(); err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
