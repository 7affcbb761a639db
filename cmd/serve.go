package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/cogniq/internal/devserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local development platform server",
	Long: `Serve an in-memory implementation of the platform API with the seeded
course catalog. Accounts and submissions are lost on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		srv, err := devserver.New(cfg.Server, devserver.WithRequestLog())
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "Serving platform API on %s (Ctrl+C to stop)\n", cfg.Server.Addr)
		slog.Info("devserver starting", "addr", cfg.Server.Addr, "origins", cfg.Server.AllowedOrigins)
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides COGNIQ_SERVE_ADDR env var)")
}
