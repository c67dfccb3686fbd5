package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/fundmap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the rendered treemap over HTTP",
	Long: `Loads the dataset once, renders the page, and serves it together with
the hierarchy as JSON and the legend as SVG until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applySourceFlags(cmd, cfg)
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("allow-all") {
			cfg.Server.AllowAll, _ = cmd.Flags().GetBool("allow-all")
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		doc, err := loadDocument(ctx, cfg)
		if err != nil {
			return err
		}

		srv, err := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, doc, logger)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		fmt.Fprintf(os.Stderr, "fundmap %s serving %q on http://localhost:%d\n", Version, doc.Title, cfg.Server.Port)
		return srv.Run(ctx)
	},
}

func init() {
	addSourceFlags(serveCmd)
	serveCmd.Flags().Int("port", 8080, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("allow-all", false, "allow all CORS origins")
	rootCmd.AddCommand(serveCmd)
}
