package cmd

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/fundmap/internal/preview"
	"github.com/ziadkadry99/fundmap/internal/server"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Check the rendered page in a headless browser",
	Long: `Serves the rendered page on a loopback port, opens it in a local headless
Chrome, hovers one tile and checks that the tooltip shows that tile and hides
again when the pointer leaves. Optionally saves a screenshot.`,
	RunE: runPreview,
}

func init() {
	addSourceFlags(previewCmd)
	previewCmd.Flags().Int("tile", 0, "index of the tile to hover")
	previewCmd.Flags().String("screenshot", "", "save a full-page PNG screenshot here")
	previewCmd.Flags().String("browser", "", "path to a Chrome/Chromium binary")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceFlags(cmd, cfg)
	tile, _ := cmd.Flags().GetInt("tile")
	shotPath, _ := cmd.Flags().GetString("screenshot")
	bin, _ := cmd.Flags().GetString("browser")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadDocument(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{}, doc, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listening: %w", err)
	}
	url := "http://" + ln.Addr().String() + "/"

	serveCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(serveCtx)
	g.Go(func() error { return srv.Serve(gctx, ln) })

	checkErr := checkInBrowser(ctx, url, tile, shotPath, bin)
	cancel()
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preview server: %w", err)
	}
	return checkErr
}

func checkInBrowser(ctx context.Context, url string, tile int, shotPath, bin string) error {
	b, err := preview.Launch(ctx, preview.Options{Bin: bin})
	if err != nil {
		return err
	}
	defer b.Close()

	obs, err := b.Hover(ctx, url, tile)
	if err != nil {
		return err
	}
	logger.Debug("hovered tile",
		zap.Int("index", tile),
		zap.String("name", obs.Tile.Name),
		zap.String("opacity_enter", obs.Entered.Opacity),
		zap.String("opacity_leave", obs.Left.Opacity),
	)
	if err := preview.Verify(obs); err != nil {
		return fmt.Errorf("tooltip check failed for %q: %w", obs.Tile.Name, err)
	}
	fmt.Printf("Tooltip OK for tile %d (%s)\n", tile, obs.Tile.Name)

	if shotPath == "" {
		return nil
	}
	png, err := b.Screenshot(ctx, url)
	if err != nil {
		return err
	}
	if err := writeFile(shotPath, png); err != nil {
		return err
	}
	fmt.Printf("Screenshot written to %s\n", shotPath)
	return nil
}
