package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the treemap to a static HTML page",
	Long: `Loads the configured dataset once, lays out the treemap and writes a
self-contained HTML page. The output file is only written when loading and
rendering succeed.`,
	RunE: runRender,
}

func init() {
	addSourceFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "", "output HTML file (overrides config)")
	renderCmd.Flags().String("legend-svg", "", "also write the legend as a standalone SVG file")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applySourceFlags(cmd, cfg)
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output = out
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadDocument(ctx, cfg)
	if err != nil {
		return err
	}

	var page bytes.Buffer
	if err := doc.WriteHTML(&page); err != nil {
		return err
	}
	if err := writeFile(cfg.Output, page.Bytes()); err != nil {
		return err
	}
	logger.Info("wrote treemap",
		zap.String("path", cfg.Output),
		zap.Int("tiles", len(doc.Chart.Tiles)),
		zap.Int("categories", len(doc.Colors)),
	)

	if svgPath, _ := cmd.Flags().GetString("legend-svg"); svgPath != "" {
		var svg bytes.Buffer
		if err := doc.WriteLegendSVG(&svg); err != nil {
			return err
		}
		if err := writeFile(svgPath, svg.Bytes()); err != nil {
			return err
		}
		logger.Info("wrote legend", zap.String("path", svgPath))
	}

	fmt.Printf("Treemap written to %s\n", cfg.Output)
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
