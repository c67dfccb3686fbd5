package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/fundmap/internal/config"
	"github.com/ziadkadry99/fundmap/internal/hierarchy"
	"github.com/ziadkadry99/fundmap/internal/layout"
	"github.com/ziadkadry99/fundmap/internal/legend"
	"github.com/ziadkadry99/fundmap/internal/progress"
	"github.com/ziadkadry99/fundmap/internal/render"
)

// fetchTimeout bounds the single dataset download. There is no retry.
var fetchTimeout = 60 * time.Second

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `fundmap init` to create a config file", err)
	}
	return cfg, nil
}

// addSourceFlags registers the flags that pick the dataset.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("dataset", "", "built-in dataset: kickstarter, movies or videogames")
	cmd.Flags().String("url", "", "fetch the hierarchy from this URL")
	cmd.Flags().String("data-file", "", "read the hierarchy from a local JSON file")
}

// applySourceFlags overrides the configured dataset source. A more specific
// flag clears the less specific sources below it.
func applySourceFlags(cmd *cobra.Command, cfg *config.Config) {
	if ds, _ := cmd.Flags().GetString("dataset"); ds != "" {
		cfg.Dataset = config.DatasetName(ds)
		cfg.DataURL = ""
		cfg.DataFile = ""
	}
	if u, _ := cmd.Flags().GetString("url"); u != "" {
		cfg.DataURL = u
		cfg.DataFile = ""
	}
	if f, _ := cmd.Flags().GetString("data-file"); f != "" {
		cfg.DataFile = f
	}
}

// renderOptions maps the config onto one render pass.
func renderOptions(cfg *config.Config) render.Options {
	opts := render.DefaultOptions()
	opts.Layout = layout.Options{
		Width:   cfg.Canvas.Width,
		Height:  cfg.Canvas.Height,
		Padding: cfg.Canvas.Padding,
		Ratio:   layout.Phi,
	}
	opts.Legend = legend.Options{
		Width:   cfg.Legend.Width,
		Padding: cfg.Legend.Padding,
		Spacing: cfg.Legend.Spacing,
	}
	opts.Title, opts.Description = cfg.Captions()
	return opts
}

// loadHierarchy reads the dataset once from the configured source and
// applies the category filters.
func loadHierarchy(ctx context.Context, cfg *config.Config) (*hierarchy.Node, error) {
	url, path := cfg.Source()

	var (
		root *hierarchy.Node
		err  error
	)
	if path != "" {
		logger.Debug("loading dataset", zap.String("file", path))
		root, err = hierarchy.LoadFile(path)
	} else {
		logger.Debug("fetching dataset", zap.String("url", url))
		client := &http.Client{Timeout: fetchTimeout}
		root, err = hierarchy.Fetch(ctx, client, url, hierarchy.FetchOptions{
			Progress: progress.NewReporter(os.Stderr),
		})
	}
	if err != nil {
		return nil, err
	}

	filtered, err := hierarchy.Filter(root, cfg.Include, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("filtering categories: %w", err)
	}
	return filtered, nil
}

// loadDocument validates cfg, loads the dataset and renders it. Nothing is
// drawn when loading fails.
func loadDocument(ctx context.Context, cfg *config.Config) (*render.Document, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	root, err := loadHierarchy(ctx, cfg)
	if err != nil {
		return nil, err
	}

	doc, err := render.Build(root, renderOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("rendering treemap: %w", err)
	}
	logger.Debug("treemap laid out",
		zap.String("render_id", doc.ID),
		zap.Int("tiles", len(doc.Chart.Tiles)),
		zap.Int("categories", len(doc.Colors)),
		zap.Float64("total", doc.Tree.Value),
	)
	return doc, nil
}
