package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path, and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to fundmap! Let's configure your treemap.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Dataset selection.
	items := make([]string, 0, len(DatasetNames)+1)
	for _, name := range DatasetNames {
		p := datasetPresets[name]
		items = append(items, fmt.Sprintf("%-11s — %s", name, p.Description))
	}
	items = append(items, "custom      — my own JSON URL")
	datasetPrompt := promptui.Select{
		Label: "Select dataset",
		Items: items,
	}
	idx, _, err := datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset selection: %w", err)
	}

	if idx < len(DatasetNames) {
		cfg.Dataset = DatasetNames[idx]
	} else {
		urlPrompt := promptui.Prompt{
			Label:    "Dataset URL",
			Validate: validateURL,
		}
		u, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("dataset url: %w", err)
		}
		cfg.Dataset = ""
		cfg.DataURL = strings.TrimSpace(u)
	}

	// 2. Output file.
	outputPrompt := promptui.Prompt{
		Label:   "Output HTML file",
		Default: cfg.Output,
	}
	output, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	cfg.Output = output

	// 3. Canvas size.
	widthPrompt := promptui.Prompt{
		Label:    "Canvas width",
		Default:  strconv.FormatFloat(cfg.Canvas.Width, 'f', -1, 64),
		Validate: validatePositive,
	}
	w, err := widthPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("canvas width: %w", err)
	}
	cfg.Canvas.Width, _ = strconv.ParseFloat(w, 64)

	heightPrompt := promptui.Prompt{
		Label:    "Canvas height",
		Default:  strconv.FormatFloat(cfg.Canvas.Height, 'f', -1, 64),
		Validate: validatePositive,
	}
	h, err := heightPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("canvas height: %w", err)
	}
	cfg.Canvas.Height, _ = strconv.ParseFloat(h, 64)

	// 4. Category filter.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude categories (comma-separated globs, blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Exclude = splitAndTrim(excludeStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateURL(s string) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}

func validatePositive(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and drops empty tokens.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
