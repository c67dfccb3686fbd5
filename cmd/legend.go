package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/fundmap/internal/legend"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "Print the category colors of a dataset",
	Long:  `Loads the dataset and prints one colored swatch per top-level category, in the order the legend draws them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applySourceFlags(cmd, cfg)

		doc, err := loadDocument(context.Background(), cfg)
		if err != nil {
			return err
		}
		printLegend(os.Stdout, doc.Legend.Items)
		return nil
	},
}

func init() {
	addSourceFlags(legendCmd)
	rootCmd.AddCommand(legendCmd)
}

var (
	legendHeader = lipgloss.NewStyle().Bold(true)
	legendHex    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

func printLegend(w io.Writer, items []legend.Item) {
	width := 0
	for _, it := range items {
		width = max(width, lipgloss.Width(it.Category))
	}

	fmt.Fprintln(w, legendHeader.Render(fmt.Sprintf("%d categories", len(items))))
	for _, it := range items {
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(it.Color)).Render("   ")
		pad := strings.Repeat(" ", width-lipgloss.Width(it.Category))
		fmt.Fprintf(w, "%s %s%s  %s\n", swatch, it.Category, pad, legendHex.Render(it.Color))
	}
}
