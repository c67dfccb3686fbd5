package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/fundmap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize fundmap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a dataset and canvas size and generates a .fundmap.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
