package cmd

import (
	"fmt"
	"os"

	"github.com/scom-repos/scom-scatter-chart-sub000/config"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Scatter chart widget host",
	Long:  `Scatter chart widget host: serves, renders and configures scatter charts`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		versionCmd,
		serveCmd,
		renderCmd,
		schemaCmd,
		suggestCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "Environment file")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Boot loads the configuration and sets up logging
func Boot() error {
	if err := config.Init(envFile); err != nil {
		return err
	}
	return config.Conf.Validate()
}
