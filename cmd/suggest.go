package cmd

import (
	"fmt"

	"github.com/scom-repos/scom-scatter-chart-sub000/config"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/spf13/cobra"
)

var (
	suggestCSV    string
	suggestPrompt string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest chart options for a CSV file",
	Long:  "Ask the configured language model which columns of a CSV file to plot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if suggestCSV == "" {
			return fmt.Errorf("--csv is required")
		}
		if err := Boot(); err != nil {
			return err
		}
		defer config.CloseLog()

		llm, err := newLLM(config.Conf)
		if err != nil {
			return err
		}
		if llm == nil {
			return fmt.Errorf("no language model configured, set API_KEY or LLM_PROVIDER=ollama")
		}

		table, err := (&datasource.CSV{Path: suggestCSV}).Fetch(cmd.Context())
		if err != nil {
			return err
		}
		rows := make([]map[string]interface{}, len(table.Rows))
		for i, row := range table.Rows {
			rows[i] = row
		}

		suggestion, err := services.SuggestOptions(cmd.Context(), llm, table.Columns, rows, suggestPrompt)
		if err != nil {
			return err
		}
		content, err := json.MarshalIndent(suggestion, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestCSV, "csv", "", "CSV file with a header line")
	suggestCmd.Flags().StringVarP(&suggestPrompt, "prompt", "p", "", "What the chart should show")
}
