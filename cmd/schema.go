package cmd

import (
	"fmt"

	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/spf13/cobra"
)

var (
	schemaColumns  []string
	schemaRegister bool
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the widget form schemas",
	Long:  "Print the builder and embedded form schemas for the given columns, or the registration with --register",
	RunE: func(cmd *cobra.Command, args []string) error {
		var v interface{} = widget.GetFormSchema(schemaColumns)
		if schemaRegister {
			v = widget.Register()
		}
		content, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringSliceVarP(&schemaColumns, "columns", "c", nil, "Column names offered by the form")
	schemaCmd.Flags().BoolVar(&schemaRegister, "register", false, "Print the registration instead")
}
