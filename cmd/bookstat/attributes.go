package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcongdon/bookstat"
)

var attributesCmd = &cobra.Command{
	Use:   "attributes",
	Short: "List the attributes statistics can be computed for",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range bookstat.SupportedAttributes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(attributesCmd)
}
