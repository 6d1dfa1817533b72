package main

import (
	"github.com/spf13/cobra"

	"github.com/Bist0uille/archibot/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the known CERFA forms",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		formatCatalog(cmd.OutOrStdout(), catalog.All())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
