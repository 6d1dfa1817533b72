package main

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/mapping"
	"github.com/Bist0uille/archibot/internal/project"
)

var resolveIssuer string

var resolveCmd = &cobra.Command{
	Use:   "resolve <doc-id> <file>",
	Short: "Print the form field values of one CERFA for a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		docID := catalog.NormalizeID(args[0])
		p, err := project.Load(args[1])
		if err != nil {
			return eris.Wrap(err, "resolve")
		}
		issuer, err := loadIssuer(resolveIssuer)
		if err != nil {
			return eris.Wrap(err, "resolve")
		}

		res := mapping.Resolve(docID, p, issuer)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveIssuer, "issuer", "", "practice profile (default paths.issuer_profile)")
	rootCmd.AddCommand(resolveCmd)
}
