package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Bist0uille/archibot/internal/project"
	"github.com/Bist0uille/archibot/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a project file and report its completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := project.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "validate")
		}
		formatValidation(cmd.OutOrStdout(), validate.Project(p), project.Completion(p), project.Suggestions(p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
