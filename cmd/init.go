package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bist0uille/archibot/internal/project"
)

var (
	initOut   string
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init [template]",
	Short: "Write a starter project from a built-in template",
	Long:  "Without argument, lists the built-in templates.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range project.Templates() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		p, err := project.Template(args[0])
		if err != nil {
			return err
		}
		if !initForce {
			if _, err := os.Stat(initOut); err == nil {
				return eris.Errorf("init: %s already exists (use --force)", initOut)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return eris.Wrapf(err, "init: stat %s", initOut)
			}
		}
		if err := project.Save(initOut, p, time.Now()); err != nil {
			return err
		}

		zap.L().Info("project initialized", zap.String("template", args[0]), zap.String("path", initOut))
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s written (completion %d%%)\n", initOut, project.Completion(p))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initOut, "out", "projet.json", "output file (.json, .yaml or .yml)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initCmd)
}
