package main

import (
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Bist0uille/archibot/internal/config"
	"github.com/Bist0uille/archibot/internal/generate"
	"github.com/Bist0uille/archibot/internal/project"
	"github.com/Bist0uille/archibot/internal/render"
)

var (
	fillDocs     []string
	fillOptional bool
	fillIssuer   string
)

var fillCmd = &cobra.Command{
	Use:   "fill <file>",
	Short: "Fill the CERFA forms required by a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("fill"); err != nil {
			return err
		}
		p, err := project.Load(args[0])
		if err != nil {
			return eris.Wrap(err, "fill")
		}
		gen, err := newGenerator()
		if err != nil {
			return err
		}
		issuer, err := loadIssuer(fillIssuer)
		if err != nil {
			return eris.Wrap(err, "fill")
		}

		report, err := gen.Run(ctx, generate.Request{
			Project:         p,
			Issuer:          issuer,
			Documents:       fillDocs,
			IncludeOptional: fillOptional,
		})
		if report != nil {
			formatOutcomes(cmd.OutOrStdout(), report)
		}
		if err != nil {
			return err
		}
		if n := report.Failed(); n > 0 {
			return eris.Errorf("fill: %d of %d documents failed", n, len(report.Outcomes))
		}
		return nil
	},
}

// newGenerator wires the configured filler into a Generator.
func newGenerator() (*generate.Generator, error) {
	if err := config.EnsureDirs(cfg.Paths); err != nil {
		return nil, err
	}
	filler, err := render.NewFiller(cfg.Render)
	if err != nil {
		return nil, err
	}
	return generate.New(filler, cfg.Paths, cfg.Generate), nil
}

func init() {
	fillCmd.Flags().StringSliceVar(&fillDocs, "doc", nil, "document id to fill (repeatable), default the analysis selection")
	fillCmd.Flags().BoolVar(&fillOptional, "optional", false, "also fill the optional documents")
	fillCmd.Flags().StringVar(&fillIssuer, "issuer", "", "practice profile (default paths.issuer_profile)")
	rootCmd.AddCommand(fillCmd)
}
