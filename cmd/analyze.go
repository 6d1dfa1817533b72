package main

import (
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Bist0uille/archibot/internal/planning"
	"github.com/Bist0uille/archibot/internal/rules"
)

var (
	analyzeTemplate string
	analyzeJSON     bool
	analyzeStart    string
)

// analysisOutput is the --json form of analyze.
type analysisOutput struct {
	Analysis rules.Analysis    `json:"analysis"`
	Planning planning.Schedule `json:"planning"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "List the CERFA forms, alerts and obligations of a project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}
		p, err := loadProject(args, analyzeTemplate)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		a := rules.Analyze(p)

		wished := analyzeStart
		if wished == "" {
			if v, ok := p.Lookup("projet.dateDepotSouhaitee"); ok && v.IsScalar() {
				wished = v.Text()
			}
		}
		sched := planning.Build(a.DelayDays, planning.StartDate(wished, time.Now()))

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analysisOutput{Analysis: a, Planning: sched})
		}
		formatAnalysis(cmd.OutOrStdout(), a, &sched)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTemplate, "template", "", "analyze a built-in starter project instead of a file")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")
	analyzeCmd.Flags().StringVar(&analyzeStart, "start", "", "planning start date (YYYY-MM-DD), default projet.dateDepotSouhaitee or today")
	rootCmd.AddCommand(analyzeCmd)
}
