package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bist0uille/archibot/internal/generate"
	"github.com/Bist0uille/archibot/internal/model"
	"github.com/Bist0uille/archibot/internal/project"
	"github.com/Bist0uille/archibot/internal/rules"
	"github.com/Bist0uille/archibot/internal/validate"
)

var (
	batchSheet string
	batchFill  bool
	batchJSON  bool
)

// batchResult summarises one workbook row.
type batchResult struct {
	Line       int              `json:"line"`
	Client     string           `json:"client"`
	Documents  []string         `json:"documents"`
	DelayDays  int              `json:"delay_days"`
	Complexity rules.Complexity `json:"complexity"`
	Errors     []string         `json:"errors,omitempty"`
	Failed     int              `json:"failed,omitempty"`
	RunID      string           `json:"run_id,omitempty"`
}

var batchCmd = &cobra.Command{
	Use:   "batch <workbook.xlsx>",
	Short: "Analyze every project of a spreadsheet",
	Long:  "The first row holds dotted project paths (client.nom, projet.typeProjet, ...); each following row is one project.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mode := "analyze"
		if batchFill {
			mode = "fill"
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}

		rows, err := project.ReadWorkbook(args[0], project.WorkbookOptions{SheetName: batchSheet})
		if err != nil {
			return err
		}

		var fill fillFunc
		if batchFill {
			gen, err := newGenerator()
			if err != nil {
				return err
			}
			issuer, err := loadIssuer("")
			if err != nil {
				return eris.Wrap(err, "batch")
			}
			fill = func(ctx context.Context, p model.ProjectInput) (*generate.Report, error) {
				return gen.Run(ctx, generate.Request{Project: p, Issuer: issuer})
			}
		}

		results, err := processRows(ctx, rows, cfg.Generate.MaxConcurrent, fill)
		if err != nil {
			return err
		}

		if batchJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		formatBatch(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchSheet, "sheet", "", "sheet name (default first sheet)")
	batchCmd.Flags().BoolVar(&batchFill, "fill", false, "also fill the mandatory documents of each row")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print the results as JSON")
	rootCmd.AddCommand(batchCmd)
}

// fillFunc generates the documents of one project.
type fillFunc func(ctx context.Context, p model.ProjectInput) (*generate.Report, error)

// processRows analyzes rows concurrently, keeping row order in the result.
// When fill is non-nil each row's documents are generated too.
func processRows(ctx context.Context, rows []project.Row, concurrency int, fill fillFunc) ([]batchResult, error) {
	results := make([]batchResult, len(rows))
	if len(rows) == 0 {
		zap.L().Info("batch: workbook has no project rows")
		return results, nil
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("rows", len(rows)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var analyzed, failed atomic.Int64
	for i, row := range rows {
		i, row := i, row
		g.Go(func() error {
			log := zap.L().With(zap.Int("line", row.Line))

			a := rules.Analyze(row.Project)
			res := batchResult{
				Line:       row.Line,
				Client:     rowClient(row.Project),
				Documents:  a.Mandatory(),
				DelayDays:  a.DelayDays,
				Complexity: a.Summary.Complexity,
				Errors:     validate.Project(row.Project),
			}

			if fill != nil {
				report, err := fill(gctx, row.Project)
				if report != nil {
					res.RunID = report.RunID
					res.Failed = report.Failed()
				}
				if err != nil {
					failed.Add(1)
					log.Error("batch: fill failed", zap.Error(err))
					results[i] = res
					return nil // don't abort batch on individual failure
				}
			}

			analyzed.Add(1)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("analyzed", analyzed.Load()),
		zap.Int64("failed", failed.Load()),
	)
	if err := ctx.Err(); err != nil {
		return results, eris.Wrap(err, "batch: cancelled")
	}
	return results, nil
}

func rowClient(p model.ProjectInput) string {
	var parts []string
	for _, path := range []string{"client.nom", "client.prenom"} {
		if v, ok := p.Lookup(path); ok && v.IsScalar() && !v.IsEmpty() {
			parts = append(parts, strings.TrimSpace(v.Text()))
		}
	}
	return strings.Join(parts, " ")
}
