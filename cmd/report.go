package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/generate"
	"github.com/Bist0uille/archibot/internal/planning"
	"github.com/Bist0uille/archibot/internal/project"
	"github.com/Bist0uille/archibot/internal/rules"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func severityLabel(s rules.Severity) string {
	switch s {
	case rules.SeverityObligation:
		return red(strings.ToUpper(string(s)))
	case rules.SeverityWarning:
		return yellow(strings.ToUpper(string(s)))
	default:
		return cyan(strings.ToUpper(string(s)))
	}
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}

// formatAnalysis writes the human-readable analysis report to out.
func formatAnalysis(out io.Writer, a rules.Analysis, sched *planning.Schedule) {
	_, _ = fmt.Fprintln(out, bold("Autorisations"))
	if len(a.Authorizations) == 0 {
		_, _ = fmt.Fprintln(out, "  aucune autorisation identifiée")
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, auth := range a.Authorizations {
		kind := "optionnel"
		if auth.Mandatory {
			kind = green("obligatoire")
		}
		_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\t%d j\n", auth.DocumentID, auth.Name, kind, auth.ReviewDelayDays)
	}
	_ = w.Flush()

	if len(a.Alerts) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, bold("Alertes"))
		for _, al := range a.Alerts {
			line := fmt.Sprintf("  [%s] %s", severityLabel(al.Severity), al.Message)
			if al.Citation != "" {
				line += " (" + al.Citation + ")"
			}
			_, _ = fmt.Fprintln(out, line)
		}
	}

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, bold("Obligations"))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	o := a.Obligations
	_, _ = fmt.Fprintf(w, "  Architecte:\t%s\n", yesNo(o.Architect))
	_, _ = fmt.Fprintf(w, "  Étude thermique:\t%s\n", yesNo(o.ThermalStudy))
	_, _ = fmt.Fprintf(w, "  Étude de sol:\t%s\n", yesNo(o.SoilStudy))
	_, _ = fmt.Fprintf(w, "  Avis ABF:\t%s\n", yesNo(o.HeritageOpinion))
	_, _ = fmt.Fprintf(w, "  Accessibilité:\t%s\n", yesNo(o.Accessibility))
	_, _ = fmt.Fprintf(w, "  Dématérialisation:\t%s\n", yesNo(o.Dematerialisation))
	_ = w.Flush()

	if len(a.Recommendations) > 0 {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, bold("Recommandations"))
		for _, r := range a.Recommendations {
			_, _ = fmt.Fprintf(out, "  - %s\n", r)
		}
	}

	_, _ = fmt.Fprintln(out)
	s := a.Summary
	_, _ = fmt.Fprintf(out, "%s %d jour(s), complexité %s\n", bold("Délai d'instruction:"), a.DelayDays, s.Complexity)
	_, _ = fmt.Fprintln(out, s.Recommendation)

	if sched != nil {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, bold("Planning"))
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, ph := range sched.Phases {
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%s\n", ph.Start.Format("02/01/2006"), ph.Name, ph.Duration)
		}
		_ = w.Flush()
		_, _ = fmt.Fprintf(out, "  Dépôt recommandé avant le %s\n", sched.RecommendedFiling.Format("02/01/2006"))
	}
}

// formatCatalog writes the catalogue table to out.
func formatCatalog(out io.Writer, entries []catalog.Entry) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tDELAY\tCITATION")
	_, _ = fmt.Fprintln(w, "--\t----\t-----\t--------")
	for _, e := range entries {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.ID, e.Name, e.DelayDays, e.Citation)
	}
	_ = w.Flush()
}

// formatOutcomes writes one line per filled document.
func formatOutcomes(out io.Writer, r *generate.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DOCUMENT\tSTATUS\tFIELDS\tOUTPUT")
	_, _ = fmt.Fprintln(w, "--------\t------\t------\t------")
	for _, o := range r.Outcomes {
		status, detail := green("ok"), o.Output
		if !o.OK() {
			status, detail = red("failed"), o.Error
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", o.DocumentID, status, o.Fields, detail)
	}
	_ = w.Flush()

	for _, o := range r.Outcomes {
		for _, n := range o.Notices {
			_, _ = fmt.Fprintf(out, "%s %s: %s\n", yellow("note"), o.DocumentID, n)
		}
	}
	_, _ = fmt.Fprintf(out, "%d document(s), %d failed, run %s\n", len(r.Outcomes), r.Failed(), truncateID(r.RunID))
}

// formatValidation writes validation errors, completion and input hints.
func formatValidation(out io.Writer, errs []string, completion int, hints []project.Suggestion) {
	if len(errs) == 0 {
		_, _ = fmt.Fprintln(out, green("Projet valide"))
	}
	for _, e := range errs {
		_, _ = fmt.Fprintf(out, "%s %s\n", red("✗"), e)
	}
	_, _ = fmt.Fprintf(out, "Complétion: %d%%\n", completion)
	for _, h := range hints {
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", cyan("conseil"), h.Field, h.Hint)
	}
}

// formatBatch writes the per-row batch table.
func formatBatch(out io.Writer, results []batchResult) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ROW\tCLIENT\tDOCUMENTS\tDELAY\tCOMPLEXITY\tISSUES")
	_, _ = fmt.Fprintln(w, "---\t------\t---------\t-----\t----------\t------")
	for _, r := range results {
		client := r.Client
		if runes := []rune(client); len(runes) > 30 {
			client = string(runes[:27]) + "..."
		}
		issues := fmt.Sprintf("%d", len(r.Errors))
		if r.Failed > 0 {
			issues += fmt.Sprintf(" (%d fill failed)", r.Failed)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.Line,
			client,
			strings.Join(r.Documents, ","),
			r.DelayDays,
			r.Complexity,
			issues,
		)
	}
	_ = w.Flush()
}

// truncateID returns the first 8 characters of a UUID for compact display.
func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
