// Package generate turns one project into filled CERFA documents: it runs
// the analysis, resolves each selected form and renders them concurrently.
package generate

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/config"
	"github.com/Bist0uille/archibot/internal/mapping"
	"github.com/Bist0uille/archibot/internal/model"
	"github.com/Bist0uille/archibot/internal/render"
	"github.com/Bist0uille/archibot/internal/rules"
)

// Request describes one generation run.
type Request struct {
	Project model.ProjectInput
	Issuer  model.Value
	// Documents overrides the analysis selection when non-empty.
	Documents       []string
	IncludeOptional bool
}

// Outcome is the result for one document.
type Outcome struct {
	DocumentID string   `json:"document_id"`
	Name       string   `json:"name"`
	Mandatory  bool     `json:"mandatory"`
	Fields     int      `json:"fields"`
	Notices    []string `json:"notices,omitempty"`
	Output     string   `json:"output,omitempty"`
	Error      string   `json:"error,omitempty"`
	Err        error    `json:"-"`
}

// OK reports whether the document was written.
func (o Outcome) OK() bool { return o.Err == nil }

// Report summarises a run.
type Report struct {
	RunID    string         `json:"run_id"`
	Analysis rules.Analysis `json:"analysis"`
	Outcomes []Outcome      `json:"outcomes"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
}

// Failed counts the documents that could not be written.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Generator fills documents with a render.Filler.
type Generator struct {
	filler          render.Filler
	templatesDir    string
	outputDir       string
	maxConcurrent   int
	includeOptional bool
	now             func() time.Time
}

// New creates a Generator.
func New(filler render.Filler, paths config.PathsConfig, gen config.GenerateConfig) *Generator {
	limit := gen.MaxConcurrent
	if limit < 1 {
		limit = 1
	}
	return &Generator{
		filler:          filler,
		templatesDir:    paths.TemplatesDir,
		outputDir:       paths.OutputDir,
		maxConcurrent:   limit,
		includeOptional: gen.IncludeOptional,
		now:             time.Now,
	}
}

type job struct {
	id        string
	mandatory bool
}

// Run analyzes the project and fills every selected document. A failing
// document is recorded in its Outcome and does not stop the others; only
// context cancellation aborts the run.
func (g *Generator) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		RunID:    uuid.New().String(),
		Analysis: rules.Analyze(req.Project),
		Started:  g.now(),
	}
	log := zap.L().With(zap.String("run_id", report.RunID))

	jobs := g.selectJobs(report.Analysis, req)
	report.Outcomes = make([]Outcome, len(jobs))
	if len(jobs) == 0 {
		log.Info("generate: no document to fill")
		report.Finished = g.now()
		return report, nil
	}

	log.Info("generate: filling documents",
		zap.Int("documents", len(jobs)),
		zap.Int("concurrency", g.maxConcurrent),
	)

	client := clientName(req.Project)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)

	var written, failed atomic.Int64
	for i, j := range jobs {
		i, j := i, j
		eg.Go(func() error {
			out := g.fill(gctx, j, req, client, report.Started)
			report.Outcomes[i] = out
			if !out.OK() {
				failed.Add(1)
				log.Warn("generate: document failed", zap.String("document", j.id), zap.Error(out.Err))
				return nil // don't abort the run on individual failure
			}
			written.Add(1)
			log.Debug("generate: document written",
				zap.String("document", j.id),
				zap.String("output", out.Output),
				zap.Int("fields", out.Fields),
			)
			return nil
		})
	}
	_ = eg.Wait()
	report.Finished = g.now()

	log.Info("generate: run complete",
		zap.Int64("written", written.Load()),
		zap.Int64("failed", failed.Load()),
	)

	if err := ctx.Err(); err != nil {
		return report, eris.Wrap(err, "generate: run cancelled")
	}
	return report, nil
}

func (g *Generator) selectJobs(a rules.Analysis, req Request) []job {
	var jobs []job
	seen := map[string]bool{}
	add := func(id string, mandatory bool) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		jobs = append(jobs, job{id: id, mandatory: mandatory})
	}

	if len(req.Documents) > 0 {
		mandatory := map[string]bool{}
		for _, id := range a.Mandatory() {
			mandatory[id] = true
		}
		for _, raw := range req.Documents {
			id := catalog.NormalizeID(raw)
			add(id, mandatory[id])
		}
		return jobs
	}

	optional := req.IncludeOptional || g.includeOptional
	for _, auth := range a.Authorizations {
		if auth.Mandatory || optional {
			add(auth.DocumentID, auth.Mandatory)
		}
	}
	return jobs
}

func (g *Generator) fill(ctx context.Context, j job, req Request, client string, at time.Time) Outcome {
	out := Outcome{DocumentID: j.id, Name: catalog.Name(j.id), Mandatory: j.mandatory}
	if err := ctx.Err(); err != nil {
		out.Err = eris.Wrap(err, "generate: cancelled before fill")
		out.Error = out.Err.Error()
		return out
	}

	res := mapping.Resolve(j.id, req.Project, req.Issuer)
	out.Fields = len(res.Fields)
	out.Notices = res.Notices

	tpl := render.TemplatePath(g.templatesDir, j.id)
	target := filepath.Join(g.outputDir, render.OutputName(j.id, client, at))
	written, err := g.filler.Fill(ctx, tpl, res.Fields, target)
	if err != nil {
		out.Err = eris.Wrapf(err, "generate: fill %s", j.id)
		out.Error = out.Err.Error()
		return out
	}
	out.Output = written
	return out
}

func clientName(p model.ProjectInput) string {
	var parts []string
	for _, path := range []string{"client.nom", "client.prenom"} {
		if v, ok := p.Lookup(path); ok && v.IsScalar() && !v.IsEmpty() {
			parts = append(parts, strings.TrimSpace(v.Text()))
		}
	}
	return strings.Join(parts, " ")
}
