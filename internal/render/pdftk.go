package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// PdfTk fills forms with the pdftk CLI tool, feeding it XFDF on stdin.
type PdfTk struct {
	binPath string
	timeout time.Duration
}

// NewPdfTk creates a PdfTk filler. If binPath is empty, "pdftk" is used. A
// positive timeout bounds each run.
func NewPdfTk(binPath string, timeout time.Duration) *PdfTk {
	if binPath == "" {
		binPath = "pdftk"
	}
	return &PdfTk{binPath: binPath, timeout: timeout}
}

// Fill runs pdftk <template> fill_form - output <out> need_appearances.
// Runs killed by a signal or by the timeout return a *TransientError.
func (p *PdfTk) Fill(ctx context.Context, templatePath string, fields map[string]string, outPath string) (string, error) {
	if err := checkTemplate(templatePath); err != nil {
		return "", err
	}
	if err := ensureParent(outPath); err != nil {
		return "", err
	}

	var stdin bytes.Buffer
	if err := EncodeXFDF(&stdin, "", fields); err != nil {
		return "", err
	}

	runCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, p.binPath, templatePath, "fill_form", "-", "output", outPath, "need_appearances")
	var stdout, stderr bytes.Buffer
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		wrapped := eris.Wrapf(err, "render: pdftk failed for %s: %s", templatePath, strings.TrimSpace(stderr.String()))
		if ctx.Err() == nil && (runCtx.Err() != nil || transientExit(err)) {
			return "", &TransientError{Err: wrapped}
		}
		return "", wrapped
	}

	return outPath, nil
}
