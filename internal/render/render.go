// Package render writes resolved field mappings into CERFA PDF templates.
package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/Bist0uille/archibot/internal/config"
)

// ErrTemplateNotFound is returned when no blank form exists for a document.
var ErrTemplateNotFound = eris.New("render: template not found")

// Filler fills a PDF form template with field values.
type Filler interface {
	// Fill writes the filled document for templatePath to outPath and
	// returns the path actually written.
	Fill(ctx context.Context, templatePath string, fields map[string]string, outPath string) (string, error)
}

// NewFiller creates a Filler based on config.
func NewFiller(cfg config.RenderConfig) (Filler, error) {
	switch cfg.Provider {
	case "pdftk", "":
		return WithRetry(NewPdfTk(cfg.PdftkPath, cfg.Timeout), RetryConfig{
			MaxAttempts:    cfg.Attempts,
			JitterFraction: 0.25,
		}), nil
	case "xfdf":
		return NewXFDFWriter(), nil
	default:
		return nil, eris.Errorf("render: unknown provider %q", cfg.Provider)
	}
}

// TemplatePath returns where the blank form of docID lives.
func TemplatePath(templatesDir, docID string) string {
	return filepath.Join(templatesDir, "cerfa_"+docID+".pdf")
}

func checkTemplate(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return eris.Wrapf(ErrTemplateNotFound, "render: %s", path)
	}
	if err != nil {
		return eris.Wrapf(err, "render: stat template %s", path)
	}
	return nil
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "render: create output directory for %s", path)
	}
	return nil
}
