// Package project reads and writes project files, seeds new projects from
// built-in templates and helps the user complete them.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Bist0uille/archibot/internal/model"
)

// FormatVersion is written into the meta section of saved files.
const FormatVersion = "1.0"

const metaKey = "meta"

// Meta is the bookkeeping section of a saved project. Loading ignores it.
type Meta struct {
	CreatedAt  time.Time `json:"date_creation" yaml:"date_creation"`
	Version    string    `json:"version" yaml:"version"`
	Completion int       `json:"taux_completion" yaml:"taux_completion"`
}

// Load reads a JSON or YAML project file.
func Load(path string) (model.ProjectInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProjectInput{}, eris.Wrapf(err, "project: read file %s", path)
	}
	p, err := Decode(data)
	if err != nil {
		return model.ProjectInput{}, eris.Wrapf(err, "project: decode %s", path)
	}
	return p, nil
}

// Decode parses a JSON or YAML project document.
func Decode(data []byte) (model.ProjectInput, error) {
	raw, err := decodeRecord(data)
	if err != nil {
		return model.ProjectInput{}, err
	}
	delete(raw, metaKey)
	return model.ProjectFromMap(raw), nil
}

// LoadIssuer reads the practice profile (architecte, societe,
// ordre_architectes). A missing file yields an absent profile.
func LoadIssuer(path string) (model.Value, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Info("project: no issuer profile, architect fields stay empty", zap.String("path", path))
		return model.Absent(), nil
	}
	if err != nil {
		return model.Absent(), eris.Wrapf(err, "project: read issuer profile %s", path)
	}
	raw, err := decodeRecord(data)
	if err != nil {
		return model.Absent(), eris.Wrapf(err, "project: decode issuer profile %s", path)
	}
	return model.FromAny(raw), nil
}

// Save writes p to path with a meta section. The encoding follows the
// extension: .yaml or .yml for YAML, anything else for indented JSON.
func Save(path string, p model.ProjectInput, now time.Time) error {
	doc, ok := p.Tree().Any().(map[string]any)
	if !ok {
		doc = map[string]any{}
	}
	doc[metaKey] = Meta{
		CreatedAt:  now.UTC().Truncate(time.Second),
		Version:    FormatVersion,
		Completion: Completion(p),
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return eris.Wrap(err, "project: encode")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "project: create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "project: write file %s", path)
	}
	zap.L().Debug("project: saved", zap.String("path", path), zap.Int("completion", Completion(p)))
	return nil
}

func decodeRecord(data []byte) (map[string]any, error) {
	var raw map[string]any
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, eris.Wrap(err, "project: parse json")
		}
		return orEmpty(raw), nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "project: parse yaml")
	}
	return orEmpty(raw), nil
}

func orEmpty(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	return raw
}
