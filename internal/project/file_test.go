package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Bist0uille/archibot/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "projet.json", `{
	"client": {"nom": "Martin", "numeroSiret": ""},
	"project": {"typeProjet": "construction_neuve", "surfacePlancher": 120},
	"meta": {"version": "1.0"}
}`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryNewBuild, p.Category())
	assert.Equal(t, 120.0, p.FloorArea())
	assert.False(t, p.IsOrganization())
	_, ok := p.Lookup("meta.version")
	assert.False(t, ok, "meta is dropped on load")
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "projet.yaml", `
client:
  nom: Dupont
  dateNaissance: 1980-05-17
projet:
  typeProjet: extension
  surfacePlancher: "35,5"
technique:
  zoneProtegee: true
`)

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryExtension, p.Category())
	assert.Equal(t, 35.5, p.FloorArea())
	assert.True(t, p.ProtectedZone())

	d, ok := p.Lookup("client.dateNaissance")
	require.True(t, ok)
	assert.Equal(t, "1980-05-17", d.Text())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project: read file")

	_, err = Load(writeFile(t, "bad.json", `{"client": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project: decode")
}

func TestDecode_Empty(t *testing.T) {
	p, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryUnknown, p.Category())
}

func TestLoadIssuer(t *testing.T) {
	v, err := LoadIssuer(filepath.Join(t.TempDir(), "mes_infos.json"))
	require.NoError(t, err)
	assert.True(t, v.IsAbsent())

	path := writeFile(t, "mes_infos.json", `{"architecte": {"nom": "Durand"}, "societe": {"adresse": {"ville": "Lyon"}}}`)
	v, err = LoadIssuer(path)
	require.NoError(t, err)
	ville, ok := v.Lookup("societe.adresse.ville")
	require.True(t, ok)
	assert.Equal(t, "Lyon", ville.Text())

	_, err = LoadIssuer(writeFile(t, "broken.yaml", "architecte: [nom"))
	assert.Error(t, err)
}

func TestSave_JSONRoundTrip(t *testing.T) {
	p, err := Template("maison_120")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "maison.json")
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, Save(path, p, now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc struct {
		Meta Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, FormatVersion, doc.Meta.Version)
	assert.Equal(t, 100, doc.Meta.Completion)
	assert.True(t, now.Equal(doc.Meta.CreatedAt))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p.Tree().Any(), back.Tree().Any())
}

func TestSave_YAML(t *testing.T) {
	p := model.ProjectFromMap(map[string]any{"client": map[string]any{"nom": "Martin"}})
	path := filepath.Join(t.TempDir(), "projet.yml")
	require.NoError(t, Save(path, p, time.Now()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Contains(t, doc, "meta")
	assert.Contains(t, doc, "client")

	back, err := Load(path)
	require.NoError(t, err)
	nom, _ := back.Lookup("client.nom")
	assert.Equal(t, "Martin", nom.Text())
}
