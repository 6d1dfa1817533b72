package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bist0uille/archibot/internal/catalog"
)

func TestBuildTable_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []entry
		want    string
	}{
		{"empty path", []entry{on("", Direct("x"))}, "empty source path"},
		{"duplicate", []entry{on("client.nom", Direct("a")), on("client.nom", Direct("b"))}, "duplicate"},
		{"direct without field", []entry{on("client.nom", Direct(""))}, "without field"},
		{"select without choices", []entry{on("client.civilite", Select(nil))}, "without choices"},
		{"select empty key", []entry{on("client.civilite", Select(map[string]string{"": "x"}))}, "empty key"},
		{"select date part", []entry{on("client.dateNaissance.jour", Select(map[string]string{"1": "x"}))}, "direct rule"},
		{"incomplete date", []entry{
			on("client.dateNaissance.jour", Direct("d")),
			on("client.dateNaissance.mois", Direct("m")),
		}, "jour, mois and annee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildTable(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMustTable_Panics(t *testing.T) {
	assert.Panics(t, func() { mustTable(on("a", Direct(""))) })
}

func TestSplitDatePart(t *testing.T) {
	base, part, ok := splitDatePart("client.dateNaissance.jour")
	require.True(t, ok)
	assert.Equal(t, "client.dateNaissance", base)
	assert.Equal(t, partDay, part)

	_, _, ok = splitDatePart("client.adresse.jour")
	assert.False(t, ok, "parent segment must be date-like")
	_, _, ok = splitDatePart("client.dateNaissance")
	assert.False(t, ok)
	_, _, ok = splitDatePart("jour")
	assert.False(t, ok)
}

func TestIsDateLike(t *testing.T) {
	assert.True(t, isDateLike("client.dateNaissance"))
	assert.True(t, isDateLike("technique.date_signature"))
	assert.True(t, isDateLike("projet.DATE"))
	assert.False(t, isDateLike("projet.dateDepotSouhaitee.jour"))
	assert.False(t, isDateLike("client.nom"))
}

func TestTable_DatePartsAreNotSources(t *testing.T) {
	tbl, ok := Lookup("14880-02")
	require.True(t, ok)

	sources := tbl.Sources()
	assert.Contains(t, sources, "client.dateNaissance")
	assert.NotContains(t, sources, "client.dateNaissance.jour")

	r, ok := tbl.Rule("client.dateNaissance")
	require.True(t, ok)
	assert.Equal(t, RuleUnmapped, r.Kind())

	r, ok = tbl.Rule("client.profession")
	require.True(t, ok)
	assert.Equal(t, RuleUnmapped, r.Kind())
}

func TestTable_SourcesKeepDeclarationOrder(t *testing.T) {
	tbl, ok := Lookup(catalog.PermitIndividualHome)
	require.True(t, ok)
	sources := tbl.Sources()
	require.NotEmpty(t, sources)
	assert.Equal(t, "client.civilite", sources[0])
	assert.Equal(t, "technique.demolition", sources[len(sources)-1])

	sources[0] = "mutated"
	assert.Equal(t, "client.civilite", tbl.Sources()[0])
}

func TestTable_Fields(t *testing.T) {
	tbl, ok := Lookup(catalog.PermitIndividualHome)
	require.True(t, ok)
	fields := tbl.Fields()
	assert.Contains(t, fields, "D1M_monsieur")
	assert.Contains(t, fields, "C2ZR6_destination")
	assert.Contains(t, fields, fieldSiteArea)
	assert.IsIncreasing(t, fields)
}

func TestDocuments(t *testing.T) {
	docs := Documents()
	assert.Contains(t, docs, catalog.PermitIndividualHome)
	assert.Contains(t, docs, catalog.WorksCompletion)
	assert.Contains(t, docs, "14880-02")
	assert.NotContains(t, docs, catalog.PermitGeneral)
}

func TestSelectRule(t *testing.T) {
	src := map[string]string{"M.": "male", "X": ""}
	r := Select(src)
	src["Mme"] = "female"

	dest, ok := r.Choice("M.")
	assert.True(t, ok)
	assert.Equal(t, "male", dest)

	_, ok = r.Choice("X")
	assert.False(t, ok, "empty destination is not a choice")
	_, ok = r.Choice("Mme")
	assert.False(t, ok, "rule copies its choices")
	assert.Equal(t, []string{"M.", "X"}, r.Choices())
	assert.Equal(t, "select", r.Kind().String())
}
