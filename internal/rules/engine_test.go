package rules

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/model"
)

func project(client, projet, technique map[string]any) model.ProjectInput {
	m := map[string]any{}
	if client != nil {
		m["client"] = client
	}
	if projet != nil {
		m["projet"] = projet
	}
	if technique != nil {
		m["technique"] = technique
	}
	return model.ProjectFromMap(m)
}

func findAuth(a Analysis, id string) (Authorization, bool) {
	for _, auth := range a.Authorizations {
		if auth.DocumentID == id {
			return auth, true
		}
	}
	return Authorization{}, false
}

func TestAnalyze_NewBuildIndividualAtThreshold(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 150}, nil))

	auth, ok := findAuth(a, catalog.PermitIndividualHome)
	require.True(t, ok)
	assert.True(t, auth.Mandatory)
	_, general := findAuth(a, catalog.PermitGeneral)
	assert.False(t, general)
	assert.False(t, a.HasAlert(AlertArchitectIndividual))
}

func TestAnalyze_NewBuildIndividualAboveThreshold(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 151}, nil))

	_, ok := findAuth(a, catalog.PermitGeneral)
	assert.True(t, ok)
	assert.True(t, a.HasAlert(AlertArchitectIndividual))
	assert.True(t, a.Obligations.Architect)
	assert.Equal(t, 90, a.DelayDays)
}

func TestAnalyze_NewBuildScenario120(t *testing.T) {
	p := model.ProjectFromMap(map[string]any{
		"client":  map[string]any{"businessId": nil},
		"project": map[string]any{"category": "new_build", "floorArea": 120},
	})
	a := Analyze(p)

	auth, ok := findAuth(a, catalog.PermitIndividualHome)
	require.True(t, ok)
	assert.True(t, auth.Mandatory)
	assert.Equal(t, 60, auth.ReviewDelayDays)
	assert.Equal(t, 60, a.DelayDays)
	assert.False(t, a.HasAlert(AlertArchitectIndividual))
	assert.False(t, a.HasAlert(AlertArchitectLegalEntity))
	assert.False(t, a.HasAlert(AlertHeritageOpinion))
	assert.False(t, a.HasAlert(AlertReviewExtended))
}

func TestAnalyze_NewBuildOrganization(t *testing.T) {
	a := Analyze(project(
		map[string]any{"numeroSiret": "12345678901234"},
		map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 80},
		nil,
	))

	_, ok := findAuth(a, catalog.PermitGeneral)
	assert.True(t, ok)
	_, pcmi := findAuth(a, catalog.PermitIndividualHome)
	assert.False(t, pcmi)
	assert.True(t, a.HasAlert(AlertArchitectLegalEntity))
}

func TestAnalyze_BlankSiretIsIndividual(t *testing.T) {
	a := Analyze(project(
		map[string]any{"numeroSiret": "  "},
		map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 80},
		nil,
	))
	_, ok := findAuth(a, catalog.PermitIndividualHome)
	assert.True(t, ok)
}

func TestAnalyze_ExtensionTiers(t *testing.T) {
	tests := []struct {
		name      string
		floor     float64
		protected bool
		org       bool
		want      string // "" means no branch document
		delay     int
	}{
		{"zero unprotected", 0, false, false, "", 0},
		{"minor unprotected", 20, false, false, "", 0},
		{"minor protected", 20, true, false, catalog.PriorDeclHome, 45},
		{"gap value", 20.5, false, false, catalog.PriorDeclHome, 30},
		{"lower declaration", 21, false, false, catalog.PriorDeclHome, 30},
		{"upper declaration", 40, false, false, catalog.PriorDeclHome, 30},
		{"permit individual", 40.01, false, false, catalog.PermitIndividualHome, 60},
		{"permit organization", 45, false, true, catalog.PermitGeneral, 90},
		{"negative", -5, true, false, "", 15},
	}
	branchDocs := []string{catalog.PriorDeclHome, catalog.PermitIndividualHome, catalog.PermitGeneral}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := map[string]any{}
			if tt.org {
				client["numeroSiret"] = "12345678901234"
			}
			a := Analyze(project(client,
				map[string]any{"typeProjet": "extension", "surfacePlancher": tt.floor},
				map[string]any{"zoneProtegee": tt.protected},
			))

			for _, id := range branchDocs {
				_, ok := findAuth(a, id)
				assert.Equal(t, id == tt.want, ok, "document %s", id)
			}
			assert.Equal(t, tt.delay, a.DelayDays)
			// Trailer is always present for extensions.
			_, doc := findAuth(a, catalog.SiteOpening)
			assert.True(t, doc)
		})
	}
}

func TestAnalyze_ExtensionOrganizationScenario(t *testing.T) {
	p := model.ProjectFromMap(map[string]any{
		"client":  map[string]any{"businessId": "X"},
		"project": map[string]any{"category": "extension", "floorArea": 45},
	})
	a := Analyze(p)

	auth, ok := findAuth(a, catalog.PermitGeneral)
	require.True(t, ok)
	assert.True(t, auth.Mandatory)
	assert.Equal(t, 90, a.DelayDays)
	assert.True(t, a.HasAlert(AlertArchitectLegalEntity))
}

func TestAnalyze_EnglishKeysMatchFrench(t *testing.T) {
	english := model.ProjectFromMap(map[string]any{
		"client":    map[string]any{"businessId": "12345678901234"},
		"project":   map[string]any{"category": "public_tender", "floorArea": 300, "landArea": 1500},
		"technical": map[string]any{"protectedZone": true, "subcontracting": true},
	})
	french := project(
		map[string]any{"numeroSiret": "12345678901234"},
		map[string]any{"typeProjet": "appel_offres_public", "surfacePlancher": 300, "surfaceTerrain": 1500},
		map[string]any{"zoneProtegee": true, "sousTraitance": true},
	)

	a := Analyze(english)
	assert.Equal(t, Analyze(french), a)
	_, ok := findAuth(a, catalog.TenderSubcontracting)
	assert.True(t, ok)
	assert.True(t, a.HasAlert(AlertReviewExtended))
}

func TestAnalyze_Renovation(t *testing.T) {
	t.Run("individual small", func(t *testing.T) {
		a := Analyze(project(nil, map[string]any{"typeProjet": "renovation", "surfacePlancher": 30}, nil))
		assert.Equal(t, []string{catalog.PriorDeclHome, catalog.SiteOpening, catalog.WorksCompletion, catalog.ZoningCertificate}, a.DocumentIDs())
		assert.Equal(t, 30, a.DelayDays)
	})
	t.Run("organization large", func(t *testing.T) {
		a := Analyze(project(
			map[string]any{"numeroSiret": "12345678901234"},
			map[string]any{"typeProjet": "renovation", "surfacePlancher": 50},
			nil,
		))
		assert.Equal(t, []string{catalog.PriorDeclGeneral, catalog.PermitGeneral, catalog.SiteOpening, catalog.WorksCompletion, catalog.ZoningCertificate}, a.DocumentIDs())
		assert.Equal(t, 90, a.DelayDays)
		// Renovation is not a category that triggers the legal-entity alert.
		assert.False(t, a.HasAlert(AlertArchitectLegalEntity))
	})
}

func TestAnalyze_LandImprovement(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "amenagement", "surfaceTerrain": 2500}, nil))
	_, ok := findAuth(a, catalog.PriorDeclGeneral)
	assert.True(t, ok)
	assert.True(t, a.HasAlert(AlertSoilStudy))

	a = Analyze(project(nil, map[string]any{"typeProjet": "land_improvement", "surfaceTerrain": 2501}, nil))
	_, ok = findAuth(a, catalog.PermitLandDevelop)
	assert.True(t, ok)
	assert.Equal(t, 90, a.DelayDays)
}

func TestAnalyze_AmendmentHasNoTrailer(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "modification"}, nil))
	assert.Equal(t, []string{catalog.PermitModification}, a.DocumentIDs())
	assert.Equal(t, 60, a.DelayDays)
}

func TestAnalyze_PublicTender(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "appel_offres_public"}, nil))
	assert.Equal(t, []string{catalog.TenderApplication, catalog.TenderDeclaration}, a.DocumentIDs())
	assert.Equal(t, 0, a.DelayDays)

	a = Analyze(project(nil,
		map[string]any{"typeProjet": "public_tender"},
		map[string]any{"sousTraitance": true},
	))
	assert.Equal(t, []string{catalog.TenderApplication, catalog.TenderDeclaration, catalog.TenderSubcontracting}, a.DocumentIDs())
}

func TestAnalyze_UnknownCategory(t *testing.T) {
	a := Analyze(project(nil, map[string]any{"typeProjet": "chateau_fort", "surfacePlancher": 10}, nil))
	assert.Equal(t, []string{catalog.SiteOpening, catalog.WorksCompletion, catalog.ZoningCertificate}, a.DocumentIDs())
	assert.Equal(t, 0, a.DelayDays)
}

func TestAnalyze_Overlays(t *testing.T) {
	a := Analyze(project(nil,
		map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 100, "destination": "erp"},
		map[string]any{"demolition": true},
	))

	_, demo := findAuth(a, catalog.PermitDemolition)
	_, erp := findAuth(a, catalog.PublicVenueWorks)
	assert.True(t, demo)
	assert.True(t, erp)
	assert.Equal(t, 120, a.DelayDays)
	assert.True(t, a.Obligations.Accessibility)
	assert.Contains(t, a.Recommendations, "Dossier accessibilité PMR obligatoire")
}

func TestAnalyze_ZoningCertificateNeverMandatory(t *testing.T) {
	for _, c := range model.Categories() {
		a := Analyze(project(nil, map[string]any{"typeProjet": string(c), "surfacePlancher": 500, "surfaceTerrain": 5000}, nil))
		if auth, ok := findAuth(a, catalog.ZoningCertificate); ok {
			assert.False(t, auth.Mandatory, "category %s", c)
		}
	}
}

func TestAnalyze_ProtectedZoneDelay(t *testing.T) {
	a := Analyze(project(nil,
		map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 100},
		map[string]any{"zoneProtegee": true},
	))

	assert.Equal(t, 75, a.DelayDays)
	require.NotEmpty(t, a.Alerts)
	last := a.Alerts[len(a.Alerts)-1]
	assert.Equal(t, AlertReviewExtended, last.Code)
	assert.Contains(t, last.Message, "75")
	assert.True(t, a.HasAlert(AlertHeritageOpinion))
	assert.Contains(t, a.Recommendations, "Consulter l'ABF en amont pour validation du projet")
}

func TestAnalyze_ProtectedZoneStringFlag(t *testing.T) {
	a := Analyze(project(nil,
		map[string]any{"typeProjet": "modification"},
		map[string]any{"zoneProtegee": "True"},
	))
	assert.Equal(t, 75, a.DelayDays)
}

func TestAnalyze_DelayIsMaxOfMandatory(t *testing.T) {
	inputs := []model.ProjectInput{
		project(nil, map[string]any{"typeProjet": "renovation", "surfacePlancher": 80, "destination": "erp"}, map[string]any{"demolition": true}),
		project(nil, map[string]any{"typeProjet": "extension", "surfacePlancher": 30}, map[string]any{"zoneProtegee": true}),
		project(map[string]any{"numeroSiret": "1"}, map[string]any{"typeProjet": "amenagement", "surfaceTerrain": 9000}, nil),
		project(nil, nil, nil),
	}

	for _, p := range inputs {
		a := Analyze(p)
		want := 0
		for _, auth := range a.Authorizations {
			if auth.Mandatory && auth.ReviewDelayDays > want {
				want = auth.ReviewDelayDays
			}
		}
		if p.ProtectedZone() {
			want += ProtectedZoneExtraDays
		}
		assert.Equal(t, want, a.DelayDays)
	}
}

func TestAggregateDelay_OrderIndependent(t *testing.T) {
	sel := []selection{
		{id: catalog.SiteOpening, mandatory: true},
		{id: catalog.PublicVenueWorks, mandatory: false},
		{id: catalog.PermitDemolition, mandatory: true},
		{id: catalog.PermitGeneral, mandatory: true},
		{id: "unknown", mandatory: true},
	}
	want := aggregateDelay(sel)
	assert.Equal(t, 90, want)

	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]selection(nil), sel...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, aggregateDelay(shuffled))
	}
}

func TestFormatAuthorizations_UnknownDocument(t *testing.T) {
	out := formatAuthorizations([]selection{{id: "00000-00", mandatory: true}})
	require.Len(t, out, 1)
	assert.Equal(t, catalog.UnknownName, out[0].Name)
	assert.Equal(t, 0, out[0].ReviewDelayDays)
	assert.Equal(t, "CERFA 00000-00", out[0].Type)
}

func TestAnalyze_Idempotent(t *testing.T) {
	p := project(
		map[string]any{"numeroSiret": "12345678901234"},
		map[string]any{"typeProjet": "extension", "surfacePlancher": 45, "surfaceTerrain": 1500, "codePostalProjet": "75011"},
		map[string]any{"zoneProtegee": true, "demolition": true},
	)

	first, err := json.Marshal(Analyze(p))
	require.NoError(t, err)
	second, err := json.Marshal(Analyze(p))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestAnalyze_MissingAndMalformedNumbers(t *testing.T) {
	assert.NotPanics(t, func() {
		a := Analyze(project(nil, nil, nil))
		assert.Equal(t, 0, a.DelayDays)
	})

	a := Analyze(project(nil, map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": "abc"}, nil))
	_, ok := findAuth(a, catalog.PermitIndividualHome)
	assert.True(t, ok)

	a = Analyze(project(nil, map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": "180,5"}, nil))
	_, ok = findAuth(a, catalog.PermitGeneral)
	assert.True(t, ok)
}

func TestAnalyze_Dematerialisation(t *testing.T) {
	a := Analyze(project(
		map[string]any{"numeroSiret": "12345678901234"},
		map[string]any{"typeProjet": "renovation", "codePostalProjet": "75011"},
		nil,
	))
	assert.True(t, a.Obligations.Dematerialisation)

	a = Analyze(project(
		map[string]any{"numeroSiret": "12345678901234"},
		map[string]any{"typeProjet": "renovation", "codePostalProjet": "23000"},
		nil,
	))
	assert.False(t, a.Obligations.Dematerialisation)
}

func TestComplexity(t *testing.T) {
	assert.Equal(t, ComplexitySimple, complexity(2, 1, 0))
	assert.Equal(t, ComplexityModerate, complexity(3, 1, 1))
	assert.Equal(t, ComplexityModerate, complexity(4, 2, 0))
	assert.Equal(t, ComplexityComplex, complexity(4, 2, 1))
}

func TestSummary(t *testing.T) {
	a := Analyze(project(nil,
		map[string]any{"typeProjet": "construction_neuve", "surfacePlancher": 200},
		map[string]any{"zoneProtegee": true},
	))

	assert.Equal(t, len(a.Authorizations), a.Summary.Documents)
	assert.Equal(t, len(a.Mandatory()), a.Summary.Mandatory)
	assert.Equal(t, a.Obligations.Count(), a.Summary.Obligations)
	assert.Equal(t, a.DelayDays, a.Summary.DelayDays)
	assert.False(t, a.Summary.Compliant)
	assert.Equal(t, ComplexityComplex, a.Summary.Complexity)
	assert.NotEmpty(t, a.Summary.Recommendation)
}
