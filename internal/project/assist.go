package project

import (
	"sort"

	"github.com/rotisserie/eris"

	"github.com/Bist0uille/archibot/internal/model"
)

// RequiredPaths are the fields counted by Completion.
var RequiredPaths = []string{
	"client.nom",
	"client.prenom",
	"client.adresse",
	"projet.typeProjet",
	"projet.adresseProjet",
}

// Completion returns the share of RequiredPaths that are filled, as a
// percentage rounded down.
func Completion(p model.ProjectInput) int {
	filled := 0
	for _, path := range RequiredPaths {
		if v, ok := p.Lookup(path); ok && v.IsScalar() && !v.IsEmpty() {
			filled++
		}
	}
	return filled * 100 / len(RequiredPaths)
}

// Suggestion is an input hint for one project field.
type Suggestion struct {
	Field        string  `json:"field"`
	Hint         string  `json:"hint"`
	TypicalValue float64 `json:"typical_value"`
}

// Suggestions returns hints for the fields the user has yet to refine.
func Suggestions(p model.ProjectInput) []Suggestion {
	var out []Suggestion
	if p.Category() == model.CategoryExtension {
		out = append(out, Suggestion{
			Field:        "surfacePlancher",
			Hint:         "Pour une extension, surface généralement entre 15-40m²",
			TypicalValue: 25,
		})
	}
	if p.Destination() == model.DestinationHousing {
		out = append(out, Suggestion{
			Field:        "surfaceTerrain",
			Hint:         "Terrain habitation type: 400-800m²",
			TypicalValue: 600,
		})
	}
	return out
}

var templates = map[string]map[string]any{
	"maison_120": {
		"client": map[string]any{
			"nom":        "Martin",
			"prenom":     "Pierre",
			"adresse":    "15 rue de la Paix",
			"codePostal": "75001",
			"ville":      "Paris",
		},
		"projet": map[string]any{
			"typeProjet":      "construction_neuve",
			"destination":     "habitation",
			"surfacePlancher": "120",
			"surfaceTerrain":  "500",
			"adresseProjet":   "10 avenue des Champs, Paris",
		},
	},
	"extension_30": {
		"client": map[string]any{
			"nom":        "Dupont",
			"prenom":     "Marie",
			"adresse":    "25 rue Victor Hugo",
			"codePostal": "69001",
			"ville":      "Lyon",
		},
		"projet": map[string]any{
			"typeProjet":      "extension",
			"destination":     "habitation",
			"surfacePlancher": "30",
			"adresseProjet":   "25 rue Victor Hugo, Lyon",
		},
	},
	"renovation": {
		"client": map[string]any{
			"nom":         "SARL Bâtiment",
			"numeroSiret": "12345678901234",
			"adresse":     "50 rue de l'Industrie",
			"codePostal":  "33000",
			"ville":       "Bordeaux",
		},
		"projet": map[string]any{
			"typeProjet":    "renovation",
			"destination":   "commerce",
			"adresseProjet": "12 place du Marché, Bordeaux",
		},
	},
}

// Templates lists the built-in starter projects.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template returns a fresh copy of a starter project.
func Template(name string) (model.ProjectInput, error) {
	t, ok := templates[name]
	if !ok {
		return model.ProjectInput{}, eris.Errorf("project: unknown template %q", name)
	}
	return model.ProjectFromMap(t), nil
}
