package rules

import (
	"strings"

	"github.com/Bist0uille/archibot/internal/model"
)

func obligationsOf(f facts) Obligations {
	return Obligations{
		Architect: (!f.organization && f.floor > IndividualHomeMaxFloor) ||
			(f.organization && (f.category == model.CategoryNewBuild || f.category == model.CategoryExtension)),
		ThermalStudy:      f.floor > ThermalStudyFloor,
		SoilStudy:         f.land > SoilStudyLand,
		HeritageOpinion:   f.protected,
		Accessibility:     f.destination == model.DestinationPublicVenue,
		Dematerialisation: f.organization && largeCommune(f.postalCode),
	}
}

func largeCommune(postalCode string) bool {
	if postalCode == "" {
		return false
	}
	for _, prefix := range largeCommunePrefixes {
		if strings.HasPrefix(postalCode, prefix) {
			return true
		}
	}
	return false
}

func recommendationsOf(f facts) []string {
	var recs []string

	if f.floor > GeotechnicalFloor {
		recs = append(recs, "Prévoir une étude géotechnique G2 avant conception")
	}
	if f.protected {
		recs = append(recs, "Consulter l'ABF en amont pour validation du projet")
	}
	if f.floor > ImpactStudyFloor {
		recs = append(recs, "Étude d'impact environnemental requise")
	}
	if f.destination == model.DestinationPublicVenue {
		recs = append(recs,
			"Consultation commission sécurité incendie",
			"Dossier accessibilité PMR obligatoire",
		)
	}
	if f.organization && largeCommune(f.postalCode) {
		recs = append(recs, "Dépôt dématérialisé obligatoire (Article L423-3 du Code de l'urbanisme)")
	}

	return append(recs,
		"Vérifier la conformité RE2020 dès l'esquisse",
		"Anticiper les réseaux et raccordements",
	)
}
