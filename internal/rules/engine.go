// Package rules is the regulatory decision engine: it classifies a project
// into the CERFA forms it needs, raises compliance alerts and estimates the
// administrative review delay. Analyze is pure and safe for concurrent use.
package rules

import (
	"fmt"

	"github.com/Bist0uille/archibot/internal/catalog"
	"github.com/Bist0uille/archibot/internal/model"
)

// facts is the engine's typed view of a project. Every numeric field went
// through model.NumberOrZero.
type facts struct {
	organization   bool
	category       model.Category
	destination    model.Destination
	floor          float64
	land           float64
	protected      bool
	demolition     bool
	subcontracting bool
	postalCode     string
}

func factsOf(p model.ProjectInput) facts {
	return facts{
		organization:   p.IsOrganization(),
		category:       p.Category(),
		destination:    p.Destination(),
		floor:          p.FloorArea(),
		land:           p.LandArea(),
		protected:      p.ProtectedZone(),
		demolition:     p.Demolition(),
		subcontracting: p.Subcontracting(),
		postalCode:     p.ProjectPostalCode(),
	}
}

type selection struct {
	id        string
	mandatory bool
}

// Analyze runs the decision procedure over p. It never fails: unknown
// categories select no category document and missing numbers count as 0.
func Analyze(p model.ProjectInput) Analysis {
	f := factsOf(p)

	selected := selectDocuments(f)
	alerts := complianceAlerts(f)

	delay := aggregateDelay(selected)
	if f.protected {
		delay += ProtectedZoneExtraDays
		alerts = append(alerts, Alert{
			Severity: SeverityInfo,
			Code:     AlertReviewExtended,
			Message:  fmt.Sprintf("Délais d'instruction rallongés de %d jours (total: %d jours).", ProtectedZoneExtraDays, delay),
			Citation: "Article R*423-24 du Code de l'urbanisme",
		})
	}

	a := Analysis{
		Authorizations:  formatAuthorizations(selected),
		Alerts:          alerts,
		DelayDays:       delay,
		Obligations:     obligationsOf(f),
		Recommendations: recommendationsOf(f),
	}
	a.Summary = summarize(a)
	return a
}

// selectDocuments applies the category branch, the situational overlays and
// the universal trailer, in that order.
func selectDocuments(f facts) []selection {
	var out []selection
	add := func(id string, mandatory bool) {
		out = append(out, selection{id: id, mandatory: mandatory})
	}

	switch f.category {
	case model.CategoryNewBuild:
		add(fullPermit(f), true)

	case model.CategoryExtension:
		switch {
		case f.floor < 0:
		case f.floor <= ExtensionMinorMax:
			if f.protected {
				add(catalog.PriorDeclHome, true)
			}
		case f.floor <= ExtensionDeclarationMax:
			add(catalog.PriorDeclHome, true)
		default:
			if f.organization {
				add(catalog.PermitGeneral, true)
			} else {
				add(catalog.PermitIndividualHome, true)
			}
		}

	case model.CategoryRenovation:
		if f.organization {
			add(catalog.PriorDeclGeneral, true)
		} else {
			add(catalog.PriorDeclHome, true)
		}
		if f.floor > RenovationPermitFloor {
			add(catalog.PermitGeneral, true)
		}

	case model.CategoryLandImprove:
		if f.land <= LandDeclarationMax {
			add(catalog.PriorDeclGeneral, true)
		} else {
			add(catalog.PermitLandDevelop, true)
		}

	case model.CategoryAmendment:
		add(catalog.PermitModification, true)

	case model.CategoryPublicTender:
		add(catalog.TenderApplication, true)
		add(catalog.TenderDeclaration, true)
		if f.subcontracting {
			add(catalog.TenderSubcontracting, true)
		}
	}

	if f.demolition {
		add(catalog.PermitDemolition, true)
	}
	if f.destination == model.DestinationPublicVenue {
		add(catalog.PublicVenueWorks, true)
	}

	if f.category != model.CategoryAmendment && f.category != model.CategoryPublicTender {
		add(catalog.SiteOpening, true)
		add(catalog.WorksCompletion, true)
		add(catalog.ZoningCertificate, false)
	}

	return out
}

// fullPermit picks the construction permit for a new build: organizations
// always file the general permit, individuals the PCMI up to the threshold.
func fullPermit(f facts) string {
	if f.organization || f.floor > IndividualHomeMaxFloor {
		return catalog.PermitGeneral
	}
	return catalog.PermitIndividualHome
}

func complianceAlerts(f facts) []Alert {
	var alerts []Alert

	if !f.organization && f.floor > IndividualHomeMaxFloor {
		alerts = append(alerts, Alert{
			Severity: SeverityObligation,
			Code:     AlertArchitectIndividual,
			Message:  "Architecte obligatoire (surface > 150m² pour un particulier).",
			Citation: "Article L431-3 du Code de l'urbanisme",
		})
	}
	if f.organization && (f.category == model.CategoryNewBuild || f.category == model.CategoryExtension) {
		alerts = append(alerts, Alert{
			Severity: SeverityObligation,
			Code:     AlertArchitectLegalEntity,
			Message:  "Architecte obligatoire pour une personne morale.",
			Citation: "Article L431-3 du Code de l'urbanisme",
		})
	}
	if f.floor > ThermalStudyFloor {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Code:     AlertThermalStudy,
			Message:  "Étude thermique (RT2012/RE2020) probablement requise.",
		})
	}
	if f.land > SoilStudyLand {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Code:     AlertSoilStudy,
			Message:  "Étude de sol recommandée.",
		})
	}
	if f.protected {
		alerts = append(alerts, Alert{
			Severity: SeverityObligation,
			Code:     AlertHeritageOpinion,
			Message:  "Avis de l'Architecte des Bâtiments de France (ABF) requis.",
			Citation: "Article L621-31 du Code du patrimoine",
		})
	}

	return alerts
}

// aggregateDelay is the longest canonical delay among mandatory documents,
// 0 when none is mandatory.
func aggregateDelay(selected []selection) int {
	delay := 0
	for _, s := range selected {
		if !s.mandatory {
			continue
		}
		if d := catalog.Delay(s.id); d > delay {
			delay = d
		}
	}
	return delay
}

func formatAuthorizations(selected []selection) []Authorization {
	out := make([]Authorization, 0, len(selected))
	for _, s := range selected {
		auth := Authorization{
			DocumentID: s.id,
			Type:       "CERFA " + s.id,
			Name:       catalog.UnknownName,
			Mandatory:  s.mandatory,
		}
		if e, ok := catalog.Lookup(s.id); ok {
			auth.Name = e.Name
			auth.ReviewDelayDays = e.DelayDays
			auth.Citation = e.Citation
			auth.Attachments = e.Attachments
		}
		out = append(out, auth)
	}
	return out
}
