// Package catalog holds the static table of CERFA authorization forms known
// to the decision engine: display name, canonical review delay and legal basis.
package catalog

import (
	"sort"
	"strings"
)

// Document identifiers selected by the decision engine.
const (
	PermitIndividualHome = "13406-15" // PCMI
	PermitGeneral        = "13409-15" // PC
	PriorDeclHome        = "13703-12" // DP maison individuelle
	PriorDeclGeneral     = "13404-12" // DP générale
	PriorDeclWorks       = "16702-01" // DP constructions et aménagements
	PermitLandDevelop    = "16297-03" // PA
	PermitModification   = "16700-01" // PCM
	PermitDemolition     = "13405-13" // PD
	PublicVenueWorks     = "13824-04" // AT ERP
	SiteOpening          = "13407-10" // DOC
	WorksCompletion      = "13408-12" // DAACT
	ZoningCertificate    = "13410-12" // CU
	TenderApplication    = "DC1"
	TenderDeclaration    = "DC2"
	TenderSubcontracting = "DC4"
)

// UnknownName is reported for identifiers missing from the catalogue.
const UnknownName = "Document inconnu"

// Entry describes one authorization form.
type Entry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DelayDays   int      `json:"delay_days"`
	Citation    string   `json:"citation,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
}

var pieceIndividualHome = []string{
	"PC1 - Plan de situation",
	"PC2 - Plan de masse",
	"PC3 - Plan en coupe du terrain",
	"PC4 - Notice descriptive",
	"PC5 - Plans des façades et toitures",
	"PC6 - Document graphique (perspectives)",
	"PC7 - Photographies du terrain",
	"PC8 - Document d'insertion paysagère",
}

var pieceGeneral = []string{
	"PC1 - Plan de situation",
	"PC2 - Plan de masse",
	"PC3 - Plan en coupe du terrain",
	"PC4 - Notice descriptive",
	"PC5 - Plans des façades et toitures",
	"PC6 - Document graphique",
	"PC7 - Photographies du terrain",
	"PC11 - Notice accessibilité",
	"PC12 - Étude d'impact (si requis)",
}

var entries = map[string]Entry{
	PermitIndividualHome: {Name: "Permis de construire pour une maison individuelle (PCMI)", DelayDays: 60, Citation: "R*421-1", Attachments: pieceIndividualHome},
	PermitGeneral:        {Name: "Permis de construire (autre)", DelayDays: 90, Citation: "R*421-1", Attachments: pieceGeneral},
	PriorDeclHome:        {Name: "Déclaration préalable (maison individuelle)", DelayDays: 30, Citation: "R*421-9"},
	PriorDeclGeneral:     {Name: "Déclaration préalable (générale)", DelayDays: 30, Citation: "R*421-9"},
	PriorDeclWorks:       {Name: "Déclaration préalable - constructions et aménagements", DelayDays: 30, Citation: "R*421-9"},
	PermitLandDevelop:    {Name: "Permis d'aménager", DelayDays: 90, Citation: "R*421-19"},
	PermitModification:   {Name: "Modification d'un permis de construire", DelayDays: 60},
	PermitDemolition:     {Name: "Permis de démolir", DelayDays: 60, Citation: "R*421-26"},
	PublicVenueWorks:     {Name: "Autorisation de travaux pour un ERP", DelayDays: 120, Citation: "L122-3 CCH"},
	SiteOpening:          {Name: "Déclaration d'ouverture de chantier (DOC)", DelayDays: 0, Citation: "R*424-16"},
	WorksCompletion:      {Name: "Déclaration attestant l'achèvement des travaux (DAACT)", DelayDays: 0, Citation: "R*462-1"},
	ZoningCertificate:    {Name: "Certificat d'urbanisme", DelayDays: 0, Citation: "R*410-1"},
	TenderApplication:    {Name: "Lettre de candidature (Marché public)", DelayDays: 0},
	TenderDeclaration:    {Name: "Déclaration du candidat (Marché public)", DelayDays: 0},
	TenderSubcontracting: {Name: "Déclaration de sous-traitance (Marché public)", DelayDays: 0},
}

func init() {
	for id, e := range entries {
		e.ID = id
		entries[id] = e
	}
}

// Lookup returns the catalogue entry for id. The returned entry is a copy.
func Lookup(id string) (Entry, bool) {
	e, ok := entries[id]
	if !ok {
		return Entry{}, false
	}
	e.Attachments = append([]string(nil), e.Attachments...)
	return e, true
}

// Name returns the display name of id, or UnknownName.
func Name(id string) string {
	if e, ok := entries[id]; ok {
		return e.Name
	}
	return UnknownName
}

// Delay returns the canonical review delay of id in days, or 0.
func Delay(id string) int {
	return entries[id].DelayDays
}

// All returns every entry sorted by identifier.
func All() []Entry {
	out := make([]Entry, 0, len(entries))
	for id := range entries {
		e, _ := Lookup(id)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NormalizeID turns user spellings such as "CERFA 13406*15", "cerfa_13406-15"
// or "dc1" into the catalogue form.
func NormalizeID(s string) string {
	id := strings.TrimSpace(s)
	lower := strings.ToLower(id)
	if strings.HasPrefix(lower, "cerfa") {
		id = strings.TrimLeft(id[len("cerfa"):], " _-n°")
	}
	id = strings.ReplaceAll(id, "*", "-")
	return strings.ToUpper(id)
}
