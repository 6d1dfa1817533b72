package model

import "strings"

// Canonical section names of a project record.
const (
	SectionClient    = "client"
	SectionProject   = "projet"
	SectionTechnical = "technique"
)

var sectionAliases = map[string]string{
	"client":    SectionClient,
	"projet":    SectionProject,
	"project":   SectionProject,
	"technique": SectionTechnical,
	"technical": SectionTechnical,
}

// keyAliases maps English field keys onto the save-file keys, per canonical
// section.
var keyAliases = map[string]map[string]string{
	SectionClient: {
		"businessId": "numeroSiret",
		"lastName":   "nom",
		"firstName":  "prenom",
		"birthDate":  "dateNaissance",
		"birthPlace": "lieuNaissance",
		"address":    "adresse",
		"postalCode": "codePostal",
		"city":       "ville",
		"phone":      "telephone",
	},
	SectionProject: {
		"category":           "typeProjet",
		"floorArea":          "surfacePlancher",
		"footprintArea":      "empriseSol",
		"landArea":           "surfaceTerrain",
		"height":             "hauteurBatiment",
		"levels":             "nombreNiveaux",
		"address":            "adresseProjet",
		"postalCode":         "codePostalProjet",
		"city":               "villeProjet",
		"cadastralReference": "referenceCadastrale",
		"filingDate":         "dateDepotSouhaitee",
	},
	SectionTechnical: {
		"protectedZone":  "zoneProtegee",
		"subcontracting": "sousTraitance",
		"architect":      "architecte",
		"signatureDate":  "date_signature",
	},
}

// ProjectInput is one project as entered in the wizard: a record with the
// sections client, projet and technique. It is immutable.
type ProjectInput struct {
	root Value
}

// NewProjectInput wraps v, renaming the English section aliases "project"
// and "technical" and the English field keys of each section to their
// canonical names. When both spellings are present the canonical one wins.
func NewProjectInput(v Value) ProjectInput {
	if !v.IsRecord() {
		return ProjectInput{root: Record(nil)}
	}
	out := make(map[string]Value, len(v.fields))
	for _, k := range v.Keys() {
		child := v.fields[k]
		name, ok := sectionAliases[k]
		if !ok {
			out[k] = child
			continue
		}
		if prev, dup := out[name]; dup && prev.IsRecord() && child.IsRecord() {
			if k == name {
				out[name] = mergeRecords(prev, child)
			} else {
				out[name] = mergeRecords(child, prev)
			}
			continue
		}
		out[name] = child
	}
	for name, aliases := range keyAliases {
		if sec, ok := out[name]; ok && sec.IsRecord() {
			out[name] = renameKeys(sec, aliases)
		}
	}
	return ProjectInput{root: Value{kind: KindRecord, fields: out}}
}

// renameKeys moves aliased keys of rec onto their canonical key unless that
// key is already set.
func renameKeys(rec Value, aliases map[string]string) Value {
	m := make(map[string]Value, len(rec.fields))
	for k, v := range rec.fields {
		if _, alias := aliases[k]; !alias {
			m[k] = v
		}
	}
	for k, v := range rec.fields {
		canonical, alias := aliases[k]
		if !alias {
			continue
		}
		if _, taken := m[canonical]; !taken {
			m[canonical] = v
		}
	}
	return Value{kind: KindRecord, fields: m}
}

// ProjectFromMap is a convenience for decoded JSON or YAML documents.
func ProjectFromMap(m map[string]any) ProjectInput {
	return NewProjectInput(FromAny(m))
}

// Tree returns the underlying record.
func (p ProjectInput) Tree() Value { return p.root }

// Lookup resolves a dotted path against the project record.
func (p ProjectInput) Lookup(path string) (Value, bool) { return p.root.Lookup(path) }

// Client returns the client section.
func (p ProjectInput) Client() Value { return p.section(SectionClient) }

// Project returns the projet section.
func (p ProjectInput) Project() Value { return p.section(SectionProject) }

// Technical returns the technique section.
func (p ProjectInput) Technical() Value { return p.section(SectionTechnical) }

// IsOrganization reports whether the client carries a business registration
// number. Legal status is never stored, only derived.
func (p ProjectInput) IsOrganization() bool {
	siret, ok := p.Client().Field("numeroSiret")
	return ok && siret.IsScalar() && !siret.IsEmpty()
}

// Category parses projet.typeProjet.
func (p ProjectInput) Category() Category { return ParseCategory(p.text("projet.typeProjet")) }

// Destination parses projet.destination.
func (p ProjectInput) Destination() Destination {
	return ParseDestination(p.text("projet.destination"))
}

// FloorArea is projet.surfacePlancher in m², 0 when missing.
func (p ProjectInput) FloorArea() float64 { return p.number("projet.surfacePlancher") }

// Footprint is projet.empriseSol in m², 0 when missing.
func (p ProjectInput) Footprint() float64 { return p.number("projet.empriseSol") }

// LandArea is projet.surfaceTerrain in m², 0 when missing.
func (p ProjectInput) LandArea() float64 { return p.number("projet.surfaceTerrain") }

// ProtectedZone reports technique.zoneProtegee.
func (p ProjectInput) ProtectedZone() bool { return p.flag("technique.zoneProtegee") }

// Demolition reports technique.demolition.
func (p ProjectInput) Demolition() bool { return p.flag("technique.demolition") }

// Subcontracting reports technique.sousTraitance.
func (p ProjectInput) Subcontracting() bool { return p.flag("technique.sousTraitance") }

// ProjectPostalCode returns projet.codePostalProjet, trimmed.
func (p ProjectInput) ProjectPostalCode() string {
	return strings.TrimSpace(p.text("projet.codePostalProjet"))
}

// With returns a copy with path set to v.
func (p ProjectInput) With(path string, v Value) ProjectInput {
	return NewProjectInput(p.root.With(path, v))
}

func (p ProjectInput) section(name string) Value {
	v, _ := p.root.Field(name)
	return v
}

func (p ProjectInput) text(path string) string {
	v, _ := p.root.Lookup(path)
	return v.Text()
}

func (p ProjectInput) number(path string) float64 {
	v, _ := p.root.Lookup(path)
	return NumberOrZero(v)
}

func (p ProjectInput) flag(path string) bool {
	v, _ := p.root.Lookup(path)
	return v.Truthy()
}

// mergeRecords overlays top onto base.
func mergeRecords(base, top Value) Value {
	m := make(map[string]Value, len(base.fields)+len(top.fields))
	for k, v := range base.fields {
		m[k] = v
	}
	for k, v := range top.fields {
		m[k] = v
	}
	return Value{kind: KindRecord, fields: m}
}
