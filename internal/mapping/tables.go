package mapping

import (
	"sort"

	"github.com/Bist0uille/archibot/internal/catalog"
)

// Field names shared by the urbanism forms (13406, 13405, 13407, 13408,
// 13410, 16702). The ERP and medical forms use their own names.
const (
	fieldLastName     = "D1N_nom"
	fieldFirstName    = "D1P_prenom"
	fieldBirthDate    = "D1A_naissance"
	fieldBirthPlace   = "D1C_commune"
	fieldStreet       = "D3V_voie"
	fieldPostalCode   = "D3C_code"
	fieldCity         = "D3L_localite"
	fieldPhone        = "D3T_telephone"
	fieldEmail        = "D5GE1_email"
	fieldSiret        = "D2S_siret"
	fieldSiteStreet   = "T2V_voie"
	fieldSitePostal   = "T2C_code"
	fieldSiteCity     = "T2L_localite"
	fieldSiteSection  = "T2S_section"
	fieldSiteArea     = "T2T_superficie"
	fieldHeritageZone = "X1A_ABF"
)

// applicant returns the client entries common to the urbanism forms.
func applicant(withBirth, withPhone bool) []entry {
	es := []entry{
		on("client.nom", Direct(fieldLastName)),
		on("client.prenom", Direct(fieldFirstName)),
	}
	if withBirth {
		es = append(es,
			on("client.dateNaissance", Direct(fieldBirthDate)),
			on("client.lieuNaissance", Direct(fieldBirthPlace)),
		)
	}
	es = append(es,
		on("client.adresse", Direct(fieldStreet)),
		on("client.codePostal", Direct(fieldPostalCode)),
		on("client.ville", Direct(fieldCity)),
	)
	if withPhone {
		es = append(es, on("client.telephone", Direct(fieldPhone)))
	}
	return append(es,
		on("client.email", Direct(fieldEmail)),
		on("client.numeroSiret", Direct(fieldSiret)),
	)
}

// site returns the land parcel entries.
func site() []entry {
	return []entry{
		on("projet.adresseProjet", Direct(fieldSiteStreet)),
		on("projet.codePostalProjet", Direct(fieldSitePostal)),
		on("projet.villeProjet", Direct(fieldSiteCity)),
		on("projet.referenceCadastrale", Direct(fieldSiteSection)),
		on("projet.surfaceTerrain", Direct(fieldSiteArea)),
	}
}

// siteAsApplicant maps the project address onto the applicant block, as the
// site opening and completion forms only have one address.
func siteAsApplicant() []entry {
	return []entry{
		on("projet.adresseProjet", Direct(fieldStreet)),
		on("projet.codePostalProjet", Direct(fieldPostalCode)),
		on("projet.villeProjet", Direct(fieldCity)),
	}
}

func join(groups ...[]entry) []entry {
	var out []entry
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

const medicalPrefix = "topmostSubform[0].Page1[0]."

var tables = map[string]*Table{
	catalog.PermitIndividualHome: mustTable(join(
		[]entry{on("client.civilite", Select(map[string]string{
			"M.":  "D1M_monsieur",
			"Mme": "D1F_madame",
		}))},
		applicant(true, true),
		site(),
		[]entry{
			on("projet.typeProjet", Select(map[string]string{
				"construction_neuve": "C2ZA1_neuve",
				"extension":          "C2ZA2_extension",
				"renovation":         "C2ZA3_amenagement",
			})),
			on("projet.destination", Select(map[string]string{
				"habitation": "C2ZR1_destination",
				"commerce":   "C2ZR2_destination",
				"industrie":  "C2ZR3_destination",
				"erp":        "C2ZR4_destination",
				"bureau":     "C2ZR5_destination",
				"entrepot":   "C2ZR6_destination",
			})),
			on("projet.surfacePlancher", Direct("C5ZK1_extension")),
			on("projet.empriseSol", Direct("C5ZJ1_emprise")),
			on("projet.hauteurBatiment", Unmapped()),
			on("projet.nombreNiveaux", Direct("C5ZB2_niveaux")),
			on("technique.zoneProtegee", Direct(fieldHeritageZone)),
			on("technique.demolition", Direct("C2ZC2_demolir")),
		},
	)...),

	"14880-02": mustTable(
		on("client.nom", Direct(medicalPrefix+"txt_nom[0]")),
		on("client.prenom", Direct(medicalPrefix+"txt_prenom[0]")),
		on("client.dateNaissance.jour", Direct(medicalPrefix+"txt_jour[0]")),
		on("client.dateNaissance.mois", Direct(medicalPrefix+"txt_mois[0]")),
		on("client.dateNaissance.annee", Direct(medicalPrefix+"txt_annee[0]")),
		on("client.lieuNaissance", Direct(medicalPrefix+"txt_communenaiss[0]")),
		on("client.adresse", Direct(medicalPrefix+"txt_adresseNom[0]")),
		on("client.codePostal", Direct(medicalPrefix+"txt_cp[0]")),
		on("client.ville", Direct(medicalPrefix+"txt_commune[0]")),
		on("client.telephone", Direct(medicalPrefix+"txt_num[0]")),
		on("client.email", Direct(medicalPrefix+"txt_courriel[0]")),
		on("client.civilite", Select(map[string]string{
			"M.":  medicalPrefix + "btn_sexe[0]",
			"Mme": medicalPrefix + "btn_sexe[1]",
		})),
		on("client.profession", Unmapped()),
		on("client.numeroSiret", Unmapped()),
	),

	catalog.PermitDemolition: mustTable(join(
		applicant(true, true),
		site(),
		[]entry{
			on("technique.demolition", Direct("K1J_travaux")),
			on("technique.zoneProtegee", Direct(fieldHeritageZone)),
		},
	)...),

	catalog.SiteOpening: mustTable(join(
		applicant(false, false),
		siteAsApplicant(),
		[]entry{on("projet.dateDepotSouhaitee", Direct("C9B_ouverture"))},
	)...),

	catalog.ZoningCertificate: mustTable(join(
		applicant(false, true),
		site(),
		[]entry{
			on("projet.typeProjet", Direct("C2UD4_nature")),
			on("projet.destination", Direct("C2ZD1_description")),
		},
	)...),

	catalog.PublicVenueWorks: mustTable(
		on("client.nom", Direct("Nom")),
		on("client.prenom", Direct("Prnom")),
		on("client.dateNaissance", Direct("Date de naissance")),
		on("client.adresse", Direct("Adresse Numro")),
		on("client.codePostal", Direct("CP")),
		on("client.ville", Direct("Localit")),
		on("client.telephone", Direct("Tlphone portable_2")),
		on("client.email", Direct("courriel_1")),
		on("client.profession", Direct("Activit principale exerce dans ltablissement par tages 1")),
		on("client.numeroSiret", Direct("Siret")),
		on("projet.adresseProjet", Direct("Adresse Numro")),
		on("projet.codePostalProjet", Direct("CP")),
		on("projet.villeProjet", Direct("Localit")),
		on("projet.surfacePlancher", Direct("Surface de plancher aprs travaux")),
		on("projet.typeProjet", Direct("Construction neuve")),
		on("projet.destination", Direct("Types de locaux local  taux doccupation1er tage")),
		on("technique.demolition", Direct("Travaux damnagement remplacement de revtements rnovation lectrique cration dune rampe par exemple")),
		on("technique.zoneProtegee", Direct(fieldHeritageZone)),
	),

	catalog.PriorDeclWorks: mustTable(join(
		applicant(true, true),
		site(),
		[]entry{
			on("projet.surfacePlancher", Direct("C5ZK1_extension")),
			on("projet.typeProjet", Direct("C2ZR1_destination")),
			on("projet.destination", Direct("C2ZR1_destination")),
			on("technique.demolition", Direct("C2ZC3_cloture")),
			on("technique.zoneProtegee", Direct(fieldHeritageZone)),
		},
	)...),

	catalog.WorksCompletion: mustTable(join(
		applicant(false, false),
		siteAsApplicant(),
		[]entry{
			on("projet.dateDepotSouhaitee", Direct("C9A_acheve")),
			on("technique.architecte.nom", Direct("E4S_signaturearchi")),
			on("technique.architecte.adresse", Direct("E4G_lieuarchi")),
			on("technique.date_signature", Direct("E4D_datearcchi")),
		},
	)...),
}

// issuerTable maps the practice profile onto the architect block shared by
// the urbanism forms.
var issuerTable = mustTable(
	on("architecte.nom", Direct("H1N_nom")),
	on("architecte.prenom", Direct("H1P_prenom")),
	on("architecte.email", Direct("H1AE1_email")),
	on("architecte.telephone", Direct("H1T_telephone")),
	on("societe.raison_sociale", Direct("H2R_raison")),
	on("societe.siret", Direct("H2S_siret")),
	on("societe.adresse.numero", Direct("H1Q_numero")),
	on("societe.adresse.voie", Direct("H1V_voie")),
	on("societe.adresse.code_postal", Direct("H1C_code")),
	on("societe.adresse.ville", Direct("H1L_localite")),
	on("ordre_architectes.numero_national", Direct("H1K_ordre")),
	on("ordre_architectes.conseil_regional", Direct("H1R_conseil")),
)

// Lookup returns the table of a document.
func Lookup(docID string) (*Table, bool) {
	t, ok := tables[docID]
	return t, ok
}

// IssuerTable returns the practice profile table.
func IssuerTable() *Table { return issuerTable }

// Documents lists the ids that have a field table, sorted.
func Documents() []string {
	ids := make([]string, 0, len(tables))
	for id := range tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
