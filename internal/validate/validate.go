// Package validate holds the syntactic checks applied to project files
// before analysis. The decision engine never depends on them.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Bist0uille/archibot/internal/model"
)

var (
	postalCodePattern = regexp.MustCompile(`^\d{5}$`)
	siretPattern      = regexp.MustCompile(`^\d{14}$`)
	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	datePattern       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Messages reported by Project.
const (
	MsgClientLastName  = "Le nom du client est obligatoire"
	MsgClientFirstName = "Le prénom du client est obligatoire"
	MsgClientAddress   = "L'adresse du client est obligatoire"
	MsgPostalCode      = "Code postal invalide (doit être 5 chiffres)"
	MsgClientCity      = "La ville du client est obligatoire"
	MsgEmail           = "Adresse email invalide"
	MsgSiret           = "Numéro SIRET invalide (doit être 14 chiffres)"
	MsgBirthDate       = "Date de naissance invalide (format YYYY-MM-DD)"
	MsgProjectType     = "Le type de projet est obligatoire"
	MsgProjectAddress  = "L'adresse du projet est obligatoire"
	MsgLandArea        = "Surface terrain invalide"
	MsgFloorArea       = "Surface plancher invalide"
	MsgHeight          = "Hauteur bâtiment invalide"
	MsgLevels          = "Nombre de niveaux invalide"
	MsgFilingDate      = "Date de dépôt souhaitée invalide (format YYYY-MM-DD)"
)

// PostalCode reports whether code is a five digit French postal code.
func PostalCode(code string) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(code))
}

// SIRET reports whether siret is empty or fourteen digits once spaces and
// hyphens are removed.
func SIRET(siret string) bool {
	if siret == "" {
		return true
	}
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(siret)
	return siretPattern.MatchString(cleaned)
}

// Email reports whether email is empty or a plausible address.
func Email(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// Date reports whether s is empty or written YYYY-MM-DD.
func Date(s string) bool {
	if s == "" {
		return true
	}
	return datePattern.MatchString(strings.TrimSpace(s))
}

// Numeric reports whether v is absent or a non-negative number. Numeric
// strings are accepted; anything else is rejected.
func Numeric(v model.Value, name string) bool {
	switch v.Kind() {
	case model.KindAbsent:
		return true
	case model.KindNumber:
		return nonNegative(model.NumberOrZero(v), name)
	case model.KindString:
		s := strings.TrimSpace(v.Text())
		if s == "" {
			return true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			zap.L().Debug("validate: non-numeric value", zap.String("field", name), zap.String("value", s))
			return false
		}
		return nonNegative(f, name)
	default:
		zap.L().Debug("validate: non-numeric value", zap.String("field", name), zap.String("kind", kindName(v)))
		return false
	}
}

func nonNegative(f float64, name string) bool {
	if f < 0 {
		zap.L().Debug("validate: negative value", zap.String("field", name), zap.Float64("value", f))
		return false
	}
	return true
}

func kindName(v model.Value) string {
	switch v.Kind() {
	case model.KindBool:
		return "bool"
	case model.KindRecord:
		return "record"
	default:
		return "other"
	}
}

// Project checks a project file and returns the French messages shown to
// the user, in form order. An empty slice means the file is usable.
func Project(p model.ProjectInput) []string {
	var errs []string
	text := func(path string) string {
		v, ok := p.Lookup(path)
		if !ok || !v.IsScalar() {
			return ""
		}
		return strings.TrimSpace(v.Text())
	}
	required := func(path, msg string) {
		if text(path) == "" {
			errs = append(errs, msg)
		}
	}
	check := func(path string, ok func(string) bool, msg string) {
		if s := text(path); s != "" && !ok(s) {
			errs = append(errs, msg)
		}
	}
	numeric := func(path, name, msg string) {
		v, _ := p.Lookup(path)
		if !Numeric(v, name) {
			errs = append(errs, msg)
		}
	}

	// Client.
	required("client.nom", MsgClientLastName)
	required("client.prenom", MsgClientFirstName)
	required("client.adresse", MsgClientAddress)
	check("client.codePostal", PostalCode, MsgPostalCode)
	required("client.ville", MsgClientCity)
	check("client.email", Email, MsgEmail)
	check("client.numeroSiret", SIRET, MsgSiret)
	check("client.dateNaissance", Date, MsgBirthDate)

	// Project.
	required("projet.typeProjet", MsgProjectType)
	required("projet.adresseProjet", MsgProjectAddress)
	numeric("projet.surfaceTerrain", "surface terrain", MsgLandArea)
	numeric("projet.surfacePlancher", "surface plancher", MsgFloorArea)
	numeric("projet.hauteurBatiment", "hauteur bâtiment", MsgHeight)
	numeric("projet.nombreNiveaux", "nombre de niveaux", MsgLevels)
	check("projet.dateDepotSouhaitee", Date, MsgFilingDate)

	return errs
}
