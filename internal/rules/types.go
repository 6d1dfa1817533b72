package rules

// Severity ranks a compliance alert.
type Severity string

const (
	SeverityObligation Severity = "obligation"
	SeverityWarning    Severity = "warning"
	SeverityInfo       Severity = "information"
)

// Alert codes.
const (
	AlertArchitectIndividual  = "architect_individual"
	AlertArchitectLegalEntity = "architect_legal_entity"
	AlertThermalStudy         = "thermal_study"
	AlertSoilStudy            = "soil_study"
	AlertHeritageOpinion      = "heritage_opinion"
	AlertReviewExtended       = "review_extended"
)

// Alert is a compliance warning raised by the analysis.
type Alert struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Citation string   `json:"citation,omitempty"`
}

// Authorization is one form the project must (or may) file.
type Authorization struct {
	DocumentID      string   `json:"document_id"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	ReviewDelayDays int      `json:"review_delay_days"`
	Mandatory       bool     `json:"mandatory"`
	Citation        string   `json:"citation,omitempty"`
	Attachments     []string `json:"attachments,omitempty"`
}

// Obligations lists the regulatory duties triggered by the project.
type Obligations struct {
	Architect         bool `json:"architect"`
	ThermalStudy      bool `json:"thermal_study"`
	SoilStudy         bool `json:"soil_study"`
	HeritageOpinion   bool `json:"heritage_opinion"`
	Accessibility     bool `json:"accessibility"`
	Dematerialisation bool `json:"dematerialisation"`
}

// Count returns how many obligations are set.
func (o Obligations) Count() int {
	n := 0
	for _, b := range []bool{o.Architect, o.ThermalStudy, o.SoilStudy, o.HeritageOpinion, o.Accessibility, o.Dematerialisation} {
		if b {
			n++
		}
	}
	return n
}

// Complexity grades how demanding the file is to assemble.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderee"
	ComplexityComplex  Complexity = "complexe"
)

// Summary condenses an analysis for dashboards and reports.
type Summary struct {
	Documents      int        `json:"documents"`
	Mandatory      int        `json:"mandatory"`
	Obligations    int        `json:"obligations"`
	DelayDays      int        `json:"delay_days"`
	Complexity     Complexity `json:"complexity"`
	Compliant      bool       `json:"compliant"` // no obligation-level alert outstanding
	Recommendation string     `json:"recommendation"`
}

// Analysis is the outcome of Analyze.
type Analysis struct {
	Authorizations  []Authorization `json:"authorizations"`
	Alerts          []Alert         `json:"alerts"`
	DelayDays       int             `json:"delay_days"`
	Obligations     Obligations     `json:"obligations"`
	Recommendations []string        `json:"recommendations"`
	Summary         Summary         `json:"summary"`
}

// Mandatory returns the identifiers of the mandatory documents, in order.
func (a Analysis) Mandatory() []string {
	var ids []string
	for _, auth := range a.Authorizations {
		if auth.Mandatory {
			ids = append(ids, auth.DocumentID)
		}
	}
	return ids
}

// DocumentIDs returns every selected document identifier, in order.
func (a Analysis) DocumentIDs() []string {
	ids := make([]string, 0, len(a.Authorizations))
	for _, auth := range a.Authorizations {
		ids = append(ids, auth.DocumentID)
	}
	return ids
}

// HasAlert reports whether an alert with code was raised.
func (a Analysis) HasAlert(code string) bool {
	for _, al := range a.Alerts {
		if al.Code == code {
			return true
		}
	}
	return false
}
