package rules

func summarize(a Analysis) Summary {
	s := Summary{
		Documents:   len(a.Authorizations),
		Obligations: a.Obligations.Count(),
		DelayDays:   a.DelayDays,
		Compliant:   true,
	}
	for _, auth := range a.Authorizations {
		if auth.Mandatory {
			s.Mandatory++
		}
	}
	for _, al := range a.Alerts {
		if al.Severity == SeverityObligation {
			s.Compliant = false
		}
	}

	s.Complexity = complexity(s.Mandatory, s.Obligations, len(a.Alerts))
	s.Recommendation = globalRecommendation(s.Complexity)
	return s
}

// complexity scores mandatory documents and obligations one point each and
// alerts half a point.
func complexity(mandatory, obligations, alerts int) Complexity {
	score := float64(mandatory+obligations) + 0.5*float64(alerts)
	switch {
	case score <= 3:
		return ComplexitySimple
	case score <= 6:
		return ComplexityModerate
	default:
		return ComplexityComplex
	}
}

func globalRecommendation(c Complexity) string {
	switch c {
	case ComplexitySimple:
		return "Projet standard - Dossier réalisable en interne"
	case ComplexityModerate:
		return "Projet nécessitant une expertise - Prévoir 2-3 mois"
	default:
		return "Projet complexe - Recours à des experts spécialisés recommandé"
	}
}
