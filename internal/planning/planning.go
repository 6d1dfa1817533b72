// Package planning lays out the typical calendar of a permit application.
package planning

import (
	"fmt"
	"time"
)

// Phase is one step of the calendar.
type Phase struct {
	Name     string    `json:"name"`
	Duration string    `json:"duration"`
	Start    time.Time `json:"start"`
}

// Schedule is the calendar derived from the review delay.
type Schedule struct {
	ReviewDelayDays   int       `json:"review_delay_days"`
	RecommendedFiling time.Time `json:"recommended_filing"`
	Phases            []Phase   `json:"phases"`
}

const (
	filingMarginDays = 30
	worksOffsetDays  = 70
	daysPerWeek      = 7
)

// Build returns the schedule for a review delay counted from start. Dates
// are truncated to the day in start's location.
func Build(delayDays int, start time.Time) Schedule {
	if delayDays < 0 {
		delayDays = 0
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())

	return Schedule{
		ReviewDelayDays:   delayDays,
		RecommendedFiling: day.AddDate(0, 0, delayDays+filingMarginDays),
		Phases: []Phase{
			{Name: "Études préalables", Duration: "4-8 semaines", Start: day},
			{Name: "Constitution dossier", Duration: "2-4 semaines", Start: day.AddDate(0, 0, 6*daysPerWeek)},
			{Name: "Dépôt et instruction", Duration: fmt.Sprintf("%d jours", delayDays), Start: day.AddDate(0, 0, 10*daysPerWeek)},
			{Name: "Début travaux", Duration: "Après autorisation", Start: day.AddDate(0, 0, delayDays+worksOffsetDays)},
		},
	}
}

// StartDate returns the project's wished filing date when it parses as
// YYYY-MM-DD, otherwise fallback.
func StartDate(wished string, fallback time.Time) time.Time {
	t, err := time.ParseInLocation(time.DateOnly, wished, fallback.Location())
	if err != nil {
		return fallback
	}
	return t
}
