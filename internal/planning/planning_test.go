package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild(t *testing.T) {
	s := Build(60, time.Date(2025, 1, 10, 15, 45, 0, 0, time.UTC))

	assert.Equal(t, 60, s.ReviewDelayDays)
	assert.Equal(t, date(2025, 4, 10), s.RecommendedFiling)

	require.Len(t, s.Phases, 4)
	assert.Equal(t, "Études préalables", s.Phases[0].Name)
	assert.Equal(t, date(2025, 1, 10), s.Phases[0].Start)
	assert.Equal(t, date(2025, 2, 21), s.Phases[1].Start)
	assert.Equal(t, date(2025, 3, 21), s.Phases[2].Start)
	assert.Equal(t, "60 jours", s.Phases[2].Duration)
	assert.Equal(t, date(2025, 5, 20), s.Phases[3].Start)
}

func TestBuild_NegativeDelay(t *testing.T) {
	s := Build(-5, date(2025, 1, 1))
	assert.Equal(t, 0, s.ReviewDelayDays)
	assert.Equal(t, date(2025, 1, 31), s.RecommendedFiling)
}

func TestStartDate(t *testing.T) {
	now := date(2025, 6, 1)
	assert.Equal(t, date(2025, 9, 15), StartDate("2025-09-15", now))
	assert.Equal(t, now, StartDate("septembre", now))
	assert.Equal(t, now, StartDate("", now))
}
