package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Known(t *testing.T) {
	e, ok := Lookup(PermitIndividualHome)
	require.True(t, ok)
	assert.Equal(t, PermitIndividualHome, e.ID)
	assert.Equal(t, 60, e.DelayDays)
	assert.Len(t, e.Attachments, 8)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("99999-99")
	assert.False(t, ok)
	assert.Equal(t, UnknownName, Name("99999-99"))
	assert.Equal(t, 0, Delay("99999-99"))
}

func TestLookup_ReturnsCopy(t *testing.T) {
	e, _ := Lookup(PermitGeneral)
	e.Attachments[0] = "mutated"
	e.DelayDays = 1

	again, _ := Lookup(PermitGeneral)
	assert.Equal(t, "PC1 - Plan de situation", again.Attachments[0])
	assert.Equal(t, 90, again.DelayDays)
}

func TestCanonicalDelays(t *testing.T) {
	tests := map[string]int{
		PermitIndividualHome: 60,
		PermitGeneral:        90,
		PriorDeclHome:        30,
		PriorDeclGeneral:     30,
		PermitLandDevelop:    90,
		PermitModification:   60,
		PermitDemolition:     60,
		PublicVenueWorks:     120,
		SiteOpening:          0,
		WorksCompletion:      0,
		ZoningCertificate:    0,
		TenderApplication:    0,
		TenderDeclaration:    0,
		TenderSubcontracting: 0,
	}
	for id, want := range tests {
		t.Run(id, func(t *testing.T) {
			assert.Equal(t, want, Delay(id))
		})
	}
}

func TestAll_SortedWithIDs(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i, e := range all {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Name)
		if i > 0 {
			assert.Less(t, all[i-1].ID, e.ID)
		}
	}
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, "13406-15", NormalizeID("CERFA 13406*15"))
	assert.Equal(t, "13406-15", NormalizeID("cerfa_13406-15"))
	assert.Equal(t, "13406-15", NormalizeID(" 13406-15 "))
	assert.Equal(t, "DC1", NormalizeID("dc1"))
	assert.Equal(t, "13824-04", NormalizeID("Cerfa n°13824-04"))
}
