package rules

// Regulatory thresholds, in m² unless stated otherwise.
const (
	// Individuals may file a PCMI up to this floor area; above it an
	// architect is compulsory (L431-3).
	IndividualHomeMaxFloor = 150.0

	// Extension tiers: [0, ExtensionMinorMax], (ExtensionMinorMax,
	// ExtensionDeclarationMax], above ExtensionDeclarationMax.
	ExtensionMinorMax       = 20.0
	ExtensionDeclarationMax = 40.0

	// Renovation adds a full permit above this floor area.
	RenovationPermitFloor = 40.0

	// Land improvement switches from declaration to PA above this land area.
	LandDeclarationMax = 2500.0

	ThermalStudyFloor = 50.0 // RE2020
	SoilStudyLand     = 1000.0
	GeotechnicalFloor = 100.0
	ImpactStudyFloor  = 1000.0

	// ProtectedZoneExtraDays is added to the review delay when the heritage
	// authority (ABF) must give an opinion.
	ProtectedZoneExtraDays = 15
)

// largeCommunePrefixes are departments whose communes are assumed to exceed
// 3 500 inhabitants, which makes electronic filing compulsory for
// organizations (L423-3). An INSEE lookup would replace this.
var largeCommunePrefixes = []string{"75", "69", "13", "33", "31", "59", "92", "93", "94"}
