package model

import "strings"

// Category is the nature of the works, as chosen in the first wizard step.
type Category string

const (
	CategoryUnknown      Category = ""
	CategoryNewBuild     Category = "construction_neuve"
	CategoryExtension    Category = "extension"
	CategoryRenovation   Category = "renovation"
	CategoryLandImprove  Category = "amenagement"
	CategoryAmendment    Category = "modification"
	CategoryTransfer     Category = "transfert"
	CategoryDemolition   Category = "demolition"
	CategoryPublicTender Category = "appel_offres_public"
)

var categoryAliases = map[string]Category{
	"construction_neuve":  CategoryNewBuild,
	"new_build":           CategoryNewBuild,
	"extension":           CategoryExtension,
	"renovation":          CategoryRenovation,
	"amenagement":         CategoryLandImprove,
	"land_improvement":    CategoryLandImprove,
	"modification":        CategoryAmendment,
	"amendment":           CategoryAmendment,
	"transfert":           CategoryTransfer,
	"transfer":            CategoryTransfer,
	"demolition":          CategoryDemolition,
	"appel_offres_public": CategoryPublicTender,
	"public_tender":       CategoryPublicTender,
}

// ParseCategory maps a wire value (French or English spelling) to a
// Category. Unrecognized values yield CategoryUnknown.
func ParseCategory(s string) Category {
	return categoryAliases[strings.ToLower(strings.TrimSpace(s))]
}

// Categories lists the known categories in wizard order.
func Categories() []Category {
	return []Category{
		CategoryNewBuild, CategoryExtension, CategoryRenovation, CategoryLandImprove,
		CategoryAmendment, CategoryTransfer, CategoryDemolition, CategoryPublicTender,
	}
}

// Destination is the use category of the building under the planning code.
type Destination string

const (
	DestinationUnknown     Destination = ""
	DestinationHousing     Destination = "habitation"
	DestinationCommerce    Destination = "commerce"
	DestinationCraft       Destination = "artisanat"
	DestinationIndustry    Destination = "industrie"
	DestinationFarming     Destination = "exploitation_agricole"
	DestinationWarehouse   Destination = "entrepot"
	DestinationOffice      Destination = "bureau"
	DestinationPublicSvc   Destination = "service_public"
	DestinationPublicVenue Destination = "erp"
	DestinationOther       Destination = "autre"
)

var destinationAliases = map[string]Destination{
	"habitation":            DestinationHousing,
	"residential":           DestinationHousing,
	"commerce":              DestinationCommerce,
	"commercial":            DestinationCommerce,
	"artisanat":             DestinationCraft,
	"industrie":             DestinationIndustry,
	"industrial":            DestinationIndustry,
	"exploitation_agricole": DestinationFarming,
	"entrepot":              DestinationWarehouse,
	"warehouse":             DestinationWarehouse,
	"bureau":                DestinationOffice,
	"office":                DestinationOffice,
	"service_public":        DestinationPublicSvc,
	"erp":                   DestinationPublicVenue,
	"public_accommodation":  DestinationPublicVenue,
	"autre":                 DestinationOther,
	"other":                 DestinationOther,
}

// ParseDestination maps a wire value to a Destination. Unrecognized values
// yield DestinationUnknown.
func ParseDestination(s string) Destination {
	return destinationAliases[strings.ToLower(strings.TrimSpace(s))]
}
