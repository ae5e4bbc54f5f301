package domain

import "time"

type JewelryType string

const (
	JewelryTypeNecklace JewelryType = "NECKLACE"
	JewelryTypeBracelet JewelryType = "BRACELET"
	JewelryTypeRing     JewelryType = "RING"
	JewelryTypeEarrings JewelryType = "EARRINGS"
	JewelryTypePendant  JewelryType = "PENDANT"
	JewelryTypeChain    JewelryType = "CHAIN"
)

func ValidJewelryType(t JewelryType) bool {
	switch t {
	case JewelryTypeNecklace, JewelryTypeBracelet, JewelryTypeRing,
		JewelryTypeEarrings, JewelryTypePendant, JewelryTypeChain:
		return true
	}
	return false
}

type ListingType string

const (
	ListingTypeRent     ListingType = "RENT"
	ListingTypeSale     ListingType = "SALE"
	ListingTypeExchange ListingType = "EXCHANGE"
)

func ValidListingType(t ListingType) bool {
	switch t {
	case ListingTypeRent, ListingTypeSale, ListingTypeExchange:
		return true
	}
	return false
}

// PurityGrade is the karat fineness of an item, one of a fixed set.
type PurityGrade string

const (
	PurityK8  PurityGrade = "K8"
	PurityK10 PurityGrade = "K10"
	PurityK14 PurityGrade = "K14"
	PurityK18 PurityGrade = "K18"
	PurityK22 PurityGrade = "K22"
	PurityK24 PurityGrade = "K24"
)

func ValidPurityGrade(p PurityGrade) bool {
	switch p {
	case PurityK8, PurityK10, PurityK14, PurityK18, PurityK22, PurityK24:
		return true
	}
	return false
}

// Karats returns the numeric karat value of the grade, 0 if unknown.
func (p PurityGrade) Karats() int {
	switch p {
	case PurityK8:
		return 8
	case PurityK10:
		return 10
	case PurityK14:
		return 14
	case PurityK18:
		return 18
	case PurityK22:
		return 22
	case PurityK24:
		return 24
	}
	return 0
}

type Jewelry struct {
	ID              int32         `json:"id"`
	OwnerID         int32         `json:"owner_id"`
	Owner           *User         `json:"owner,omitempty"` // populated when fetching details
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Images          []string      `json:"images"`
	Type            JewelryType   `json:"type"`
	WeightGrams     float64       `json:"weight_grams"`
	Purity          PurityGrade   `json:"purity"`
	EstimatedValue  float64       `json:"estimated_value"`
	ListingTypes    []ListingType `json:"listing_types"`
	RentPricePerDay float64       `json:"rent_price_per_day"`
	SalePrice       float64       `json:"sale_price"`
	Available       bool          `json:"available"`
	Location        string        `json:"location"`
	Views           int32         `json:"views"`
	Rating          float64       `json:"rating"`
	ReviewCount     int32         `json:"review_count"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}

// HasListingType reports whether the item is listed under mode t.
func (j *Jewelry) HasListingType(t ListingType) bool {
	for _, lt := range j.ListingTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// ValidateListingPrices enforces the mode/price invariant: RENT requires a
// positive daily rate, SALE requires a positive sale price.
func (j *Jewelry) ValidateListingPrices() error {
	if len(j.ListingTypes) == 0 {
		return Validation("at least one listing type is required")
	}
	for _, lt := range j.ListingTypes {
		if !ValidListingType(lt) {
			return Validationf("unknown listing type %q", lt)
		}
	}
	if j.HasListingType(ListingTypeRent) && j.RentPricePerDay <= 0 {
		return Validation("rent price per day is required for rental listings")
	}
	if j.HasListingType(ListingTypeSale) && j.SalePrice <= 0 {
		return Validation("sale price is required for sale listings")
	}
	return nil
}

// JewelryFilter is the typed search filter for listings. Zero values mean
// "not set"; Limit defaults are applied by the repository.
type JewelryFilter struct {
	Type     JewelryType
	Purity   PurityGrade
	MinPrice float64
	MaxPrice float64
	Location string
	Search   string
	OwnerID  int32
	// OnlyAvailable is forced on for public browsing; owner views see all.
	OnlyAvailable bool
	Limit         int32
	Skip          int32
}
