package utils

import (
	"goldlink-backend/internal/domain"
)

// Gold prices per gram (MAD) by purity grade. Static table, not live market
// data.
var goldPricePerGram = map[domain.PurityGrade]float64{
	domain.PurityK8:  150,
	domain.PurityK10: 200,
	domain.PurityK14: 280,
	domain.PurityK18: 450,
	domain.PurityK22: 550,
	domain.PurityK24: 600,
}

// CommercialMarkup is the flat factor applied on top of raw gold value to
// account for craftsmanship, design and brand. A single uniform policy is
// used everywhere; there is no purity-dependent markup.
const CommercialMarkup = 1.4

// Confidence heuristic: base score plus fixed increments per supplied input,
// capped below 1.
const (
	confidenceBase   = 0.70
	confidenceImages = 0.15
	confidenceWeight = 0.10
	confidencePurity = 0.05
	confidenceCap    = 0.95
)

// Valuation is the result of estimating a gold item.
type Valuation struct {
	GoldValue       float64
	CommercialValue float64
	Confidence      float64
}

// GoldPricePerGram returns the static price per gram for a purity grade.
func GoldPricePerGram(purity domain.PurityGrade) (float64, error) {
	price, ok := goldPricePerGram[purity]
	if !ok {
		return 0, domain.Validationf("unknown purity grade %q", purity)
	}
	return price, nil
}

// EstimateValue computes the gold and commercial value of an item from its
// weight and purity, with a confidence score reflecting how much input
// backed the estimate. Pure function, no storage access.
func EstimateValue(weightGrams float64, purity domain.PurityGrade, hasImages bool) (Valuation, error) {
	if weightGrams <= 0 {
		return Valuation{}, domain.Validation("weight must be positive")
	}
	pricePerGram, err := GoldPricePerGram(purity)
	if err != nil {
		return Valuation{}, err
	}

	goldValue := weightGrams * pricePerGram
	commercialValue := goldValue * CommercialMarkup

	confidence := confidenceBase
	if hasImages {
		confidence += confidenceImages
	}
	confidence += confidenceWeight // weight is known and positive here
	confidence += confidencePurity // purity is a recognized grade here
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return Valuation{
		GoldValue:       goldValue,
		CommercialValue: commercialValue,
		Confidence:      confidence,
	}, nil
}
