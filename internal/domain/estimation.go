package domain

import "time"

type Estimation struct {
	ID          int32       `json:"id"`
	UserID      int32       `json:"user_id"`
	Images      []string    `json:"images"`
	WeightGrams float64     `json:"weight_grams"`
	Purity      PurityGrade `json:"purity"`
	// GoldValue and CommercialValue are derived once at creation.
	GoldValue       float64 `json:"estimated_gold_value"`
	CommercialValue float64 `json:"estimated_commercial_value"`
	// Confidence is a heuristic score in [0,1].
	Confidence float64 `json:"confidence"`
	// Certified is always false at creation; only the certification
	// workflow may set it.
	Certified bool      `json:"certified"`
	CreatedOn time.Time `json:"created_on"`
}
