package utils

import (
	"math"
	"time"

	"goldlink-backend/internal/domain"
)

const (
	// InsuranceRate is charged on the rental total when insurance is opted in.
	InsuranceRate = 0.05
	// DepositRateOfTotal applies at booking creation: 20% of the rental total.
	DepositRateOfTotal = 0.20
	// DepositRateOfValue applies for preview quotes: 10% of the item's
	// estimated value. The two deposit policies are never mixed on one path.
	DepositRateOfValue = 0.10
)

// RentalQuote is the priced breakdown of a prospective booking.
type RentalQuote struct {
	Days         int32   `json:"days"`
	TotalPrice   float64 `json:"total_price"`
	InsuranceFee float64 `json:"insurance_fee"`
	Deposit      float64 `json:"deposit"`
}

// RentalDays computes the billable day count: ceil((end-start)/24h). Partial
// days round up. Returns a validation failure when end is not strictly after
// start.
func RentalDays(start, end time.Time) (int32, error) {
	if !end.After(start) {
		return 0, domain.Validation("end date must be after start date")
	}
	days := int32(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 0, domain.Validation("rental must cover at least one day")
	}
	return days, nil
}

// BookingPrice computes the rental total, insurance fee and creation-time
// deposit (20% of the total) for a booking being persisted.
func BookingPrice(dailyRate float64, start, end time.Time, insurance bool) (RentalQuote, error) {
	if dailyRate < 0 {
		return RentalQuote{}, domain.Validation("daily rate must be non-negative")
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return RentalQuote{}, err
	}

	total := dailyRate * float64(days)
	fee := 0.0
	if insurance {
		fee = total * InsuranceRate
	}

	return RentalQuote{
		Days:         days,
		TotalPrice:   total,
		InsuranceFee: fee,
		Deposit:      total * DepositRateOfTotal,
	}, nil
}

// PreviewQuote prices a prospective booking for display before checkout. The
// deposit here is value-based: 10% of the item's estimated value.
func PreviewQuote(dailyRate, estimatedValue float64, start, end time.Time, insurance bool) (RentalQuote, error) {
	if dailyRate < 0 {
		return RentalQuote{}, domain.Validation("daily rate must be non-negative")
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return RentalQuote{}, err
	}

	total := dailyRate * float64(days)
	fee := 0.0
	if insurance {
		fee = total * InsuranceRate
	}

	return RentalQuote{
		Days:         days,
		TotalPrice:   total,
		InsuranceFee: fee,
		Deposit:      estimatedValue * DepositRateOfValue,
	}, nil
}
