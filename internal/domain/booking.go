package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusDispute   BookingStatus = "DISPUTE"
)

func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive,
		BookingStatusCompleted, BookingStatusCancelled, BookingStatusDispute:
		return true
	}
	return false
}

// bookingTransitions is the allowed status graph. COMPLETED and CANCELLED
// are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled, BookingStatusDispute},
	BookingStatusActive:    {BookingStatusCompleted, BookingStatusDispute},
	BookingStatusDispute:   {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns a validation failure for an unknown target
// status and a state-conflict failure for a forbidden edge.
func ValidateTransition(from, to BookingStatus) error {
	if !ValidBookingStatus(to) {
		return Validationf("unknown booking status %q", to)
	}
	if !CanTransition(from, to) {
		return Conflict(string(from) + " booking cannot move to " + string(to))
	}
	return nil
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0 && ValidBookingStatus(s)
}

type Booking struct {
	ID        int32    `json:"id"`
	JewelryID int32    `json:"jewelry_id"`
	Jewelry   *Jewelry `json:"jewelry,omitempty"` // populated when fetching details
	RenterID  int32    `json:"renter_id"`
	// OwnerID is snapshotted from the jewelry at creation time.
	OwnerID   int32     `json:"owner_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// TotalPrice and Deposit are computed once at creation and never change.
	TotalPrice   float64       `json:"total_price"`
	Deposit      float64       `json:"deposit"`
	Insurance    bool          `json:"insurance"`
	InsuranceFee float64       `json:"insurance_fee"`
	Status       BookingStatus `json:"status"`
	CreatedOn    time.Time     `json:"created_on"`
	UpdatedOn    time.Time     `json:"updated_on"`
}
