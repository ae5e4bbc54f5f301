package domain

import "time"

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusRefunded  TransactionStatus = "REFUNDED"
	TransactionStatusDisputed  TransactionStatus = "DISPUTED"
)

type TransactionType string

const (
	TransactionTypeRent    TransactionType = "RENT"
	TransactionTypeSale    TransactionType = "SALE"
	TransactionTypeDeposit TransactionType = "DEPOSIT"
	TransactionTypeRefund  TransactionType = "REFUND"
)

// CommissionRate is the platform's fixed cut of a completed transaction.
const CommissionRate = 0.10

type Transaction struct {
	ID         int32             `json:"id"`
	BookingID  *int32            `json:"booking_id,omitempty"`
	JewelryID  *int32            `json:"jewelry_id,omitempty"`
	BuyerID    int32             `json:"buyer_id"`
	SellerID   int32             `json:"seller_id"`
	Amount     float64           `json:"amount"`
	Commission float64           `json:"commission"`
	Status     TransactionStatus `json:"status"`
	Type       TransactionType   `json:"type"`
	CreatedOn  time.Time         `json:"created_on"`
}
