package domain

import "time"

type ReviewTargetType string

const (
	ReviewTargetJewelry ReviewTargetType = "JEWELRY"
	ReviewTargetUser    ReviewTargetType = "USER"
)

func ValidReviewTargetType(t ReviewTargetType) bool {
	return t == ReviewTargetJewelry || t == ReviewTargetUser
}

type Review struct {
	ID         int32            `json:"id"`
	ReviewerID int32            `json:"reviewer_id"`
	Reviewer   *User            `json:"reviewer,omitempty"`
	TargetID   int32            `json:"target_id"`
	TargetType ReviewTargetType `json:"target_type"`
	BookingID  *int32           `json:"booking_id,omitempty"`
	Rating     int32            `json:"rating"` // 1..5
	Comment    string           `json:"comment"`
	CreatedOn  time.Time        `json:"created_on"`
}
