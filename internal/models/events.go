package models

import "time"

// NATS Event Types
const (
	EventReviewSubmitted    = "review.submitted"
	EventProfileUpdated     = "profile.updated"
	EventPasswordChanged    = "password.changed"
	EventCardAdded          = "card.added"
	EventCardDeleted        = "card.deleted"
	EventCardPrimaryChanged = "card.primary_changed"
)

// ReviewSubmittedEvent is the payload handed to the review service
type ReviewSubmittedEvent struct {
	UserID       int64     `json:"user_id"`
	FlightNumber string    `json:"flight_number"`
	Route        string    `json:"route"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Timestamp    time.Time `json:"timestamp"`
}

// ProfileUpdatedEvent represents a committed personal data edit
type ProfileUpdatedEvent struct {
	UserID    int64       `json:"user_id"`
	Profile   ProfileData `json:"profile"`
	Timestamp time.Time   `json:"timestamp"`
}

// PasswordChangedEvent represents an accepted password change. The password itself is never published.
type PasswordChangedEvent struct {
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CardAddedEvent represents a card appended to the collection
type CardAddedEvent struct {
	UserID    int64       `json:"user_id"`
	Card      PaymentCard `json:"card"`
	Timestamp time.Time   `json:"timestamp"`
}

// CardDeletedEvent represents a confirmed card deletion
type CardDeletedEvent struct {
	UserID    int64     `json:"user_id"`
	CardID    int64     `json:"card_id"`
	Timestamp time.Time `json:"timestamp"`
}

// CardPrimaryChangedEvent represents a new primary card selection
type CardPrimaryChangedEvent struct {
	UserID    int64     `json:"user_id"`
	CardID    int64     `json:"card_id"`
	Timestamp time.Time `json:"timestamp"`
}
