package account

import (
	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = MaxRating
)

// ReviewDialog is the leave-review modal, scoped to one flight
type ReviewDialog struct {
	Open  bool               `json:"open"`
	Draft models.ReviewDraft `json:"draft"`
}

// OpenReview starts a fresh draft for the given flight
func (s *State) OpenReview(flightNumber, route string) error {
	if flightNumber == "" {
		return apperrors.ErrBadInput
	}
	s.Review = ReviewDialog{
		Open: true,
		Draft: models.ReviewDraft{
			FlightNumber: flightNumber,
			Route:        route,
			Rating:       DefaultRating,
		},
	}
	s.syncScrollLock()
	return nil
}

// SetRating is the star click
func (s *State) SetRating(rating int) error {
	if !s.Review.Open {
		return apperrors.ErrInvalidTransition
	}
	if rating < MinRating || rating > MaxRating {
		return apperrors.ErrBadInput
	}
	s.Review.Draft.Rating = rating
	return nil
}

func (s *State) SetReviewComment(comment string) error {
	if !s.Review.Open {
		return apperrors.ErrInvalidTransition
	}
	s.Review.Draft.Comment = comment
	return nil
}

// SubmitReview returns the payload for the review service and resets the dialog
func (s *State) SubmitReview() (models.ReviewDraft, error) {
	if !s.Review.Open {
		return models.ReviewDraft{}, apperrors.ErrInvalidTransition
	}
	payload := s.Review.Draft
	s.CloseReview()
	return payload, nil
}

// CloseReview discards the draft
func (s *State) CloseReview() {
	s.Review = ReviewDialog{Draft: models.ReviewDraft{Rating: DefaultRating}}
	s.syncScrollLock()
}
