package service

import (
	"context"
	"fmt"

	"myaccount/internal/account"
	"myaccount/internal/models"
)

func (s *AccountService) OpenReview(ctx context.Context, sessionID string, req *models.OpenReviewRequest) (*models.ReviewView, error) {
	return s.reviewTransition(ctx, sessionID, "open_review", func(st *account.State) error {
		if err := st.OpenReview(req.FlightNumber, req.Route); err != nil {
			return fmt.Errorf("flight number required: %w", err)
		}
		return nil
	})
}

// ChangeReview applies the star click and/or comment edit in the request
func (s *AccountService) ChangeReview(ctx context.Context, sessionID string, req *models.ReviewDraftRequest) (*models.ReviewView, error) {
	return s.reviewTransition(ctx, sessionID, "change_review", func(st *account.State) error {
		if req.Rating != nil {
			if err := st.SetRating(*req.Rating); err != nil {
				return fmt.Errorf("rating %d: %w", *req.Rating, err)
			}
		}
		if req.Comment != nil {
			if err := st.SetReviewComment(*req.Comment); err != nil {
				return err
			}
		}
		return nil
	})
}

// SubmitReview hands the draft to the review service and closes the dialog
func (s *AccountService) SubmitReview(ctx context.Context, sessionID string) (*models.ReviewView, error) {
	var submitted *models.ReviewDraft
	view, err := s.reviewTransition(ctx, sessionID, "submit_review", func(st *account.State) error {
		payload, err := st.SubmitReview()
		if err != nil {
			return err
		}
		submitted = &payload
		return nil
	})

	if err == nil && submitted != nil {
		s.publish(ctx, models.EventReviewSubmitted, models.ReviewSubmittedEvent{
			UserID:       s.seed.UserID,
			FlightNumber: submitted.FlightNumber,
			Route:        submitted.Route,
			Rating:       submitted.Rating,
			Comment:      submitted.Comment,
			Timestamp:    s.now(),
		})
	}
	return view, err
}

func (s *AccountService) CloseReview(ctx context.Context, sessionID string) (*models.ReviewView, error) {
	return s.reviewTransition(ctx, sessionID, "close_review", func(st *account.State) error {
		st.CloseReview()
		return nil
	})
}

func (s *AccountService) reviewTransition(ctx context.Context, sessionID, name string, fn func(*account.State) error) (*models.ReviewView, error) {
	var view *models.ReviewView
	err := s.apply(ctx, sessionID, name, func(st *account.State) error {
		err := fn(st)
		v := st.ReviewView()
		view = &v
		return err
	})
	return view, err
}
