package service

import (
	"context"
	"time"

	"myaccount/internal/models"
	"myaccount/internal/repository"
)

// CredentialVerifier checks the account's current password
type CredentialVerifier interface {
	Verify(ctx context.Context, userID int64, password string) (bool, error)
}

// EventPublisher hands committed account changes to the broker
type EventPublisher interface {
	Publish(subject string, data interface{}) error
}

// AccountSeed is the data every freshly mounted page starts from
type AccountSeed struct {
	UserID  int64
	Profile models.ProfileData
	Cards   []models.PaymentCard
}

type Services struct {
	Account *AccountService
}

func NewServices(repos *repository.Repositories, identity CredentialVerifier, publisher EventPublisher, seed AccountSeed) *Services {
	return &Services{
		Account: NewAccountService(repos.Orders, repos.Sessions, identity, publisher, seed, time.Now),
	}
}
