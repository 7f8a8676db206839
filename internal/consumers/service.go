package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nats-io/stan.go"

	"myaccount/internal/config"
	"myaccount/internal/database"
	"myaccount/internal/messaging"
	"myaccount/internal/repository"
)

const (
	queueGroup     = "account-consumers"
	handlerTimeout = 10 * time.Second
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	handlers *Handlers
	subs     []stan.Subscription
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Consumers are useless without a broker
	natsCfg := cfg.NATS
	natsCfg.Enabled = true
	natsCfg.ClientID = natsCfg.ClientID + "-consumers"

	natsClient, err := messaging.NewNATSClient(natsCfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	handlers := NewHandlers(
		repository.NewReviewRepository(db),
		repository.NewActivityRepository(db),
	)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	subjects := cs.handlers.Subjects()
	names := make([]string, 0, len(subjects))
	for subject := range subjects {
		names = append(names, subject)
	}
	sort.Strings(names)

	for _, subject := range names {
		sub, err := cs.nats.SubscribeQueue(subject, queueGroup, msgHandler(subject, handlerTimeout, subjects[subject]))
		if err != nil {
			return err
		}
		cs.subs = append(cs.subs, sub)
	}

	slog.Info("All consumers started successfully", "subjects", len(cs.subs))
	return nil
}

func (cs *ConsumerService) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down consumer service...")

	// Close keeps the durable queue position; Unsubscribe would drop it
	for _, sub := range cs.subs {
		if err := sub.Close(); err != nil {
			slog.Error("Error closing subscription", "error", err)
		}
	}

	if cs.nats != nil {
		if err := cs.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if cs.db != nil {
		if err := cs.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
