// Package seed holds the built-in account data used when no bookings database is configured.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"myaccount/internal/models"
)

//go:embed data/*.yaml
var files embed.FS

// Orders returns the seeded order history
func Orders() ([]models.Order, error) {
	var orders []models.Order
	if err := load("data/orders.yaml", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Cards returns the payment cards a fresh page starts with
func Cards() ([]models.PaymentCard, error) {
	var cards []models.PaymentCard
	if err := load("data/cards.yaml", &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// Profile returns the committed personal data a fresh page starts with
func Profile() (models.ProfileData, error) {
	var p models.ProfileData
	if err := load("data/profile.yaml", &p); err != nil {
		return models.ProfileData{}, err
	}
	return p, nil
}

func load(name string, out any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read seed %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse seed %s: %w", name, err)
	}
	return nil
}
