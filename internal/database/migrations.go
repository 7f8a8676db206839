package database

import (
	"fmt"
	"log/slog"
)

func (db *DB) RunMigrations() error {
	slog.Info("Running database migrations...")

	migrations := []string{
		createOrdersTable,
		createTicketGroupsTable,
		createFlightSegmentsTable,
		createPassengerTicketsTable,
		createFlightReviewsTable,
		createAccountActivityTable,
		createOrdersUserIndex,
	}

	for i, migration := range migrations {
		slog.Info("Running migration", "step", i+1)
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	slog.Info("All migrations completed successfully")
	return nil
}

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
    id VARCHAR(64) PRIMARY KEY,
    user_id BIGINT NOT NULL,
    order_date TIMESTAMP NOT NULL,
    status VARCHAR(20) NOT NULL CHECK (status IN ('upcoming', 'completed', 'cancelled')),
    total_amount BIGINT NOT NULL DEFAULT 0,
    currency VARCHAR(3) NOT NULL DEFAULT 'RON'
);`

const createTicketGroupsTable = `
CREATE TABLE IF NOT EXISTS ticket_groups (
    id BIGSERIAL PRIMARY KEY,
    order_id VARCHAR(64) NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    UNIQUE (order_id, position)
);`

const createFlightSegmentsTable = `
CREATE TABLE IF NOT EXISTS flight_segments (
    id BIGSERIAL PRIMARY KEY,
    ticket_group_id BIGINT NOT NULL REFERENCES ticket_groups(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    is_transit BOOLEAN NOT NULL DEFAULT FALSE,
    flight_number VARCHAR(20) NOT NULL,
    airline VARCHAR(100) NOT NULL,
    origin VARCHAR(10) NOT NULL,
    origin_city VARCHAR(100) NOT NULL,
    destination VARCHAR(10) NOT NULL,
    destination_city VARCHAR(100) NOT NULL,
    departure TIMESTAMP NOT NULL,
    arrival TIMESTAMP NOT NULL,
    duration VARCHAR(20) NOT NULL,
    aircraft VARCHAR(100)
);`

const createPassengerTicketsTable = `
CREATE TABLE IF NOT EXISTS passenger_tickets (
    id VARCHAR(64) PRIMARY KEY,
    ticket_group_id BIGINT NOT NULL REFERENCES ticket_groups(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name VARCHAR(200) NOT NULL,
    seat VARCHAR(10) NOT NULL,
    type VARCHAR(20) NOT NULL,
    price BIGINT NOT NULL,
    fare_tier VARCHAR(50)
);`

const createFlightReviewsTable = `
CREATE TABLE IF NOT EXISTS flight_reviews (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    flight_number VARCHAR(20) NOT NULL,
    route VARCHAR(200) NOT NULL,
    rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
    comment TEXT NOT NULL DEFAULT '',
    submitted_at TIMESTAMP NOT NULL
);`

const createAccountActivityTable = `
CREATE TABLE IF NOT EXISTS account_activity (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL,
    kind VARCHAR(50) NOT NULL,
    payload JSONB NOT NULL,
    occurred_at TIMESTAMP NOT NULL
);`

const createOrdersUserIndex = `
CREATE INDEX IF NOT EXISTS idx_orders_user_date ON orders(user_id, order_date DESC);
CREATE INDEX IF NOT EXISTS idx_flight_reviews_flight ON flight_reviews(flight_number);
CREATE INDEX IF NOT EXISTS idx_account_activity_user ON account_activity(user_id, occurred_at DESC);`
