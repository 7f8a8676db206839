package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"myaccount/internal/database"
	"myaccount/internal/models"
)

// OrderRepository reads the order history from the bookings database
type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListByUserID returns the user's orders, newest first, with tickets, segments and passengers
func (r *OrderRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `
		SELECT id, order_date, status, total_amount, currency
		FROM orders
		WHERE user_id = $1
		ORDER BY order_date DESC`

	rows, err := r.db.QueryWithRetry(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	index := map[string]int{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Currency); err != nil {
			return nil, err
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	orderIDs := make([]string, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	groups, err := r.ticketGroups(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket groups: %w", err)
	}
	for _, g := range groups {
		i := index[g.orderID]
		orders[i].Tickets = append(orders[i].Tickets, g.group)
	}

	return orders, nil
}

type loadedGroup struct {
	id      int64
	orderID string
	group   models.TicketGroup
}

func (r *OrderRepository) ticketGroups(ctx context.Context, orderIDs []string) ([]*loadedGroup, error) {
	query := `
		SELECT id, order_id
		FROM ticket_groups
		WHERE order_id = ANY($1)
		ORDER BY order_id, position`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []*loadedGroup
	byID := map[int64]*loadedGroup{}
	for rows.Next() {
		g := &loadedGroup{}
		if err := rows.Scan(&g.id, &g.orderID); err != nil {
			return nil, err
		}
		groups = append(groups, g)
		byID[g.id] = g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return groups, nil
	}

	groupIDs := make([]int64, len(groups))
	for i, g := range groups {
		groupIDs[i] = g.id
	}

	if err := r.loadSegments(ctx, groupIDs, byID); err != nil {
		return nil, fmt.Errorf("failed to load flight segments: %w", err)
	}
	if err := r.loadPassengers(ctx, groupIDs, byID); err != nil {
		return nil, fmt.Errorf("failed to load passengers: %w", err)
	}

	return groups, nil
}

func (r *OrderRepository) loadSegments(ctx context.Context, groupIDs []int64, byID map[int64]*loadedGroup) error {
	query := `
		SELECT ticket_group_id, is_transit, flight_number, airline, origin, origin_city,
		       destination, destination_city, departure, arrival, duration, aircraft
		FROM flight_segments
		WHERE ticket_group_id = ANY($1)
		ORDER BY ticket_group_id, position`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			groupID   int64
			isTransit bool
			seg       models.FlightSegment
			aircraft  sql.NullString
		)
		err := rows.Scan(
			&groupID,
			&isTransit,
			&seg.FlightNumber,
			&seg.Airline,
			&seg.From,
			&seg.FromCity,
			&seg.To,
			&seg.ToCity,
			&seg.Departure,
			&seg.Arrival,
			&seg.Duration,
			&aircraft,
		)
		if err != nil {
			return err
		}
		seg.Aircraft = aircraft.String

		g, ok := byID[groupID]
		if !ok {
			continue
		}
		if isTransit {
			g.group.Transits = append(g.group.Transits, seg)
		} else {
			g.group.Flight = seg
		}
	}

	return rows.Err()
}

func (r *OrderRepository) loadPassengers(ctx context.Context, groupIDs []int64, byID map[int64]*loadedGroup) error {
	query := `
		SELECT ticket_group_id, id, name, seat, type, price, fare_tier
		FROM passenger_tickets
		WHERE ticket_group_id = ANY($1)
		ORDER BY ticket_group_id, position`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			groupID  int64
			p        models.PassengerTicket
			fareTier sql.NullString
		)
		if err := rows.Scan(&groupID, &p.ID, &p.Name, &p.Seat, &p.Type, &p.Price, &fareTier); err != nil {
			return err
		}
		p.FareTier = fareTier.String

		if g, ok := byID[groupID]; ok {
			g.group.Passengers = append(g.group.Passengers, p)
		}
	}

	return rows.Err()
}

// Create inserts one order with its whole tree in a single transaction
func (r *OrderRepository) Create(ctx context.Context, userID int64, order *models.Order) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, user_id, order_date, status, total_amount, currency)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			order.ID, userID, order.OrderDate, order.Status, order.TotalAmount, order.Currency)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.ID, err)
		}

		for gi, g := range order.Tickets {
			var groupID int64
			err := tx.QueryRowContext(ctx, `
				INSERT INTO ticket_groups (order_id, position)
				VALUES ($1, $2)
				RETURNING id`, order.ID, gi).Scan(&groupID)
			if err != nil {
				return fmt.Errorf("failed to insert ticket group: %w", err)
			}

			segments := append([]models.FlightSegment{g.Flight}, g.Transits...)
			for si, seg := range segments {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO flight_segments (ticket_group_id, position, is_transit, flight_number, airline,
					    origin, origin_city, destination, destination_city, departure, arrival, duration, aircraft)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
					groupID, si, si > 0, seg.FlightNumber, seg.Airline,
					seg.From, seg.FromCity, seg.To, seg.ToCity, seg.Departure, seg.Arrival, seg.Duration, seg.Aircraft)
				if err != nil {
					return fmt.Errorf("failed to insert flight segment: %w", err)
				}
			}

			for pi, p := range g.Passengers {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO passenger_tickets (id, ticket_group_id, position, name, seat, type, price, fare_tier)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
					p.ID, groupID, pi, p.Name, p.Seat, p.Type, p.Price, p.FareTier)
				if err != nil {
					return fmt.Errorf("failed to insert passenger ticket: %w", err)
				}
			}
		}
		return nil
	})
}

// DeleteByUserID removes the user's orders; child rows cascade
func (r *OrderRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
