package models

import (
	"time"
)

// OrderStatus is the lifecycle state of a booked order
type OrderStatus string

const (
	OrderStatusUpcoming  OrderStatus = "upcoming"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in display order
var OrderStatuses = []OrderStatus{OrderStatusUpcoming, OrderStatusCompleted, OrderStatusCancelled}

// PassengerType classifies a passenger ticket
type PassengerType string

const (
	PassengerAdult  PassengerType = "adult"
	PassengerChild  PassengerType = "child"
	PassengerInfant PassengerType = "infant"
)

// Order represents a purchased flight booking
type Order struct {
	ID          string        `json:"id" yaml:"id" db:"id"`
	OrderDate   time.Time     `json:"order_date" yaml:"order_date" db:"order_date"`
	Status      OrderStatus   `json:"status" yaml:"status" db:"status"`
	TotalAmount int64         `json:"total_amount" yaml:"total_amount" db:"total_amount"`
	Currency    string        `json:"currency" yaml:"currency" db:"currency"`
	Tickets     []TicketGroup `json:"tickets" yaml:"tickets"`
}

// TicketGroup is one priced itinerary inside an order
type TicketGroup struct {
	Flight     FlightSegment     `json:"flight" yaml:"flight"`
	Transits   []FlightSegment   `json:"transits,omitempty" yaml:"transits"`
	Passengers []PassengerTicket `json:"passengers" yaml:"passengers"`
}

// FareType is taken from the first passenger only.
func (g TicketGroup) FareType() string {
	if len(g.Passengers) == 0 {
		return ""
	}
	return g.Passengers[0].FareTier
}

// FlightSegment represents a single flight leg
type FlightSegment struct {
	FlightNumber string    `json:"flight_number" yaml:"flight_number" db:"flight_number"`
	Airline      string    `json:"airline" yaml:"airline" db:"airline"`
	From         string    `json:"from" yaml:"from" db:"origin"`
	FromCity     string    `json:"from_city" yaml:"from_city" db:"origin_city"`
	To           string    `json:"to" yaml:"to" db:"destination"`
	ToCity       string    `json:"to_city" yaml:"to_city" db:"destination_city"`
	Departure    time.Time `json:"departure" yaml:"departure" db:"departure"`
	Arrival      time.Time `json:"arrival" yaml:"arrival" db:"arrival"`
	Duration     string    `json:"duration" yaml:"duration" db:"duration"`
	Aircraft     string    `json:"aircraft,omitempty" yaml:"aircraft" db:"aircraft"`
}

// Route returns the human readable route, e.g. "București → Londra"
func (f FlightSegment) Route() string {
	return f.FromCity + " → " + f.ToCity
}

// PassengerTicket represents a ticket issued to one passenger
type PassengerTicket struct {
	ID       string        `json:"id" yaml:"id" db:"id"`
	Name     string        `json:"name" yaml:"name" db:"name"`
	Seat     string        `json:"seat" yaml:"seat" db:"seat"`
	Type     PassengerType `json:"type" yaml:"type" db:"type"`
	Price    int64         `json:"price" yaml:"price" db:"price"`
	FareTier string        `json:"fare_tier,omitempty" yaml:"fare_tier" db:"fare_tier"`
}

// PaymentCard represents a saved payment card. Only the masked number is kept.
type PaymentCard struct {
	ID           int64  `json:"id" yaml:"id"`
	MaskedNumber string `json:"masked_number" yaml:"masked_number"`
	Expiry       string `json:"expiry" yaml:"expiry"`
	IsPrimary    bool   `json:"is_primary" yaml:"is_primary"`
	Brand        string `json:"brand" yaml:"brand"`
	HolderName   string `json:"holder_name" yaml:"holder_name"`
}

// ProfileData holds the user's personal data
type ProfileData struct {
	Email     string `json:"email" yaml:"email"`
	Phone     string `json:"phone" yaml:"phone"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
	Address   string `json:"address" yaml:"address"`
}

// PasswordDraft is the change-password form content
type PasswordDraft struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// CardDraft is the add-card form content
type CardDraft struct {
	CardName    string `json:"card_name"`
	CardNumber  string `json:"card_number"`
	ExpiryMonth string `json:"expiry_month"`
	ExpiryYear  string `json:"expiry_year"`
	CVV         string `json:"cvv"`
}

// ReviewDraft is the leave-review form content
type ReviewDraft struct {
	FlightNumber string `json:"flight_number"`
	Route        string `json:"route"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
