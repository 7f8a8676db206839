package main

import (
	"fmt"
	"math/rand"
	"time"

	"myaccount/internal/models"
)

// OrderGenerator derives synthetic orders from the seed itineraries
type OrderGenerator struct {
	rng       *rand.Rand
	templates []models.Order
	next      int
}

func NewOrderGenerator(rng *rand.Rand, templates []models.Order) *OrderGenerator {
	return &OrderGenerator{rng: rng, templates: templates}
}

// Generate returns n orders with fresh order and ticket ids. Dates are shifted so
// that the status matches: upcoming flights lie in the future, the rest in the past.
func (g *OrderGenerator) Generate(n int) []models.Order {
	if len(g.templates) == 0 {
		return nil
	}

	out := make([]models.Order, 0, n)
	for i := 0; i < n; i++ {
		tpl := g.templates[g.rng.Intn(len(g.templates))]
		out = append(out, g.derive(tpl))
	}
	return out
}

func (g *OrderGenerator) derive(tpl models.Order) models.Order {
	g.next++
	status := models.OrderStatuses[g.rng.Intn(len(models.OrderStatuses))]

	// days relative to the template's first departure
	shift := g.rng.Intn(180) + 1
	if status != models.OrderStatusUpcoming {
		shift = -shift - 365
	}
	offset := time.Duration(shift) * 24 * time.Hour

	o := models.Order{
		ID:        fmt.Sprintf("GEN-%s-%04d", tpl.ID, g.next),
		OrderDate: tpl.OrderDate.Add(offset),
		Status:    status,
		Currency:  tpl.Currency,
	}

	for gi, grp := range tpl.Tickets {
		ng := models.TicketGroup{
			Flight: shiftSegment(grp.Flight, offset),
		}
		for _, t := range grp.Transits {
			ng.Transits = append(ng.Transits, shiftSegment(t, offset))
		}
		for pi, p := range grp.Passengers {
			p.ID = fmt.Sprintf("%s-T%d%d", o.ID, gi, pi)
			o.TotalAmount += p.Price
			ng.Passengers = append(ng.Passengers, p)
		}
		o.Tickets = append(o.Tickets, ng)
	}
	return o
}

func shiftSegment(s models.FlightSegment, d time.Duration) models.FlightSegment {
	s.Departure = s.Departure.Add(d)
	s.Arrival = s.Arrival.Add(d)
	return s
}
