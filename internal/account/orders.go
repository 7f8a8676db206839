package account

import (
	"encoding/json"

	apperrors "myaccount/internal/errors"
	"myaccount/internal/models"
)

// StatusFilter is "all" or one order status
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseFilter maps a raw filter value to a StatusFilter
func ParseFilter(s string) (StatusFilter, bool) {
	if StatusFilter(s) == FilterAll {
		return FilterAll, true
	}
	for _, st := range models.OrderStatuses {
		if string(st) == s {
			return StatusFilter(s), true
		}
	}
	return "", false
}

// FilterOrders keeps the orders matching f, in their original order
func FilterOrders(orders []models.Order, f StatusFilter) []models.Order {
	if f == FilterAll {
		out := make([]models.Order, len(orders))
		copy(out, orders)
		return out
	}
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if StatusFilter(o.Status) == f {
			out = append(out, o)
		}
	}
	return out
}

// StatusCount counts orders with exactly this status. The current filter plays no part.
func StatusCount(orders []models.Order, status models.OrderStatus) int {
	n := 0
	for _, o := range orders {
		if o.Status == status {
			n++
		}
	}
	return n
}

// SetFilter selects the order status filter
func (s *State) SetFilter(raw string) error {
	f, ok := ParseFilter(raw)
	if !ok {
		return apperrors.ErrBadInput
	}
	s.Filter = f
	return nil
}

// Section is one collapsible block of a ticket group
type Section string

const (
	SectionDetails    Section = "details"
	SectionSegments   Section = "segments"
	SectionPassengers Section = "passengers"
)

func ParseSection(s string) (Section, bool) {
	switch Section(s) {
	case SectionDetails, SectionSegments, SectionPassengers:
		return Section(s), true
	}
	return "", false
}

// ExpandKey addresses one flag: a section of one ticket group of one order
type ExpandKey struct {
	OrderID     string  `json:"order_id"`
	TicketIndex int     `json:"ticket_index"`
	Section     Section `json:"section"`
}

// ExpandFlags maps keys to their expanded state. A missing key means expanded.
type ExpandFlags map[ExpandKey]bool

func (f ExpandFlags) IsExpanded(k ExpandKey) bool {
	v, ok := f[k]
	return !ok || v
}

// Toggle inverts exactly one flag
func (f ExpandFlags) Toggle(k ExpandKey) {
	f[k] = !f.IsExpanded(k)
}

type expandEntry struct {
	ExpandKey
	Expanded bool `json:"expanded"`
}

// MarshalJSON encodes the map as a list; struct keys are not valid JSON object keys.
func (f ExpandFlags) MarshalJSON() ([]byte, error) {
	entries := make([]expandEntry, 0, len(f))
	for k, v := range f {
		entries = append(entries, expandEntry{ExpandKey: k, Expanded: v})
	}
	return json.Marshal(entries)
}

func (f *ExpandFlags) UnmarshalJSON(data []byte) error {
	var entries []expandEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	out := make(ExpandFlags, len(entries))
	for _, e := range entries {
		out[e.ExpandKey] = e.Expanded
	}
	*f = out
	return nil
}

// ToggleSection flips one section of one ticket group. The order and ticket index must exist.
func (s *State) ToggleSection(orders []models.Order, orderID string, ticketIndex int, rawSection string) error {
	section, ok := ParseSection(rawSection)
	if !ok {
		return apperrors.ErrBadInput
	}
	order, found := findOrder(orders, orderID)
	if !found || ticketIndex < 0 || ticketIndex >= len(order.Tickets) {
		return apperrors.ErrNotFound
	}
	if s.Expanded == nil {
		s.Expanded = ExpandFlags{}
	}
	s.Expanded.Toggle(ExpandKey{OrderID: orderID, TicketIndex: ticketIndex, Section: section})
	return nil
}

func findOrder(orders []models.Order, id string) (models.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
