package account

import (
	"myaccount/internal/models"
)

// EmptyOrdersMessage is shown when the filter leaves nothing to list
const EmptyOrdersMessage = "Nu există comenzi pentru filtrul selectat."

// OrdersView renders the orders section for the current filter
func (s *State) OrdersView(orders []models.Order) models.OrdersView {
	counts := map[string]int{string(FilterAll): len(orders)}
	for _, st := range models.OrderStatuses {
		counts[string(st)] = StatusCount(orders, st)
	}

	filtered := FilterOrders(orders, s.Filter)
	view := models.OrdersView{
		Filter: string(s.Filter),
		Counts: counts,
		Orders: make([]models.OrderView, 0, len(filtered)),
	}
	if len(filtered) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyOrdersMessage
		return view
	}

	for _, o := range filtered {
		ov := models.OrderView{Order: o, Tickets: make([]models.TicketGroupView, len(o.Tickets))}
		for i, g := range o.Tickets {
			key := func(sec Section) ExpandKey {
				return ExpandKey{OrderID: o.ID, TicketIndex: i, Section: sec}
			}
			ov.Tickets[i] = models.TicketGroupView{
				TicketGroup:        g,
				Index:              i,
				FareType:           g.FareType(),
				DetailsExpanded:    s.Expanded.IsExpanded(key(SectionDetails)),
				SegmentsExpanded:   s.Expanded.IsExpanded(key(SectionSegments)),
				PassengersExpanded: s.Expanded.IsExpanded(key(SectionPassengers)),
			}
		}
		view.Orders = append(view.Orders, ov)
	}
	return view
}

// ProfileView shows the draft while editing and the committed data otherwise
func (s *State) ProfileView() models.ProfileView {
	data := s.Profile.Committed
	if s.Profile.Mode == ModeEditing {
		data = s.Profile.Draft
	}
	return models.ProfileView{
		Mode:   string(s.Profile.Mode),
		Data:   data,
		Errors: s.Profile.Errors.Flags(),
	}
}

func (s *State) PasswordView() models.PasswordView {
	return models.PasswordView{
		Open:   s.Password.Open,
		Errors: s.Password.Errors.Flags(),
	}
}

// PaymentMethodsView renders the cards section with its two dialogs
func (s *State) PaymentMethodsView() models.PaymentMethodsView {
	cards := make([]models.PaymentCard, len(s.Cards))
	copy(cards, s.Cards)

	d := s.AddCard.Draft
	view := models.PaymentMethodsView{
		Cards: cards,
		AddCard: models.AddCardView{
			Open:        s.AddCard.Open,
			CardName:    d.CardName,
			CardNumber:  d.CardNumber,
			ExpiryMonth: d.ExpiryMonth,
			ExpiryYear:  d.ExpiryYear,
			Errors:      s.AddCard.Errors.Flags(),
		},
		DeleteCard: models.DeleteConfirmView{Open: s.DeleteCard.Open},
	}
	if s.DeleteCard.PendingID != nil {
		id := *s.DeleteCard.PendingID
		view.DeleteCard.PendingCardID = &id
	}
	return view
}

func (s *State) ReviewView() models.ReviewView {
	d := s.Review.Draft
	return models.ReviewView{
		Open:         s.Review.Open,
		FlightNumber: d.FlightNumber,
		Route:        d.Route,
		Rating:       d.Rating,
		Comment:      d.Comment,
	}
}

// PageView renders the active tab's section plus the page-level flags
func (s *State) PageView(orders []models.Order) models.PageView {
	page := models.PageView{
		Tab:          string(s.Tab),
		ScrollLocked: s.ScrollLocked,
		Modals: models.ModalFlags{
			ChangePassword: s.Password.Open,
			AddCard:        s.AddCard.Open,
			DeleteCard:     s.DeleteCard.Open,
			Review:         s.Review.Open,
		},
	}
	switch s.Tab {
	case TabPersonalData:
		page.Section = s.ProfileView()
	case TabPaymentMethods:
		page.Section = s.PaymentMethodsView()
	default:
		page.Section = s.OrdersView(orders)
	}
	return page
}
