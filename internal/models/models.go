package models

// CreateSessionResponse - ответ при монтировании страницы аккаунта
type CreateSessionResponse struct {
	SessionID string   `json:"session_id"`
	Page      PageView `json:"page"`
}

// SelectTabRequest - переключение вкладки
type SelectTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// OrderFilterRequest - выбор фильтра по статусу заказа
type OrderFilterRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToggleSectionRequest - свернуть/развернуть секцию билета
type ToggleSectionRequest struct {
	Section string `json:"section" binding:"required"`
}

// ProfileDraftRequest - изменение полей формы личных данных.
// Only the fields present in the body are changed.
type ProfileDraftRequest struct {
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Address   *string `json:"address"`
}

// PasswordDraftRequest - изменение полей формы смены пароля
type PasswordDraftRequest struct {
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password"`
	ConfirmPassword *string `json:"confirm_password"`
}

// CardDraftRequest - изменение полей формы добавления карты
type CardDraftRequest struct {
	CardName    *string `json:"card_name"`
	CardNumber  *string `json:"card_number"`
	ExpiryMonth *string `json:"expiry_month"`
	ExpiryYear  *string `json:"expiry_year"`
	CVV         *string `json:"cvv"`
}

// OpenReviewRequest - открыть форму отзыва для рейса
type OpenReviewRequest struct {
	FlightNumber string `json:"flight_number" binding:"required"`
	Route        string `json:"route" binding:"required"`
}

// ReviewDraftRequest - изменение оценки или комментария
type ReviewDraftRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// PageView is the whole account page: active tab, modal flags and the rendered section
type PageView struct {
	Tab          string     `json:"tab"`
	ScrollLocked bool       `json:"scroll_locked"`
	Modals       ModalFlags `json:"modals"`
	Section      any        `json:"section"`
}

// ModalFlags reports which dialogs are visible
type ModalFlags struct {
	ChangePassword bool `json:"change_password"`
	AddCard        bool `json:"add_card"`
	DeleteCard     bool `json:"delete_card"`
	Review         bool `json:"review"`
}

// OrdersView - секция истории заказов
type OrdersView struct {
	Filter       string         `json:"filter"`
	Counts       map[string]int `json:"counts"`
	Orders       []OrderView    `json:"orders"`
	Empty        bool           `json:"empty"`
	EmptyMessage string         `json:"empty_message,omitempty"`
}

// OrderView is an order with its per-ticket expand state
type OrderView struct {
	Order
	Tickets []TicketGroupView `json:"tickets"`
}

// TicketGroupView is a ticket group plus display derived fields
type TicketGroupView struct {
	TicketGroup
	Index              int    `json:"index"`
	FareType           string `json:"fare_type"`
	DetailsExpanded    bool   `json:"details_expanded"`
	SegmentsExpanded   bool   `json:"segments_expanded"`
	PassengersExpanded bool   `json:"passengers_expanded"`
}

// ProfileView - секция личных данных
type ProfileView struct {
	Mode   string          `json:"mode"`
	Data   ProfileData     `json:"data"`
	Errors map[string]bool `json:"errors"`
}

// PasswordView is the change-password dialog. Passwords are never echoed back.
type PasswordView struct {
	Open   bool            `json:"open"`
	Errors map[string]bool `json:"errors"`
}

// PaymentMethodsView - секция способов оплаты
type PaymentMethodsView struct {
	Cards      []PaymentCard     `json:"cards"`
	AddCard    AddCardView       `json:"add_card"`
	DeleteCard DeleteConfirmView `json:"delete_card"`
}

// AddCardView is the add-card dialog. The CVV is never echoed back.
type AddCardView struct {
	Open        bool            `json:"open"`
	CardName    string          `json:"card_name"`
	CardNumber  string          `json:"card_number"`
	ExpiryMonth string          `json:"expiry_month"`
	ExpiryYear  string          `json:"expiry_year"`
	Errors      map[string]bool `json:"errors"`
}

// DeleteConfirmView is the delete confirmation dialog
type DeleteConfirmView struct {
	Open          bool   `json:"open"`
	PendingCardID *int64 `json:"pending_card_id,omitempty"`
}

// ExpiryOptionsResponse lists the selectable expiry months and years
type ExpiryOptionsResponse struct {
	Months []string `json:"months"`
	Years  []string `json:"years"`
}

// ReviewView - диалог отзыва о рейсе
type ReviewView struct {
	Open         bool   `json:"open"`
	FlightNumber string `json:"flight_number,omitempty"`
	Route        string `json:"route,omitempty"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
