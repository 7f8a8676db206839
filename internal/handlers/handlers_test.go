package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myaccount/internal/middleware"
	"myaccount/internal/models"
	"myaccount/internal/repository"
	"myaccount/internal/service"
)

type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, userID int64, password string) (bool, error) {
	return password == "parola123", nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(subject string, data interface{}) error { return nil }

type brokenOrders struct{}

func (brokenOrders) ListByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	return nil, errors.New("connection refused")
}

func testServices(orders repository.OrderSource) *service.Services {
	seed := service.AccountSeed{
		UserID:  1,
		Profile: models.ProfileData{Email: "ion@example.ro", Phone: "0722123456", FirstName: "Ion", LastName: "Popescu"},
		Cards:   []models.PaymentCard{{ID: 1, MaskedNumber: "**** **** **** 4242", Expiry: "12/27", IsPrimary: true}},
	}
	sessions := repository.NewMemorySessionStore(time.Hour)
	return &service.Services{
		Account: service.NewAccountService(orders, sessions, stubVerifier{}, nopPublisher{}, seed, time.Now),
	}
}

func setupRouter(orders repository.OrderSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandlers(testServices(orders))

	api := r.Group("/api")
	{
		api.POST("/sessions", h.CreateSession)
		api.DELETE("/sessions/current", middleware.Session(), h.DeleteSession)

		account := api.Group("/account", middleware.Session())
		{
			account.GET("/page", h.GetPage)
			account.PUT("/tab", h.SelectTab)
			account.GET("/orders", h.ListOrders)
			account.PUT("/orders/filter", h.SetOrderFilter)
			account.POST("/orders/:orderId/tickets/:index/toggle", h.ToggleTicketSection)
			account.POST("/profile/edit", h.EditProfile)
			account.PATCH("/profile/draft", h.ChangeProfile)
			account.POST("/profile/save", h.SaveProfile)
			account.POST("/password/open", h.OpenPasswordDialog)
			account.POST("/password/save", h.SavePassword)
			account.POST("/cards/new/open", h.OpenAddCard)
			account.PATCH("/cards/new/draft", h.ChangeCardDraft)
			account.POST("/cards/new/submit", h.SubmitCard)
			account.POST("/cards/:id/primary", h.SetPrimaryCard)
			account.POST("/reviews/open", h.OpenReview)
			account.PATCH("/reviews/draft", h.ChangeReview)
		}
	}

	return r
}

func seedOrders() repository.OrderSource {
	return repository.NewSeedOrderRepository([]models.Order{
		{ID: "ORD-1", Status: models.OrderStatusUpcoming, Tickets: []models.TicketGroup{{
			Flight:     models.FlightSegment{FlightNumber: "RO301"},
			Passengers: []models.PassengerTicket{{ID: "T1", FareTier: "Economy Light"}},
		}}},
	})
}

func do(r http.Handler, method, path, sessionID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r http.Handler, tab string) string {
	t.Helper()
	path := "/api/sessions"
	if tab != "" {
		path += "?tab=" + tab
	}
	w := do(r, "POST", path, "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.CreateSessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestCreateSession(t *testing.T) {
	r := setupRouter(seedOrders())

	w := do(r, "POST", "/api/sessions?tab=personal-data", "", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	page := resp["page"].(map[string]any)
	assert.Equal(t, "personal-data", page["tab"])
	assert.Equal(t, false, page["scroll_locked"])

	w = do(r, "POST", "/api/sessions?tab=billing", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSession_OrderSourceDown(t *testing.T) {
	r := setupRouter(brokenOrders{})
	w := do(r, "POST", "/api/sessions", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to mount account page"}`, w.Body.String())
}

func TestSessionHeaderRequired(t *testing.T) {
	r := setupRouter(seedOrders())
	w := do(r, "GET", "/api/account/page", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownSession(t *testing.T) {
	r := setupRouter(seedOrders())
	w := do(r, "GET", "/api/account/page", "no-such-session", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteSession(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "")

	w := do(r, "DELETE", "/api/sessions/current", id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, "GET", "/api/account/page", id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectTab(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "")

	w := do(r, "PUT", "/api/account/tab", id, models.SelectTabRequest{Tab: "payment-methods"})
	assert.Equal(t, http.StatusOK, w.Code)

	var page models.PageView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "payment-methods", page.Tab)

	w = do(r, "PUT", "/api/account/tab", id, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "tab is required")
}

func TestOrders_FilterAndToggle(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "")

	w := do(r, "PUT", "/api/account/orders/filter", id, models.OrderFilterRequest{Status: "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	var view models.OrdersView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Empty)
	assert.NotEmpty(t, view.EmptyMessage)

	w = do(r, "POST", "/api/account/orders/ORD-1/tickets/0/toggle", id, models.ToggleSectionRequest{Section: "segments"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, "POST", "/api/account/orders/ORD-1/tickets/x/toggle", id, models.ToggleSectionRequest{Section: "segments"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, "POST", "/api/account/orders/ORD-1/tickets/4/toggle", id, models.ToggleSectionRequest{Section: "segments"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveProfile_ValidationFailure(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "personal-data")

	w := do(r, "POST", "/api/account/profile/save", id, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "save is only allowed while editing")

	require.Equal(t, http.StatusOK, do(r, "POST", "/api/account/profile/edit", id, nil).Code)
	email := "not-an-email"
	require.Equal(t, http.StatusOK, do(r, "PATCH", "/api/account/profile/draft", id, models.ProfileDraftRequest{Email: &email}).Code)

	w = do(r, "POST", "/api/account/profile/save", id, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Error  string             `json:"error"`
		Fields []string           `json:"fields"`
		View   models.ProfileView `json:"view"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"email"}, body.Fields)
	assert.Equal(t, "editing", body.View.Mode)
	assert.True(t, body.View.Errors["email"])
}

func TestSavePassword_WrongCurrent(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "personal-data")

	require.Equal(t, http.StatusOK, do(r, "POST", "/api/account/password/open", id, nil).Code)
	w := do(r, "POST", "/api/account/password/save", id, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NotContains(t, w.Body.String(), "parola123")
}

func TestAddCard(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "payment-methods")

	require.Equal(t, http.StatusOK, do(r, "POST", "/api/account/cards/new/open", id, nil).Code)

	year := time.Now().Format("2006")
	draft := map[string]string{
		"card_name":    "Ion Popescu",
		"card_number":  "5500 0000 0000 0004",
		"expiry_month": "01",
		"expiry_year":  year,
		"cvv":          "999",
	}
	require.Equal(t, http.StatusOK, do(r, "PATCH", "/api/account/cards/new/draft", id, draft).Code)

	w := do(r, "POST", "/api/account/cards/new/submit", id, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var view models.PaymentMethodsView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Cards, 2)
	assert.Equal(t, "**** **** **** 0004", view.Cards[1].MaskedNumber)
	assert.NotContains(t, w.Body.String(), "999", "the CVV is never echoed")

	w = do(r, "POST", "/api/account/cards/new/submit", id, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "dialog closed after a successful submit")

	w = do(r, "POST", "/api/account/cards/abc/primary", id, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(r, "POST", "/api/account/cards/77/primary", id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReview_BadRating(t *testing.T) {
	r := setupRouter(seedOrders())
	id := createSession(t, r, "")

	w := do(r, "POST", "/api/account/reviews/open", id, models.OpenReviewRequest{FlightNumber: "RO301", Route: "OTP → CDG"})
	require.Equal(t, http.StatusOK, w.Code)

	rating := 0
	w = do(r, "PATCH", "/api/account/reviews/draft", id, models.ReviewDraftRequest{Rating: &rating})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, "POST", "/api/account/reviews/open", id, map[string]string{"route": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "flight_number is required")
}
