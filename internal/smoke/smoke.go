// Package smoke прогоняет сценарий страницы аккаунта против запущенного API.
package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"myaccount/internal/middleware"
	"myaccount/internal/models"
)

// Checker - проверка сквозного сценария через HTTP
type Checker struct {
	baseURL   string
	client    *http.Client
	sessionID string

	// Пароль, принимаемый сервисом учётных данных
	Password string
}

// NewChecker создает новый checker
func NewChecker(baseURL string) *Checker {
	return &Checker{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		Password: "parola123",
	}
}

type step struct {
	name string
	run  func(ctx context.Context) error
}

// Run проходит все шаги по порядку и возвращает первую ошибку
func (c *Checker) Run(ctx context.Context) error {
	slog.Info("Starting account page smoke check", "base_url", c.baseURL)

	steps := []step{
		{"mount", c.mount},
		{"orders", c.orders},
		{"profile", c.profile},
		{"password", c.password},
		{"cards", c.cards},
		{"review", c.review},
		{"unmount", c.unmount},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		slog.Info("Smoke step passed", "step", s.name)
	}

	slog.Info("Smoke check passed")
	return nil
}

func (c *Checker) mount(ctx context.Context) error {
	var resp models.CreateSessionResponse
	if err := c.expect(ctx, "POST", "/api/sessions", nil, http.StatusCreated, &resp); err != nil {
		return err
	}
	if resp.SessionID == "" {
		return fmt.Errorf("POST /api/sessions: expected session_id")
	}
	if resp.Page.Tab != "orders" {
		return fmt.Errorf("POST /api/sessions: expected orders tab, got %q", resp.Page.Tab)
	}
	c.sessionID = resp.SessionID
	return nil
}

func (c *Checker) orders(ctx context.Context) error {
	var view models.OrdersView
	if err := c.expect(ctx, "PUT", "/api/account/orders/filter", models.OrderFilterRequest{Status: string(models.OrderStatusUpcoming)}, http.StatusOK, &view); err != nil {
		return err
	}
	for _, o := range view.Orders {
		if o.Status != models.OrderStatusUpcoming {
			return fmt.Errorf("filter upcoming returned %s order %s", o.Status, o.ID)
		}
	}
	if len(view.Orders) == 0 || len(view.Orders[0].Tickets) == 0 {
		return nil
	}

	path := "/api/account/orders/" + view.Orders[0].ID + "/tickets/0/toggle"
	if err := c.expect(ctx, "POST", path, models.ToggleSectionRequest{Section: "segments"}, http.StatusOK, &view); err != nil {
		return err
	}
	// Секции изначально раскрыты, первый toggle сворачивает
	if view.Orders[0].Tickets[0].SegmentsExpanded {
		return fmt.Errorf("segments section did not collapse")
	}
	return nil
}

func (c *Checker) profile(ctx context.Context) error {
	var view models.ProfileView
	if err := c.expect(ctx, "POST", "/api/account/profile/edit", nil, http.StatusOK, &view); err != nil {
		return err
	}
	address := "Str. Aviatorilor 12, București"
	if err := c.expect(ctx, "PATCH", "/api/account/profile/draft", models.ProfileDraftRequest{Address: &address}, http.StatusOK, &view); err != nil {
		return err
	}
	if err := c.expect(ctx, "POST", "/api/account/profile/save", nil, http.StatusOK, &view); err != nil {
		return err
	}
	if view.Mode != "viewing" || view.Data.Address != address {
		return fmt.Errorf("profile not committed: mode=%s address=%q", view.Mode, view.Data.Address)
	}
	return nil
}

func (c *Checker) password(ctx context.Context) error {
	var view models.PasswordView
	if err := c.expect(ctx, "POST", "/api/account/password/open", nil, http.StatusOK, &view); err != nil {
		return err
	}
	// Пустой диалог должен отклоняться
	if err := c.expect(ctx, "POST", "/api/account/password/save", nil, http.StatusUnprocessableEntity, nil); err != nil {
		return err
	}

	next := "nouaParola1"
	draft := models.PasswordDraftRequest{CurrentPassword: &c.Password, NewPassword: &next, ConfirmPassword: &next}
	if err := c.expect(ctx, "PATCH", "/api/account/password/draft", draft, http.StatusOK, &view); err != nil {
		return err
	}
	if err := c.expect(ctx, "POST", "/api/account/password/save", nil, http.StatusOK, &view); err != nil {
		return err
	}
	if view.Open {
		return fmt.Errorf("password dialog still open after save")
	}
	return nil
}

func (c *Checker) cards(ctx context.Context) error {
	var opts models.ExpiryOptionsResponse
	if err := c.expect(ctx, "GET", "/api/account/cards/new/options", nil, http.StatusOK, &opts); err != nil {
		return err
	}
	if len(opts.Months) == 0 || len(opts.Years) == 0 {
		return fmt.Errorf("expiry options are empty")
	}

	var view models.PaymentMethodsView
	if err := c.expect(ctx, "POST", "/api/account/cards/new/open", nil, http.StatusOK, &view); err != nil {
		return err
	}
	before := len(view.Cards)

	name, number, cvv := "Ion Popescu", "4111 1111 1111 1111", "123"
	month, year := opts.Months[len(opts.Months)-1], opts.Years[len(opts.Years)-1]
	draft := models.CardDraftRequest{CardName: &name, CardNumber: &number, ExpiryMonth: &month, ExpiryYear: &year, CVV: &cvv}
	if err := c.expect(ctx, "PATCH", "/api/account/cards/new/draft", draft, http.StatusOK, &view); err != nil {
		return err
	}
	if err := c.expect(ctx, "POST", "/api/account/cards/new/submit", nil, http.StatusCreated, &view); err != nil {
		return err
	}
	if len(view.Cards) != before+1 {
		return fmt.Errorf("expected %d cards after submit, got %d", before+1, len(view.Cards))
	}

	added := view.Cards[len(view.Cards)-1]
	path := "/api/account/cards/" + strconv.FormatInt(added.ID, 10) + "/delete"
	if err := c.expect(ctx, "POST", path, nil, http.StatusOK, &view); err != nil {
		return err
	}
	if err := c.expect(ctx, "POST", "/api/account/cards/delete/confirm", nil, http.StatusOK, &view); err != nil {
		return err
	}
	if len(view.Cards) != before {
		return fmt.Errorf("expected %d cards after delete, got %d", before, len(view.Cards))
	}
	return nil
}

func (c *Checker) review(ctx context.Context) error {
	var view models.ReviewView
	open := models.OpenReviewRequest{FlightNumber: "RO391", Route: "OTP → LHR"}
	if err := c.expect(ctx, "POST", "/api/account/reviews/open", open, http.StatusOK, &view); err != nil {
		return err
	}
	rating, comment := 5, "Zbor liniștit"
	if err := c.expect(ctx, "PATCH", "/api/account/reviews/draft", models.ReviewDraftRequest{Rating: &rating, Comment: &comment}, http.StatusOK, &view); err != nil {
		return err
	}
	if err := c.expect(ctx, "POST", "/api/account/reviews/submit", nil, http.StatusOK, &view); err != nil {
		return err
	}
	if view.Open {
		return fmt.Errorf("review dialog still open after submit")
	}
	return nil
}

func (c *Checker) unmount(ctx context.Context) error {
	if err := c.expect(ctx, "DELETE", "/api/sessions/current", nil, http.StatusNoContent, nil); err != nil {
		return err
	}
	// Сессия после размонтирования недоступна
	return c.expect(ctx, "GET", "/api/account/page", nil, http.StatusNotFound, nil)
}

// expect выполняет запрос, сверяет статус и декодирует тело в out
func (c *Checker) expect(ctx context.Context, method, path string, body any, status int, out any) error {
	resp, err := c.makeRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, status, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func (c *Checker) makeRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, c.sessionID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
