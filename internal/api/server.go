package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"myaccount/internal/cache"
	"myaccount/internal/config"
	"myaccount/internal/database"
	"myaccount/internal/external"
	"myaccount/internal/handlers"
	"myaccount/internal/jobs"
	"myaccount/internal/messaging"
	"myaccount/internal/middleware"
	"myaccount/internal/models"
	"myaccount/internal/repository"
	"myaccount/internal/seed"
	"myaccount/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	db       *database.DB
	nats     *messaging.NATSClient
	services *service.Services
	repos    *repository.Repositories
	sweeper  *jobs.SessionSweeper
}

// NewServer создает новый экземпляр сервера и подключает хранилища по конфигурации
func NewServer(cfg *config.Config) (*Server, error) {
	// Устанавливаем режим Gin
	gin.SetMode(cfg.GinMode)

	accountSeed, orders, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return nil, err
	}

	var db *database.DB
	var repos *repository.Repositories
	if cfg.OrdersSource == config.OrdersSourcePostgres {
		// Подключаемся к базе данных
		db, err = database.Connect(cfg.Database)
		if err != nil {
			sessions.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		// Запускаем миграции
		if err := db.RunMigrations(); err != nil {
			sessions.Close()
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		repos = repository.NewRepositoriesWithDatabase(db, sessions)
	} else {
		repos = repository.NewRepositories(orders, sessions)
	}

	// Подключаемся к NATS
	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		sessions.Close()
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	identity := external.NewIdentityClient(cfg.Identity)
	services := service.NewServices(repos, identity, natsClient, accountSeed)

	server := newServer(cfg, services, repos)
	server.db = db
	server.nats = natsClient

	// Сессии, истёкшие без unmount, убираем фоном и снимаем с gauge
	server.sweeper = jobs.NewSessionSweeper(sessions, jobs.DefaultSweepInterval)
	server.sweeper.Start(context.Background())
	return server, nil
}

// NewServerWithServices собирает сервер поверх готовых сервисов (тесты, smoke)
func NewServerWithServices(cfg *config.Config, services *service.Services, repos *repository.Repositories) *Server {
	gin.SetMode(cfg.GinMode)
	return newServer(cfg, services, repos)
}

func newServer(cfg *config.Config, services *service.Services, repos *repository.Repositories) *Server {
	// Создаем роутер
	router := gin.New()

	// Применяем middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		repos:    repos,
	}

	// Настраиваем роуты
	server.setupRoutes()

	return server
}

func loadSeed(cfg *config.Config) (service.AccountSeed, []models.Order, error) {
	profile, err := seed.Profile()
	if err != nil {
		return service.AccountSeed{}, nil, err
	}
	cards, err := seed.Cards()
	if err != nil {
		return service.AccountSeed{}, nil, err
	}
	orders, err := seed.Orders()
	if err != nil {
		return service.AccountSeed{}, nil, err
	}

	return service.AccountSeed{
		UserID:  cfg.AccountUserID,
		Profile: profile,
		Cards:   cards,
	}, orders, nil
}

func newSessionStore(cfg *config.Config) (repository.SessionStore, error) {
	if cfg.SessionStore == config.SessionStoreValkey {
		store, err := cache.NewValkeySessionStore(cfg.Valkey)
		if err != nil {
			return nil, err
		}
		slog.Info("Using Valkey session store", "addr", cfg.Valkey.Addr, "ttl", cfg.SessionTTL())
		return store, nil
	}
	return repository.NewMemorySessionStore(cfg.SessionTTL()), nil
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services)

	api := s.router.Group("/api")
	{
		// Монтирование страницы не требует сессии
		api.POST("/sessions", h.CreateSession)
		api.DELETE("/sessions/current", middleware.Session(), h.DeleteSession)

		account := api.Group("/account")
		account.Use(middleware.Session())
		{
			account.GET("/page", h.GetPage)
			account.PUT("/tab", h.SelectTab)

			// Orders endpoints
			orders := account.Group("/orders")
			{
				orders.GET("", h.ListOrders)
				orders.PUT("/filter", h.SetOrderFilter)
				orders.POST("/:orderId/tickets/:index/toggle", h.ToggleTicketSection)
			}

			// Profile endpoints
			profile := account.Group("/profile")
			{
				profile.GET("", h.GetProfile)
				profile.POST("/edit", h.EditProfile)
				profile.PATCH("/draft", h.ChangeProfile)
				profile.POST("/save", h.SaveProfile)
				profile.POST("/cancel", h.CancelProfileEdit)
			}

			// Password endpoints
			password := account.Group("/password")
			{
				password.POST("/open", h.OpenPasswordDialog)
				password.PATCH("/draft", h.ChangePassword)
				password.POST("/save", h.SavePassword)
				password.POST("/close", h.ClosePasswordDialog)
			}

			// Cards endpoints
			cards := account.Group("/cards")
			{
				cards.GET("", h.ListCards)
				cards.GET("/new/options", h.ExpiryOptions)
				cards.POST("/new/open", h.OpenAddCard)
				cards.PATCH("/new/draft", h.ChangeCardDraft)
				cards.POST("/new/submit", h.SubmitCard)
				cards.POST("/new/close", h.CloseAddCard)
				cards.POST("/delete/confirm", h.ConfirmCardDeletion)
				cards.POST("/delete/cancel", h.CancelCardDeletion)
				cards.POST("/:id/primary", h.SetPrimaryCard)
				cards.POST("/:id/delete", h.RequestCardDeletion)
			}

			// Reviews endpoints
			reviews := account.Group("/reviews")
			{
				reviews.POST("/open", h.OpenReview)
				reviews.PATCH("/draft", h.ChangeReview)
				reviews.POST("/submit", h.SubmitReview)
				reviews.POST("/close", h.CloseReview)
			}
		}
	}

	// Health check endpoint
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	response := gin.H{
		"status":        "ok",
		"service":       "myaccount-api",
		"version":       "1.0.0",
		"session_store": s.config.SessionStore,
		"orders_source": s.config.OrdersSource,
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		dbHealth := s.db.HealthCheck(ctx)
		response["database"] = dbHealth
		if dbHealth.Status != "healthy" {
			response["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup закрывает соединения
func (s *Server) Cleanup() error {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}

	if s.repos != nil && s.repos.Sessions != nil {
		if err := s.repos.Sessions.Close(); err != nil {
			slog.Error("Error closing session store", "error", err)
		}
	}

	if s.nats != nil {
		if err := s.nats.Close(); err != nil {
			slog.Error("Error closing NATS connection", "error", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Error closing database connection", "error", err)
			return err
		}
	}

	return nil
}
