package app

import (
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"smartbudget-go/internal/config"
	"smartbudget-go/internal/db"
	goalsdomain "smartbudget-go/internal/domain/goals"
	historydomain "smartbudget-go/internal/domain/history"
	incomedomain "smartbudget-go/internal/domain/income"
	spendingdomain "smartbudget-go/internal/domain/spending"
	summarydomain "smartbudget-go/internal/domain/summary"
	userdomain "smartbudget-go/internal/domain/user"
	"smartbudget-go/internal/events"
	"smartbudget-go/internal/repository/inmemory"
	goalsrepo "smartbudget-go/internal/repository/postgres/goals"
	incomerepo "smartbudget-go/internal/repository/postgres/income"
	spendingrepo "smartbudget-go/internal/repository/postgres/spending"
	userrepo "smartbudget-go/internal/repository/postgres/user"
	"smartbudget-go/internal/transport/httpserver"
	"smartbudget-go/internal/transport/httpserver/handler"
	"smartbudget-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	publisher  events.Publisher
	log        logger.Logger
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(cfg.DB.GetDSN(), log); err != nil {
			return nil, err
		}
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	publisher, err := newPublisher(cfg.Events, log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	log.Info("app: initializing router")
	router := NewHandler(cfg, dbConn, publisher, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		publisher:  publisher,
		log:        log,
	}, nil
}

// NewHandler wires repositories, caches and services into the HTTP router.
func NewHandler(cfg config.Config, dbConn *gorm.DB, publisher events.Publisher, log logger.Logger) http.Handler {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	goalsRepo := goalsrepo.NewPostgres(dbConn)

	incomeService := incomedomain.NewService(incomerepo.NewPostgres(dbConn), inmemory.NewSourcesCache(cfg.Lookups.CacheTTL), publisher)
	spendingService := spendingdomain.NewService(spendingrepo.NewPostgres(dbConn), inmemory.NewCategoriesCache(), cfg.Lookups.CacheTTL, publisher)
	summaryService := summarydomain.NewService(incomeService, spendingService, goalsRepo)
	goalsService := goalsdomain.NewService(goalsRepo, publisher)
	historyService := historydomain.NewService(incomeService, spendingService)
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(incomeService, spendingService, goalsService, summaryService, historyService, log)
	return httpserver.NewRouter(cfg, handlers, userService, log)
}

func newPublisher(cfg config.EventsConfig, log logger.Logger) (events.Publisher, error) {
	if !cfg.Enabled() {
		log.Info("events: AMQP_URL not set, events disabled")
		return events.NoopPublisher{}, nil
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, log)
	if err != nil {
		return nil, fmt.Errorf("init events publisher: %w", err)
	}
	return publisher, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Error("events: close publisher failed", "err", err)
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
