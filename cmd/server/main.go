package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/modavista/storefront/internal/config"
	"github.com/modavista/storefront/internal/es"
	"github.com/modavista/storefront/internal/httpserver"
	"github.com/modavista/storefront/internal/logging"
	loggingmw "github.com/modavista/storefront/internal/middleware/logging"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/service/search"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		brokers := []string{configuration.KAFKA_ADDRESS}
		topics := []string{"user_events", "product_events", "order_events", "review_events"}
		prod, err = mykafka.NewProducer(brokers, topics)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var searchClient *search.Client
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchClient = &search.Client{ES: esClient, Index: "products"}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	r := repo.New(db)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r}, Producer: prod, Search: searchClient},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}, Producer: prod},
		OrderHandler:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r}, Producer: prod},
		ReviewHandler:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}, Producer: prod},
		FavoriteHandler: &httpserver.FavoriteHTTP{Svc: &service.FavoriteService{Repo: r}},
		StockHandler:    &httpserver.StockHTTP{Svc: &service.StockService{Repo: r}},
		SettingsHandler: &httpserver.SettingsHTTP{Svc: &service.SettingsService{Repo: r}},
		AuthHandler:     &httpserver.AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: jwtSecret, RefreshSecret: refreshSecret}, Producer: prod},
		SearchHandler:   &httpserver.SearchHTTP{Client: searchClient},
		JWTSecret:       jwtSecret,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if prod != nil {
		if err := prod.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
