package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/zahlenlotto/lotto-services/configs"
	mongodb "github.com/zahlenlotto/lotto-services/internal/db"
	pgdb "github.com/zahlenlotto/lotto-services/internal/sessionsvc/db"
	handlers "github.com/zahlenlotto/lotto-services/internal/sessionsvc/handlers"
	"github.com/zahlenlotto/lotto-services/internal/sessionsvc/service"
	"github.com/zahlenlotto/lotto-services/internal/sessionsvc/store"
)

const SERVICE_NAME = "session"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// session state store: mongo with ttl eviction, in-memory fallback
	var stateStore store.StateStore
	if os.Getenv("MONGODB_URI") != "" {
		db, cancel, err := mongodb.ConnectToMongo()
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer cancel()

		ctx, cancelIdx := context.WithTimeout(context.Background(), 10*time.Second)
		mongoStore, err := store.NewMongoStore(ctx, db)
		cancelIdx()
		if err != nil {
			log.Fatalf("Failed to init session store: %v", err)
		}
		stateStore = mongoStore
		log.Printf("mongo connection established successfully")
	} else {
		stateStore = store.NewMemoryStore()
		log.Warn("MONGODB_URI not set, using in-memory session store")
	}

	// optional draw-event archive
	var archiveStore *store.ArchiveStore
	if os.Getenv("POSTGRES_URL") != "" {
		dbpool, err := pgdb.Connect()
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pgdb.ClosePool()
		log.Printf("pg connection established successfully")

		archiveStore = store.NewArchiveStore(dbpool)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = archiveStore.EnsureSchema(ctx)
		cancel()
		if err != nil {
			log.Fatalf("Failed to ensure archive schema: %v", err)
		}
	} else {
		log.Warn("POSTGRES_URL not set, draw-event archive disabled")
	}

	sessionService := service.NewSessionService(stateStore, archiveStore)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(sessionService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("SESSION_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
