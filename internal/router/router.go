package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	_ "eventhorizon/docs"
	"eventhorizon/internal/adapters/auth/jwtauth"
	"eventhorizon/internal/adapters/cache/redisviews"
	"eventhorizon/internal/adapters/eventsource"
	mem "eventhorizon/internal/adapters/storage/memory"
	mongostore "eventhorizon/internal/adapters/storage/mongo"
	pg "eventhorizon/internal/adapters/storage/postgres"
	"eventhorizon/internal/domain/events"
	"eventhorizon/internal/domain/users"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/platform/logger"
	"eventhorizon/internal/platform/metrics"
	"eventhorizon/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

type Options struct {
	// Puede ser nil (modo dev: X-Debug-User-ID / X-Debug-Role).
	AuthVerifier auth.TokenVerifier
	TokenIssuer  auth.TokenIssuer

	Log logger.Logger

	// Opcionales: si vienen se usan tal cual; si no, se intenta por env
	// (MONGO_URI > DB_DSN > in-memory).
	DB      *sql.DB
	MongoDB *mongodrv.Database

	ExternalSource events.ExternalSource
	ViewCounter    events.ViewCounter
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: corsOrigins(),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Debug-User-ID", "X-Debug-Role"},
	}).Handler)
	r.Use(chimw.Throttle(100))

	verifier, issuer := opts.AuthVerifier, opts.TokenIssuer
	if verifier == nil && issuer == nil {
		p := jwtauth.New(jwtauth.Config{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: os.Getenv("JWT_ISSUER"),
		})
		issuer = p
		if p.IsConfigured() {
			verifier = p
		}
	}

	r.Use(middleware.AuthContext(verifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		eventRepo events.Repository
		userRepo  users.Repository
	)

	// Selección de storage: Mongo explícito o por env, después Postgres,
	// después in-memory (dev/tests).
	switch {
	case opts.MongoDB != nil:
		eventRepo = mongostore.NewEventsRepo(opts.MongoDB)
		userRepo = mongostore.NewUsersRepo(opts.MongoDB)
	case opts.DB != nil:
		eventRepo = pg.NewEventsRepo(opts.DB)
		userRepo = pg.NewUsersRepo(opts.DB)
	default:
		if uri := os.Getenv("MONGO_URI"); uri != "" {
			if db, err := mongostore.Open(uri, os.Getenv("MONGO_DB")); err == nil {
				eventRepo = mongostore.NewEventsRepo(db)
				userRepo = mongostore.NewUsersRepo(db)
			} else {
				log.Warn("mongo unavailable, falling back", map[string]any{"error": err.Error()})
			}
		}
		if eventRepo == nil {
			if dsn := os.Getenv("DB_DSN"); dsn != "" {
				if db, err := pg.Open(dsn); err == nil {
					eventRepo = pg.NewEventsRepo(db)
					userRepo = pg.NewUsersRepo(db)
				} else {
					log.Warn("postgres unavailable, falling back", map[string]any{"error": err.Error()})
				}
			}
		}
		if eventRepo == nil {
			eventRepo = mem.NewEventRepo()
			userRepo = mem.NewUserRepo()
		}
	}

	eventsSvc := events.NewService(eventRepo)
	usersSvc := users.NewService(userRepo, issuer)

	// Feed externo de eventos (opcional).
	if opts.ExternalSource != nil {
		eventsSvc.AttachExternalSource(opts.ExternalSource)
	} else if base := os.Getenv("EVENTS_FEED_URL"); base != "" {
		if client, err := eventsource.NewClient(eventsource.Config{
			BaseURL: base,
			APIKey:  os.Getenv("EVENTS_FEED_API_KEY"),
		}); err == nil && client.IsConfigured() {
			eventsSvc.AttachExternalSource(client)
		}
	}

	// Contador de vistas en Redis (opcional).
	if opts.ViewCounter != nil {
		eventsSvc.AttachViewCounter(opts.ViewCounter)
	} else if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		if counter, err := redisviews.New(redisviews.Config{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		}); err == nil {
			eventsSvc.AttachViewCounter(counter)
		} else {
			log.Warn("redis unavailable, views go to the store", map[string]any{"error": err.Error()})
		}
	}

	// Seed del admin inicial por env.
	if email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL")); email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := usersSvc.EnsureAdmin(ctx, os.Getenv("ADMIN_NAME"), email, os.Getenv("ADMIN_PASSWORD")); err != nil {
			log.Warn("admin seed failed", map[string]any{"error": err.Error()})
		}
		cancel()
	}

	users.RegisterRoutes(r, usersSvc)
	events.RegisterRoutes(r, eventsSvc)

	return r
}

func corsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
