package main

import (
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/auth"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/cart"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/catalog"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/content"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/order"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/review"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/sale"
	"github.com/hamidraza-dev/bazaarline-backend/internal/modules/user"
)

func main() {
	_ = godotenv.Load() // optional; containers supply the real environment

	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "bazaarline-api").Logger()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().Msg("connected to postgres")

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(kafkaBrokers()...),
		Topic:                  "order-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	defer kafkaWriter.Close()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(log))
	router.Use(middleware.Recoverer)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService).RegisterRoutes(router)

	authService := user.NewAuthService(userRepo)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Sales & Catalog ────────────────────────────
	saleRepo := sale.NewPostgresRepository(db)
	saleCache := sale.NewCache(saleRepo, sale.DefaultCacheTTL)
	saleService := sale.NewService(saleRepo, saleCache)
	sale.NewHandler(saleService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, saleCache)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 3: Carts ──────────────────────────────────────
	userCarts := cart.NewPostgresStore(db)
	guestCarts := cart.NewRedisStore(rdb, cart.GuestCartTTL)
	cartService := cart.NewService(userCarts, guestCarts, catalogRepo, saleCache)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Phase 4: Orders ─────────────────────────────────────
	orderRepo := order.NewPostgresRepository(db)
	orderEvents := order.NewKafkaPublisher(kafkaWriter, log)
	orderService := order.NewService(orderRepo, cartService, orderEvents)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Phase 5: Reviews & Content ──────────────────────────
	reviewRepo := review.NewPostgresRepository(db)
	reviewService := review.NewService(reviewRepo)
	review.NewHandler(reviewService).RegisterRoutes(router)

	contentRepo := content.NewPostgresRepository(db)
	contentService := content.NewService(contentRepo)
	content.NewHandler(contentService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("bazaarline API server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func kafkaBrokers() []string {
	raw := os.Getenv("KAFKA_BROKERS")
	if raw == "" {
		raw = "localhost:9092"
	}
	return strings.Split(raw, ",")
}

// requestLogger logs one line per request with method, path, status and
// latency, tagged with the chi request ID.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
