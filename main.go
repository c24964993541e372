package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"celerium-registration/config"
	"celerium-registration/database"
	"celerium-registration/internal/app/flow"
	routes "celerium-registration/internal/app/http"
	"celerium-registration/internal/infra/payment"
	"celerium-registration/internal/infra/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	if config.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := newStore()

	gateway, err := newGateway()
	if err != nil {
		slog.Error("❌ Payment gateway not available", "error", err)
		os.Exit(1)
	}

	routeOpts := routes.Options{
		SessionSecret: []byte(config.SESSION_SECRET),
		CSRFKey:       []byte(config.CSRF_KEY),
		SecureCookies: config.Production(),
	}

	var opts []flow.Option
	if database.DB != nil {
		ledger := payment.NewGormLedger(database.DB)
		opts = append(opts, flow.WithLedger(ledger))
		routeOpts.Payments = ledger
		routeOpts.WebhookSecret = config.STRIPE_WEBHOOK_SECRET
		routeOpts.Checkouts = ledger
	}
	registrationFlow := flow.New(store, gateway, opts...)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, registrationFlow, routeOpts)

	if err := r.Run(":" + config.PORT); err != nil {
		slog.Error("❌ Server stopped", "error", err)
		os.Exit(1)
	}
}

// newStore picks the slot backend. The payments table is migrated whenever a
// database is configured, even if slots live elsewhere.
func newStore() storage.Store {
	if config.DB_URL != "" {
		database.InitDB(config.DB_URL)
	}

	switch config.STORAGE_DRIVER {
	case config.StoragePostgres:
		return storage.NewGormStore(database.DB)
	case config.StorageRedis:
		database.ConnectRedis(config.REDIS_ADDR)
		return storage.NewRedisStore(database.RDB, 0)
	default:
		return storage.NewMemoryStore(0)
	}
}

func newGateway() (payment.Gateway, error) {
	if config.PAYMENT_PROVIDER == config.PaymentStripe {
		return payment.NewStripeGateway(config.STRIPE_SECRET_KEY, config.APP_URL)
	}
	return payment.NewHTTPGateway(config.PAYMENT_URL, nil), nil
}
