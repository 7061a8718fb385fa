package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"devicehub/internal/config"
	"devicehub/internal/observability/logging"
	"devicehub/internal/observability/metrics"
	"devicehub/internal/observability/middleware"
	"devicehub/internal/service"
	"devicehub/internal/store"
	httptransport "devicehub/internal/transport/http"
	"devicehub/pkg/db"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.NewLogger(logging.Config{
		ServiceName: "devicehub",
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: cfg.LogSQL})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)
	if err := st.AutoMigrate(); err != nil {
		logger.Error("automigrate", "error", err)
		os.Exit(1)
	}

	metrics.MustRegister()

	hasher := service.NewArgon2Hasher()
	users := service.NewUserService(st, hasher)
	sensors := service.NewSensorService(st)
	devices := service.NewDeviceService(st)

	var handler http.Handler = httptransport.NewRouter(users, sensors, devices)
	handler = httprate.LimitByIP(cfg.RateLimitPerMinute, 1*time.Minute)(handler)
	if cfg.CORSOrigins != "" {
		handler = cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		})(handler)
	}
	handler = middleware.WithRequestAndTrace(middleware.WithMetrics(handler))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("devicehub listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
