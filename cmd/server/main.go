package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/kmadan/splitledger/internal/auth"
	"github.com/kmadan/splitledger/internal/config"
	"github.com/kmadan/splitledger/internal/handler"
	"github.com/kmadan/splitledger/internal/middleware"
	"github.com/kmadan/splitledger/internal/notify"
	"github.com/kmadan/splitledger/internal/ocr"
	"github.com/kmadan/splitledger/internal/reminder"
	"github.com/kmadan/splitledger/internal/service"
	"github.com/kmadan/splitledger/internal/storage/sqlite"
	"github.com/kmadan/splitledger/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.AppEnv)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, time.Duration(cfg.TokenTTL)*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.DefaultCurrency)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Sender:   cfg.SenderEmail,
		})
		slog.Info("email notifications enabled", "host", cfg.SMTPHost)
	}

	var scanner ocr.Scanner
	if cfg.OCRServiceURL != "" {
		scanner = ocr.NewClient(cfg.OCRServiceURL, cfg.OCRAPIKey)
		slog.Info("bill scanning enabled", "url", cfg.OCRServiceURL)
	}

	authSvc := service.NewAuthService(authenticator, jwtManager)
	expenseSvc := service.NewExpenseService(store, notifier)
	friendSvc := service.NewFriendService(store)
	scanSvc := service.NewScanService(scanner, store)

	if cfg.ReminderSchedule != "" {
		c := cron.New()
		job := reminder.New(store, notifier)
		if err := job.Schedule(c, cfg.ReminderSchedule); err != nil {
			return fmt.Errorf("failed to schedule reminders: %w", err)
		}
		c.Start()
		defer c.Stop()
		slog.Info("debt reminders scheduled", "spec", cfg.ReminderSchedule)
	}

	router := newRouter(jwtManager, authSvc, expenseSvc, friendSvc, scanSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("server starting", "address", addr)
	return http.ListenAndServe(addr, corsMiddleware(router))
}

func newRouter(
	jwtManager *auth.JWTManager,
	authSvc *service.AuthService,
	expenseSvc *service.ExpenseService,
	friendSvc *service.FriendService,
	scanSvc *service.ScanService,
) *mux.Router {
	authHandler := handler.NewAuthHandler(authSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc)
	debtHandler := handler.NewDebtHandler(expenseSvc)
	friendHandler := handler.NewFriendHandler(friendSvc)
	scanHandler := handler.NewScanHandler(scanSvc)

	r := mux.NewRouter()
	r.Use(middleware.Logging, middleware.Metrics)

	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth(jwtManager, handler.Unauthorized))

	api.HandleFunc("/expenses", expenseHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/expenses", expenseHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/expenses/{id}", expenseHandler.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/debts/owed-to-me", debtHandler.OwedToMe).Methods(http.MethodGet)
	api.HandleFunc("/debts/owed-by-me", debtHandler.OwedByMe).Methods(http.MethodGet)
	api.HandleFunc("/debts/summary", debtHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/debts/{id}/settle", debtHandler.Settle).Methods(http.MethodPost)

	api.HandleFunc("/friends", friendHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/friends", friendHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/friends/{id}", friendHandler.Remove).Methods(http.MethodDelete)

	if scanSvc.Enabled() {
		api.HandleFunc("/bills/scan", scanHandler.Scan).Methods(http.MethodPost)
		api.HandleFunc("/bills/scan-history", scanHandler.History).Methods(http.MethodGet)
	}

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
