package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/agency-earnings-go/internal/config"
	appHTTP "github.com/cmlabs-hris/agency-earnings-go/internal/handler/http"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/cron"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/database"
	"github.com/cmlabs-hris/agency-earnings-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/agency-earnings-go/internal/repository/postgresql"
	bonusService "github.com/cmlabs-hris/agency-earnings-go/internal/service/bonus"
	earningsService "github.com/cmlabs-hris/agency-earnings-go/internal/service/earnings"
	employeeService "github.com/cmlabs-hris/agency-earnings-go/internal/service/employee"
	paymentService "github.com/cmlabs-hris/agency-earnings-go/internal/service/payment"
	timeEntryService "github.com/cmlabs-hris/agency-earnings-go/internal/service/timeentry"
	"github.com/go-chi/httplog/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: httplog.SchemaECS.Concise(cfg.App.Env != "production").ReplaceAttr,
	})).With(
		slog.String("app", "agency-earnings"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	bonusRuleRepo := postgresql.NewBonusRuleRepository(db)
	snapshotRepo := postgresql.NewSnapshotRepository(db)

	// Services
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	timeEntrySvc := timeEntryService.NewTimeEntryService(db, timeEntryRepo, employeeRepo)
	paymentSvc := paymentService.NewPaymentService(paymentRepo, employeeRepo)
	bonusRuleSvc := bonusService.NewBonusRuleService(bonusRuleRepo, employeeRepo)
	earningsSvc := earningsService.NewEarningsService(employeeRepo, timeEntryRepo, paymentRepo, bonusRuleRepo, snapshotRepo)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	// Handlers
	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewHealthHandler(db),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewTimeEntryHandler(timeEntrySvc),
		appHTTP.NewPaymentHandler(paymentSvc),
		appHTTP.NewBonusRuleHandler(bonusRuleSvc),
		appHTTP.NewEarningsHandler(earningsSvc),
	)

	var scheduler *cron.Scheduler
	if cfg.Cron.Enabled {
		scheduler = cron.NewScheduler(ctx)
		if err := cron.NewSnapshotJobs(earningsSvc, cfg.Cron.SnapshotInterval).RegisterJobs(scheduler); err != nil {
			return fmt.Errorf("failed to register cron jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server running", slog.String("addr", srv.Addr))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
