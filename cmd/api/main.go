package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/config"
	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/domain/leave"
	"github.com/tempreco/ponto-backend-go/internal/domain/settings"
	"github.com/tempreco/ponto-backend-go/internal/fixtures"
	appHTTP "github.com/tempreco/ponto-backend-go/internal/handler/http"
	"github.com/tempreco/ponto-backend-go/internal/pkg/clock"
	"github.com/tempreco/ponto-backend-go/internal/pkg/cron"
	"github.com/tempreco/ponto-backend-go/internal/pkg/database"
	"github.com/tempreco/ponto-backend-go/internal/pkg/geocode"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
	"github.com/tempreco/ponto-backend-go/internal/pkg/sse"
	"github.com/tempreco/ponto-backend-go/internal/repository/memory"
	"github.com/tempreco/ponto-backend-go/internal/repository/postgresql"
	attendanceService "github.com/tempreco/ponto-backend-go/internal/service/attendance"
	dashboardService "github.com/tempreco/ponto-backend-go/internal/service/dashboard"
	employeeService "github.com/tempreco/ponto-backend-go/internal/service/employee"
	leaveService "github.com/tempreco/ponto-backend-go/internal/service/leave"
	settingsService "github.com/tempreco/ponto-backend-go/internal/service/settings"
)

type repositories struct {
	entries   attendance.EntryRepository
	balances  attendance.BalanceRepository
	employees employee.EmployeeRepository
	settings  settings.SettingsRepository
	requests  leave.LeaveRequestRepository
	tx        attendance.TxManager
	close     func()
}

func openRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (repositories, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return repositories{
			entries:   store.Entries(),
			balances:  store.Balances(),
			employees: store.Employees(),
			settings:  store.Settings(),
			requests:  store.LeaveRequests(),
			tx:        store.TxManager(),
			close:     func() {},
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return repositories{}, err
		}
		return repositories{
			entries:   postgresql.NewEntryRepository(db),
			balances:  postgresql.NewBalanceRepository(db),
			employees: postgresql.NewEmployeeRepository(db),
			settings:  postgresql.NewSettingsRepository(db),
			requests:  postgresql.NewLeaveRequestRepository(db),
			tx:        postgresql.NewTxManager(db),
			close:     db.Close,
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.Log)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repos.close()

	if cfg.App.SeedDemo {
		if err := fixtures.SeedDemo(ctx, repos.employees, log); err != nil {
			return err
		}
	}

	defaults, err := settingsService.DefaultsFromConfig(cfg.WorkHours)
	if err != nil {
		return fmt.Errorf("invalid work hours defaults: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	clk := clock.NewSystem(loc)
	hub := sse.NewHub()

	settingsSvc := settingsService.NewSettingsService(repos.settings, defaults, log)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.entries,
		repos.balances,
		repos.employees,
		settingsSvc,
		repos.tx,
		clk,
		loc,
		log,
	)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, log)
	leaveSvc := leaveService.NewLeaveService(repos.requests, repos.employees, repos.tx, clk, log)
	dashboardSvc := dashboardService.NewDashboardService(repos.entries, repos.employees, settingsSvc, clk, loc)

	scheduler := cron.NewScheduler(log)
	cron.NewLiveHoursJobs(attendanceSvc, hub, cfg.Live.RefreshInterval, log).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, JWTService, repos.employees, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, JWTService, hub, log),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
		Geocode:    appHTTP.NewGeocodeHandler(geocode.NewClient(cfg.Geocode), log),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Driver, "timezone", loc.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
