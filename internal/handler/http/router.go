package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/tempreco/ponto-backend-go/internal/config"
	"github.com/tempreco/ponto-backend-go/internal/handler/http/middleware"
	"github.com/tempreco/ponto-backend-go/internal/pkg/jwt"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
)

const version = "v1.0.0"

type Handlers struct {
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Settings   SettingsHandler
	Dashboard  DashboardHandler
	Geocode    GeocodeHandler
	Leave      LeaveHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, directory middleware.Directory, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	adminOnly := middleware.AdminOnly(directory)
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	accessLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(accessLogger, &httplog.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Authenticated by the stream token in the query string
		r.Get("/attendance/live", h.Attendance.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today", h.Attendance.Today)
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/lunch-out", h.Attendance.LunchOut)
				r.Post("/lunch-in", h.Attendance.LunchIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/my", h.Attendance.GetMyAttendance)
				r.Get("/balance", h.Attendance.GetMyBalance)
				r.Get("/live/token", h.Attendance.GetStreamToken)

				// Admin only
				r.With(adminOnly).Get("/", h.Attendance.List)
			})

			r.Route("/settings/work-hours", func(r chi.Router) {
				r.Get("/", h.Settings.GetWorkHours)
				r.With(adminOnly).Put("/", h.Settings.UpdateWorkHours)
			})

			r.Get("/geocode/reverse", h.Geocode.Reverse)

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/my", h.Leave.MyRequests)
				r.Put("/{id}", h.Leave.UpdateRequest)
				r.Delete("/{id}", h.Leave.DeleteRequest)

				// Admin only
				r.With(adminOnly).Get("/", h.Leave.ListRequests)
				r.With(adminOnly).Put("/{id}/approve", h.Leave.Approve)
				r.With(adminOnly).Put("/{id}/reject", h.Leave.Reject)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)

				r.Get("/dashboard", h.Dashboard.GetDashboard)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", h.Employee.GetEmployee)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Get("/balance", h.Attendance.GetEmployeeBalance)
					})
				})
			})
		})
	})
	return r
}
