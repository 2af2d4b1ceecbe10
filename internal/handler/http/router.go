package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shramik-labs/labour-backend-go/internal/config"
	"github.com/shramik-labs/labour-backend-go/internal/handler/http/middleware"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	labourHandler LabourHandler,
	attendanceHandler AttendanceHandler,
	dashboardHandler DashboardHandler,
	masterHandler MasterHandler,
	reportHandler ReportHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "labour-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Stream auth rides on a query-param token, not the Authorization header
		r.Get("/events", eventsHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events/token", eventsHandler.GetStreamToken)

			r.Route("/labours", func(r chi.Router) {
				r.Get("/", labourHandler.List)
				r.Post("/", labourHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", labourHandler.Get)
					r.Put("/", labourHandler.Update)
					r.Delete("/", labourHandler.Delete)
					r.Get("/summary", reportHandler.LabourSummary)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", masterHandler.ListCategories)
				r.Post("/", masterHandler.CreateCategory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", masterHandler.GetCategory)
					r.Put("/", masterHandler.UpdateCategory)
					r.Delete("/", masterHandler.DeleteCategory)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListByDate)
				r.Post("/", attendanceHandler.Mark)
				r.Post("/bulk", attendanceHandler.BulkMark)
				r.Get("/range", attendanceHandler.ListRange)
				r.Delete("/{id}", attendanceHandler.Void)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", dashboardHandler.Overview)
				r.Get("/daily-summary", dashboardHandler.DailySummary)
				r.Get("/monthly-payroll", dashboardHandler.MonthlyPayroll)
				r.Get("/attendance-trend", dashboardHandler.AttendanceTrend)
				r.Get("/cost-trend", dashboardHandler.CostTrend)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/wages", reportHandler.WageReport)
			})
		})
	})
	return r
}
