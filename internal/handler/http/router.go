package http

import (
	"log/slog"
	"os"

	"github.com/gestipresence/presence-backend-go/internal/config"
	"github.com/gestipresence/presence-backend-go/internal/handler/http/middleware"
	"github.com/gestipresence/presence-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Scan       ScanHandler
	Attendance AttendanceHandler
	Employee   EmployeeHandler
	Client     ClientHandler
	Absence    AbsenceHandler
	Badge      BadgeHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
	Settings   SettingsHandler
	Directory  DirectoryHandler
	Events     EventsHandler
}

func NewRouter(app config.AppConfig, logLevel slog.Level, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       logLevel,
	})).With(
		slog.String("app", app.Name),
		slog.String("version", app.Version),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Kiosk and dashboard routes
		r.Route("/scans", func(r chi.Router) {
			r.Post("/", h.Scan.Scan)
			r.Get("/recent", h.Scan.RecentScans)
		})
		r.Get("/dashboard", h.Dashboard.GetDashboard)
		r.Get("/events", h.Events.Stream)
		r.Get("/badges/{code}", h.Badge.Render)
		r.Get("/directory/{code}", h.Directory.Lookup)
		r.Get("/settings", h.Settings.Get)

		r.Get("/attendance", h.Attendance.List)
		r.Get("/attendance/{id}", h.Attendance.Get)

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.AdminOnly)

			r.Post("/attendance", h.Attendance.Create)
			r.Put("/attendance/{id}", h.Attendance.Update)
			r.Delete("/attendance/{id}", h.Attendance.Delete)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{code}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Patch("/status", h.Employee.UpdateStatus)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", h.Client.List)
				r.Post("/", h.Client.Create)
				r.Route("/{code}", func(r chi.Router) {
					r.Get("/", h.Client.Get)
					r.Put("/", h.Client.Update)
					r.Delete("/", h.Client.Delete)
				})
			})

			r.Route("/absences", func(r chi.Router) {
				r.Get("/", h.Absence.List)
				r.Post("/", h.Absence.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Absence.Get)
					r.Put("/", h.Absence.Update)
					r.Delete("/", h.Absence.Delete)
					r.Post("/justification", h.Absence.UploadJustification)
					r.Get("/justification", h.Absence.DownloadJustification)
				})
			})

			r.Get("/reports/{dataset}", h.Report.Export)
			r.Put("/settings", h.Settings.Update)
		})
	})
	return r
}
