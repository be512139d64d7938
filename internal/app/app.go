package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/config"
	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
	"github.com/gestipresence/presence-backend-go/internal/domain/badge"
	"github.com/gestipresence/presence-backend-go/internal/domain/report"
	"github.com/gestipresence/presence-backend-go/internal/domain/scan"
	"github.com/gestipresence/presence-backend-go/internal/fixtures"
	appHTTP "github.com/gestipresence/presence-backend-go/internal/handler/http"
	"github.com/gestipresence/presence-backend-go/internal/pkg/codegen"
	"github.com/gestipresence/presence-backend-go/internal/pkg/cron"
	"github.com/gestipresence/presence-backend-go/internal/pkg/database"
	"github.com/gestipresence/presence-backend-go/internal/pkg/jwt"
	"github.com/gestipresence/presence-backend-go/internal/pkg/sse"
	"github.com/gestipresence/presence-backend-go/internal/pkg/storage"
	"github.com/gestipresence/presence-backend-go/internal/pkg/telegram"
	"github.com/gestipresence/presence-backend-go/internal/repository/memory"
	"github.com/gestipresence/presence-backend-go/internal/repository/postgresql"
	"github.com/gestipresence/presence-backend-go/internal/repository/sqlite"
	absenceService "github.com/gestipresence/presence-backend-go/internal/service/absence"
	attendanceService "github.com/gestipresence/presence-backend-go/internal/service/attendance"
	authService "github.com/gestipresence/presence-backend-go/internal/service/auth"
	badgeService "github.com/gestipresence/presence-backend-go/internal/service/badge"
	clientService "github.com/gestipresence/presence-backend-go/internal/service/client"
	dashboardService "github.com/gestipresence/presence-backend-go/internal/service/dashboard"
	directoryService "github.com/gestipresence/presence-backend-go/internal/service/directory"
	employeeService "github.com/gestipresence/presence-backend-go/internal/service/employee"
	"github.com/gestipresence/presence-backend-go/internal/service/file"
	reportService "github.com/gestipresence/presence-backend-go/internal/service/report"
	settingsService "github.com/gestipresence/presence-backend-go/internal/service/settings"
	"gorm.io/gorm"
)

// App holds the wired services of one process. Close releases the database
// handles it opened.
type App struct {
	Config *config.Config

	Attendance attendance.AttendanceService
	Absences   absence.AbsenceService
	Badges     badge.BadgeService
	Reports    report.ReportService
	Hub        *sse.Hub
	Scheduler  *cron.Scheduler
	Router     http.Handler

	pg       *database.DB
	settings *gorm.DB
}

type repositories struct {
	fixtures.Repositories
	transactor database.Transactor
}

// Build opens the configured stores, seeds them when asked and wires every
// service and handler.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	repos, err := a.openLedger(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.Storage.Seed {
		ds, err := fixtures.Load()
		if err != nil {
			a.Close()
			return nil, err
		}
		sum, err := fixtures.Apply(ctx, ds, repos.Repositories)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
		slog.Info("Seed data applied",
			"employees", sum.Employees,
			"clients", sum.Clients,
			"attendance", sum.Attendance,
			"absences", sum.Absences,
		)
	}

	a.settings, err = sqlite.Open(cfg.Settings.SQLitePath)
	if err != nil {
		a.Close()
		return nil, err
	}
	settingsRepo, err := sqlite.NewSettingsRepository(a.settings)
	if err != nil {
		a.Close()
		return nil, err
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.FilesPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}
	fileService := file.NewFileService(fileStorage)

	var notifier attendanceService.Notifier
	if cfg.Telegram.Token != "" {
		tg, err := telegram.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Telegram.Debug)
		if err != nil {
			a.Close()
			return nil, err
		}
		notifier = tg
		slog.Info("Telegram notifications enabled", "chat_id", cfg.Telegram.ChatID)
	}

	loc := cfg.Location()
	codes := codegen.NewGenerator()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	a.Hub = sse.NewHub()

	dirSvc := directoryService.NewDirectoryService(repos.Employees, repos.Clients)
	a.Attendance = attendanceService.NewAttendanceService(
		repos.Attendance,
		dirSvc,
		scan.NewBadgeDetector(),
		a.Hub,
		notifier,
		attendanceService.Config{Location: loc, RecentLimit: cfg.Scanner.RecentScanLimit},
	)
	a.Absences = absenceService.NewAbsenceService(repos.transactor, repos.Absences, repos.Employees, fileService, loc)
	a.Badges = badgeService.NewBadgeService(dirSvc)
	a.Reports = reportService.NewReportService(repos.Attendance, repos.Employees, repos.Clients, repos.Absences)
	empSvc := employeeService.NewEmployeeService(repos.transactor, repos.Employees, repos.Absences, fileService, codes)
	cliSvc := clientService.NewClientService(repos.Clients, codes)
	dashSvc := dashboardService.NewDashboardService(repos.Attendance, repos.Employees, a.Attendance, loc)
	setSvc := settingsService.NewSettingsService(settingsRepo)
	authSvc := authService.NewAuthService(authService.Credentials{
		Username:       cfg.Auth.AdminUsername,
		PassphraseHash: cfg.Auth.AdminPassphraseHash,
	}, JWTService)

	a.Scheduler = cron.NewScheduler(loc)
	a.Scheduler.AddJob("scan_stream_subscribers", 5*time.Minute, func(ctx context.Context) error {
		slog.Debug("Scan stream subscribers", "count", a.Hub.SubscriberCount(attendanceService.TopicScans))
		return nil
	})
	if cfg.Cron.Enabled {
		jobs := cron.NewAbsenceJobs(a.Absences, loc)
		if err := jobs.RegisterJobs(a.Scheduler, cfg.Cron.AbsenceSpec); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.Router = appHTTP.NewRouter(cfg.App, cfg.SlogLevel(), JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Scan:       appHTTP.NewScanHandler(a.Attendance),
		Attendance: appHTTP.NewAttendanceHandler(a.Attendance),
		Employee:   appHTTP.NewEmployeeHandler(empSvc),
		Client:     appHTTP.NewClientHandler(cliSvc),
		Absence:    appHTTP.NewAbsenceHandler(a.Absences),
		Badge:      appHTTP.NewBadgeHandler(a.Badges),
		Report:     appHTTP.NewReportHandler(a.Reports),
		Dashboard:  appHTTP.NewDashboardHandler(dashSvc),
		Settings:   appHTTP.NewSettingsHandler(setSvc),
		Directory:  appHTTP.NewDirectoryHandler(dirSvc),
		Events:     appHTTP.NewEventsHandler(a.Hub, attendanceService.TopicScans),
	})

	return a, nil
}

func (a *App) openLedger(ctx context.Context) (repositories, error) {
	switch a.Config.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(a.Config.DatabaseURL(), a.Config.Database.MaxConns, a.Config.Database.MinConns)
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.pg = db
		if err := postgresql.Migrate(ctx, db); err != nil {
			return repositories{}, err
		}
		slog.Info("Using PostgreSQL ledger", "host", a.Config.Database.Host, "database", a.Config.Database.Name)
		return repositories{
			Repositories: fixtures.Repositories{
				Employees:  postgresql.NewEmployeeRepository(db),
				Clients:    postgresql.NewClientRepository(db),
				Attendance: postgresql.NewAttendanceRepository(db),
				Absences:   postgresql.NewAbsenceRepository(db),
			},
			transactor: postgresql.NewTransactor(db),
		}, nil

	default:
		store := memory.NewStore()
		slog.Info("Using in-memory ledger")
		return repositories{
			Repositories: fixtures.Repositories{
				Employees:  memory.NewEmployeeRepository(store),
				Clients:    memory.NewClientRepository(store),
				Attendance: memory.NewAttendanceRepository(store),
				Absences:   memory.NewAbsenceRepository(store),
			},
			transactor: memory.NewTransactor(store),
		}, nil
	}
}

// Close releases database handles. Safe to call on a partially built App.
func (a *App) Close() {
	if a.pg != nil {
		a.pg.Close()
		a.pg = nil
	}
	if a.settings != nil {
		if sqlDB, err := a.settings.DB(); err == nil {
			_ = sqlDB.Close()
		}
		a.settings = nil
	}
}
