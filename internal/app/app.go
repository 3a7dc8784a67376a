package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NastyaGoryachaya/termin-notifier/internal/config"
	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/infra/booking"
	"github.com/NastyaGoryachaya/termin-notifier/internal/infra/db"
	repobolt "github.com/NastyaGoryachaya/termin-notifier/internal/repository/bolt"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/memory"
	repopg "github.com/NastyaGoryachaya/termin-notifier/internal/repository/postgres"
	reporedis "github.com/NastyaGoryachaya/termin-notifier/internal/repository/redis"
	"github.com/NastyaGoryachaya/termin-notifier/internal/scheduler"
	fetchsvc "github.com/NastyaGoryachaya/termin-notifier/internal/service/fetch"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/notify"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/session"
	botpkg "github.com/NastyaGoryachaya/termin-notifier/internal/transport/bot"
	"github.com/NastyaGoryachaya/termin-notifier/internal/transport/httptransport"
)

const storeOpenTimeout = 10 * time.Second

type App struct {
	cfg *config.Config
	log *slog.Logger

	store    domain.SubscriberRepository
	sessions *session.Manager
	fetch    *fetchsvc.Fetcher

	scheduler *scheduler.Scheduler
	bot       *botpkg.Bot

	e    *echo.Echo
	serv *http.Server
}

func NewApp(cfg *config.Config, log *slog.Logger) (*App, error) {
	app := &App{cfg: cfg, log: log}

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	store, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	app.store = store

	locations := cfg.TrackedLocations()

	// без Telegram рассылка уходит в лог
	var sender notify.Sender = botpkg.NewLogSender(log)
	if cfg.Telegram.Enabled {
		dialog := botpkg.NewDialog(store, locations, log)
		b, err := botpkg.New(cfg.Telegram, dialog, log)
		if err != nil {
			_ = store.Close()
			log.Error("telegram init failed", slog.String("error", err.Error()))
			return nil, fmt.Errorf("telegram init: %w", err)
		}
		app.bot = b
		sender = b
	}

	client := booking.NewClient(cfg.Booking)
	app.sessions = session.NewManager(client, cfg.Booking.SessionAttempts, log)
	notifier := notify.New(store, sender, log)

	app.fetch = fetchsvc.NewService(app.sessions, client, notifier, locations, fetchsvc.Options{
		ServiceCode: cfg.Booking.ServiceCode,
		WindowDays:  cfg.Booking.WindowDays,
		TimeZone:    loadTimezone(cfg.Booking.Timezone, log),
	}, log)

	app.scheduler = scheduler.New(log,
		scheduler.Job{Name: "fetch_availability", Interval: cfg.Scheduler.FetchInterval(), Run: app.fetch.FetchAvailability},
		scheduler.Job{Name: "refresh_session", Interval: cfg.Scheduler.SessionRefreshInterval(), Run: app.sessions.OpenSession},
	)

	if cfg.Server.Enabled {
		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httptransport.NewAvailabilityHandler(log, app.fetch, app.sessions).RegisterRoutes(e)
		app.e = e
		app.serv = &http.Server{
			Addr:         cfg.Server.Addr,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			Handler:      e,
		}
	}

	log.Info("app initialized",
		slog.String("storage", cfg.Storage.Driver),
		slog.Int("locations", len(locations)),
		slog.Bool("telegram_enabled", cfg.Telegram.Enabled),
		slog.Bool("http_enabled", cfg.Server.Enabled),
		slog.Duration("fetch_interval", cfg.Scheduler.FetchInterval()),
		slog.Duration("session_refresh_interval", cfg.Scheduler.SessionRefreshInterval()),
	)
	return app, nil
}

// Run: сессия -> первый опрос -> бот, планировщик, HTTP; затем ждём отмены ctx
func (a *App) Run(ctx context.Context) error {
	if err := a.sessions.OpenSession(ctx); err != nil {
		a.log.Error("initial session failed, exiting", slog.String("error", err.Error()))
		_ = a.Shutdown(context.Background())
		return fmt.Errorf("initial session: %w", err)
	}

	if err := a.fetch.FetchAvailability(ctx); err != nil {
		a.log.Error("initial fetch failed", slog.String("error", err.Error()))
	}

	if a.bot != nil {
		a.log.Info("starting bot")
		a.bot.Start()
	}

	a.scheduler.Start(ctx)

	if a.e != nil {
		a.log.Info("starting server", slog.String("addr", a.cfg.Server.Addr))
		go func() {
			if err := a.e.StartServer(a.serv); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("http server error", slog.String("error", err.Error()))
			}
		}()
	}

	<-ctx.Done()
	a.log.Info("shutdown requested")
	return a.Shutdown(context.Background())
}

// Shutdown: планировщик, бот, HTTP, хранилище
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	schCtx, cancel := context.WithTimeout(ctx, a.cfg.Scheduler.ShutdownTimeout)
	if err := a.scheduler.Stop(schCtx); err != nil {
		a.log.Error("scheduler stop error", slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("scheduler: %w", err))
	}
	cancel()

	if a.bot != nil {
		a.bot.Stop()
	}

	if a.e != nil {
		shCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
		if err := a.e.Shutdown(shCtx); err != nil {
			a.log.Error("http shutdown error", slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
		cancel()
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("store close error", slog.String("error", err.Error()))
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	a.log.Info("application stopped")
	return errors.Join(errs...)
}

func openStore(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (domain.SubscriberRepository, error) {
	switch cfg.Driver {
	case "memory":
		log.Warn("using in-memory subscriber store, subscriptions are lost on restart")
		return memory.NewSubscriberRepo(), nil
	case "postgres":
		pool, err := db.NewPool(ctx, &cfg.Postgres)
		if err != nil {
			return nil, err
		}
		repo := repopg.NewSubscriberRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	case "redis":
		return reporedis.Open(ctx, cfg.Redis)
	case "bolt", "":
		return repobolt.Open(cfg.Bolt.Path, cfg.Bolt.Timeout, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// loadTimezone: зона для дат и окна запроса; при ошибке UTC
func loadTimezone(name string, log *slog.Logger) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn("unknown timezone, falling back to UTC", slog.String("tz", name), slog.String("error", err.Error()))
		return time.UTC
	}
	return loc
}
