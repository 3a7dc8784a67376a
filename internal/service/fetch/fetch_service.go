package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/infra/booking"
)

//go:generate mockgen -source=fetch_service.go -destination=mocks/fetch_mock.go -package=mocks

// Service: цикл опроса для планировщика и снимок для чтения
type Service interface {
	FetchAvailability(ctx context.Context) error
	GetAvailabilityData() map[int][]string
}

// Sessions: менеджер сессий (session.Manager)
type Sessions interface {
	Token() (string, bool)
	OpenSession(ctx context.Context) error
}

// AvailabilityClient: сервис записи (booking.Client)
type AvailabilityClient interface {
	FetchAvailability(ctx context.Context, token string, q booking.AvailabilityQuery) (booking.AvailabilityPayload, error)
}

// Notifier: рассылка по изменившейся локации (notify.Dispatcher)
type Notifier interface {
	Notify(ctx context.Context, loc domain.Location, dates []string) domain.DeliveryReport
}

// Options: параметры запроса к сервису записи
type Options struct {
	ServiceCode int
	WindowDays  int
	TimeZone    *time.Location
	Clock       Clock
}

// Fetcher хранит последний снимок дат по каждой локации и гоняет цикл fetch -> parse -> diff -> notify
type Fetcher struct {
	sessions  Sessions
	client    AvailabilityClient
	notifier  Notifier
	locations []domain.Location
	opts      Options
	logger    *slog.Logger

	mu        sync.Mutex
	snapshots map[int][]string
}

// NewService: конструктор; снимок заводится сразу для всех локаций (пустой)
func NewService(sessions Sessions, client AvailabilityClient, notifier Notifier, locations []domain.Location, opts Options, logger *slog.Logger) *Fetcher {
	if opts.Clock == nil {
		opts.Clock = NewRealClock()
	}
	if opts.TimeZone == nil {
		opts.TimeZone = time.UTC
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 30
	}

	locs := make([]domain.Location, len(locations))
	copy(locs, locations)

	snapshots := make(map[int][]string, len(locs))
	for _, l := range locs {
		snapshots[l.ID] = []string{}
	}
	return &Fetcher{
		sessions:  sessions,
		client:    client,
		notifier:  notifier,
		locations: locs,
		opts:      opts,
		logger:    logger,
		snapshots: snapshots,
	}
}

// FetchAvailability: один проход по всем локациям в порядке конфигурации.
// Ошибка одной локации логируется и не прерывает остальные.
func (f *Fetcher) FetchAvailability(ctx context.Context) error {
	log := f.logger.With(slog.String("cycle_id", uuid.NewString()))

	if _, ok := f.sessions.Token(); !ok {
		log.Info("auth token not available, opening a new session")
		if err := f.sessions.OpenSession(ctx); err != nil {
			log.Error("failed to open session, cannot fetch availability", slog.String("err", err.Error()))
			return fmt.Errorf("open session: %w", err)
		}
	}

	log.Info("fetching availability", slog.Int("locations", len(f.locations)))
	started := time.Now()
	var changed, failed int
	for _, loc := range f.locations {
		if err := ctx.Err(); err != nil {
			log.Warn("fetch cycle interrupted", slog.String("err", err.Error()))
			return err
		}
		updated, err := f.fetchLocation(ctx, log, loc)
		if err != nil {
			failed++
			log.Error("fetch location failed",
				slog.Int("location_id", loc.ID),
				slog.String("err", err.Error()))
			continue
		}
		if updated {
			changed++
		}
	}
	log.Info("fetch cycle completed",
		slog.Int("changed", changed),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(started)))
	return nil
}

// fetchLocation: запрос одной локации; на 401 одна попытка переоткрыть сессию и повторить запрос
func (f *Fetcher) fetchLocation(ctx context.Context, log *slog.Logger, loc domain.Location) (bool, error) {
	q := f.query(loc.ID)

	token, _ := f.sessions.Token()
	payload, err := f.client.FetchAvailability(ctx, token, q)
	switch {
	case errors.Is(err, booking.ErrUnauthorized):
		log.Warn("auth token expired or invalid, re-opening session", slog.Int("location_id", loc.ID))
		if err := f.sessions.OpenSession(ctx); err != nil {
			return false, fmt.Errorf("re-open session: %w", err)
		}
		token, _ = f.sessions.Token()
		payload, err = f.client.FetchAvailability(ctx, token, q)
		if err != nil {
			return false, fmt.Errorf("retry after session re-open: %w", err)
		}
	case err != nil:
		return false, err
	}

	dates, unexpected := ParseDates(payload.Dates, f.opts.TimeZone)
	for _, raw := range unexpected {
		log.Warn("unexpected date format",
			slog.Int("location_id", loc.ID),
			slog.String("entry", raw))
	}
	log.Debug("data received", slog.Int("location_id", loc.ID), slog.Int("dates", len(dates)))

	return f.update(ctx, log, loc, dates), nil
}

// update: сравнение и запись снимка атомарно под мьютексом; рассылка уже после записи
func (f *Fetcher) update(ctx context.Context, log *slog.Logger, loc domain.Location, dates []string) bool {
	f.mu.Lock()
	if sameDates(f.snapshots[loc.ID], dates) {
		f.mu.Unlock()
		log.Info("no changes in dates", slog.Int("location_id", loc.ID))
		return false
	}
	stored := make([]string, len(dates))
	copy(stored, dates)
	f.snapshots[loc.ID] = stored
	f.mu.Unlock()

	log.Info("updated dates", slog.Int("location_id", loc.ID), slog.Any("dates", dates))

	report := f.notifier.Notify(ctx, loc, dates)
	log.Info("subscribers notified",
		slog.Int("location_id", loc.ID),
		slog.Int("matched", report.Matched),
		slog.Int("delivered", report.Delivered),
		slog.Int("failed", len(report.Failures)))
	return true
}

func (f *Fetcher) query(locationID int) booking.AvailabilityQuery {
	now := f.opts.Clock.Now().In(f.opts.TimeZone)
	return booking.AvailabilityQuery{
		From:        now,
		Until:       now.AddDate(0, 0, f.opts.WindowDays),
		LocationID:  locationID,
		ServiceCode: f.opts.ServiceCode,
		CacheBuster: now.UnixMilli(),
	}
}

// GetAvailabilityData: глубокая копия снимка; изменения копии не влияют на состояние
func (f *Fetcher) GetAvailabilityData() map[int][]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[int][]string, len(f.snapshots))
	for id, dates := range f.snapshots {
		cp := make([]string, len(dates))
		copy(cp, dates)
		out[id] = cp
	}
	return out
}

// Locations: отслеживаемые локации в порядке опроса
func (f *Fetcher) Locations() []domain.Location {
	out := make([]domain.Location, len(f.locations))
	copy(out, f.locations)
	return out
}
