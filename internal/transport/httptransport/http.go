package httptransport

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/NastyaGoryachaya/termin-notifier/internal/consts"
	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
	"github.com/NastyaGoryachaya/termin-notifier/internal/ports/errcode"
)

// AvailabilityReader: снимок дат и список локаций (fetch.Fetcher)
type AvailabilityReader interface {
	GetAvailabilityData() map[int][]string
	Locations() []domain.Location
}

// SessionState: есть ли сейчас токен (session.Manager)
type SessionState interface {
	Token() (string, bool)
}

// LocationAvailability: DTO одной локации
type LocationAvailability struct {
	LocationID int      `json:"location_id"`
	Name       string   `json:"name"`
	Dates      []string `json:"dates"`
}

// AvailabilityHandler: read-only API над снимком доступности
type AvailabilityHandler struct {
	logger   *slog.Logger
	svc      AvailabilityReader
	sessions SessionState
}

func NewAvailabilityHandler(logger *slog.Logger, svc AvailabilityReader, sessions SessionState) *AvailabilityHandler {
	if logger == nil {
		log.Fatal("nil logger")
	}
	if svc == nil {
		log.Fatal("nil service")
	}
	return &AvailabilityHandler{logger: logger, svc: svc, sessions: sessions}
}

func (h *AvailabilityHandler) RegisterRoutes(r interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}) {
	r.GET("/health", h.Health)
	r.GET("/availability", h.GetAvailability)
	r.GET("/availability/:id", h.GetLocation)
}

func (h *AvailabilityHandler) Health(c echo.Context) error {
	session := "unknown"
	if h.sessions != nil {
		session = "missing"
		if _, ok := h.sessions.Token(); ok {
			session = "active"
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "session": session})
}

// GetAvailability: все локации в порядке опроса
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
	data := h.svc.GetAvailabilityData()
	locs := h.svc.Locations()

	out := make([]LocationAvailability, 0, len(locs))
	for _, l := range locs {
		out = append(out, makeLocation(l, data[l.ID]))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AvailabilityHandler) GetLocation(c echo.Context) error {
	raw := strings.TrimSpace(c.Param("id"))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return writeError(c, errcode.BadRequest, echo.Map{"id": raw})
	}

	item, err := h.lookup(id)
	if err != nil {
		code := FromServiceError(err)
		if code == errcode.Internal {
			h.logger.Error("GetLocation failed",
				slog.Int("location_id", id),
				slog.String("error", err.Error()))
		}
		return writeError(c, code, echo.Map{"id": id})
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AvailabilityHandler) lookup(id int) (LocationAvailability, error) {
	loc, ok := consts.FindLocation(h.svc.Locations(), id)
	if !ok {
		return LocationAvailability{}, fmt.Errorf("location %d: %w", id, errs.ErrLocationNotFound)
	}
	// у каждой отслеживаемой локации есть снимок, хотя бы пустой
	dates, ok := h.svc.GetAvailabilityData()[id]
	if !ok {
		return LocationAvailability{}, fmt.Errorf("location %d has no snapshot: %w", id, errs.ErrInternal)
	}
	return makeLocation(loc, dates), nil
}

func makeLocation(l domain.Location, dates []string) LocationAvailability {
	if dates == nil {
		dates = []string{}
	}
	return LocationAvailability{LocationID: l.ID, Name: l.Name, Dates: dates}
}

func writeError(c echo.Context, code errcode.Code, extra echo.Map) error {
	body := echo.Map{"error": string(code)}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(httpStatus(code), body)
}
