package httptransport_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
	"github.com/NastyaGoryachaya/termin-notifier/internal/ports/errcode"
	"github.com/NastyaGoryachaya/termin-notifier/internal/transport/httptransport"
)

type fakeReader struct {
	locs []domain.Location
	data map[int][]string
}

func (f fakeReader) GetAvailabilityData() map[int][]string { return f.data }
func (f fakeReader) Locations() []domain.Location { return f.locs }

type fakeSessions struct{ ok bool }

func (f fakeSessions) Token() (string, bool) { return "tok", f.ok }

func newServer() *echo.Echo {
	e := echo.New()
	h := httptransport.NewAvailabilityHandler(slog.Default(), fakeReader{
		locs: []domain.Location{{ID: 1, Name: "Bürgerbüro MITTE"}, {ID: 5, Name: "Bürgerbüro WEST"}},
		data: map[int][]string{1: {"01.01.2025", "02.01.2025"}, 5: {}},
	}, fakeSessions{ok: true})
	h.RegisterRoutes(e)
	return e
}

func do(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()
	rec := do(t, newServer(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "ok" || body["session"] != "active" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGetAvailability(t *testing.T) {
	t.Parallel()
	rec := do(t, newServer(), "/availability")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out []httptransport.LocationAvailability
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0].LocationID != 1 || len(out[0].Dates) != 2 || out[1].LocationID != 5 {
		t.Fatalf("unexpected body: %+v", out)
	}
	if out[1].Dates == nil {
		t.Fatal("empty dates must be a list, not null")
	}
}

func TestGetLocation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"found", "/availability/1", http.StatusOK, ""},
		{"unknown id", "/availability/42", http.StatusNotFound, "NOT_FOUND_LOCATION"},
		{"not a number", "/availability/abc", http.StatusBadRequest, "BAD_REQUEST"},
		{"negative", "/availability/-1", http.StatusBadRequest, "BAD_REQUEST"},
	}
	e := newServer()
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, e, tc.path)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.code == "" {
				var item httptransport.LocationAvailability
				_ = json.Unmarshal(rec.Body.Bytes(), &item)
				if item.Name != "Bürgerbüro MITTE" || len(item.Dates) != 2 {
					t.Fatalf("unexpected body: %+v", item)
				}
				return
			}
			var body map[string]any
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["error"] != tc.code {
				t.Fatalf("error = %v, want %s", body["error"], tc.code)
			}
		})
	}
}

// Локация отслеживается, но снимка нет: 500 и код INTERNAL_ERROR
func TestGetLocation_MissingSnapshot(t *testing.T) {
	t.Parallel()
	e := echo.New()
	httptransport.NewAvailabilityHandler(slog.Default(), fakeReader{
		locs: []domain.Location{{ID: 6, Name: "Bürgerbüro BAD CANNSTATT"}},
		data: map[int][]string{},
	}, fakeSessions{ok: true}).RegisterRoutes(e)

	rec := do(t, e, "/availability/6")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "INTERNAL_ERROR" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestFromServiceError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want errcode.Code
	}{
		{fmt.Errorf("location 3: %w", errs.ErrLocationNotFound), errcode.NotFoundLocation},
		{fmt.Errorf("snapshot: %w", errs.ErrInternal), errcode.Internal},
		{errors.New("boom"), errcode.Internal},
	}
	for _, tc := range tests {
		if got := httptransport.FromServiceError(tc.err); got != tc.want {
			t.Errorf("FromServiceError(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
