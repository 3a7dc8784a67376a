package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/termin-notifier/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Scheduler: config.SchedulerConfig{FetchIntervalMinutes: 5, SessionRefreshIntervalMinutes: 30},
		Booking:   config.BookingConfig{SessionAttempts: 5, WindowDays: 30},
		Telegram:  config.TelegramConfig{Enabled: true, Token: "123:abc"},
		Storage:   config.StorageConfig{Driver: "bolt"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr string
	}{
		{"ok", func(*config.Config) {}, ""},
		{"zero fetch interval", func(c *config.Config) { c.Scheduler.FetchIntervalMinutes = 0 }, "fetch interval"},
		{"zero refresh interval", func(c *config.Config) { c.Scheduler.SessionRefreshIntervalMinutes = 0 }, "session refresh"},
		{"no attempts", func(c *config.Config) { c.Booking.SessionAttempts = 0 }, "session attempts"},
		{"no window", func(c *config.Config) { c.Booking.WindowDays = 0 }, "window days"},
		{"missing token", func(c *config.Config) { c.Telegram.Token = " " }, "TELEGRAM_TOKEN"},
		{"telegram off without token", func(c *config.Config) { c.Telegram = config.TelegramConfig{} }, ""},
		{"bad driver", func(c *config.Config) { c.Storage.Driver = "sqlite" }, "storage driver"},
		{"duplicate location", func(c *config.Config) {
			c.Locations = []config.LocationConfig{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}
		}, "duplicate location"},
		{"empty name", func(c *config.Config) {
			c.Locations = []config.LocationConfig{{ID: 1, Name: ""}}
		}, "empty name"},
		{"non-positive id", func(c *config.Config) {
			c.Locations = []config.LocationConfig{{ID: 0, Name: "A"}}
		}, "location id"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTrackedLocations(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	def := cfg.TrackedLocations()
	if len(def) != 7 || def[0].ID != 1 || def[len(def)-1].ID != 10 {
		t.Fatalf("unexpected default table: %+v", def)
	}

	cfg.Locations = []config.LocationConfig{{ID: 6, Name: "Bad Cannstatt"}, {ID: 1, Name: "Mitte"}}
	got := cfg.TrackedLocations()
	if len(got) != 2 || got[0].ID != 6 || got[1].Name != "Mitte" {
		t.Fatalf("configured order not kept: %+v", got)
	}
}

func TestIntervals(t *testing.T) {
	t.Parallel()
	s := config.SchedulerConfig{FetchIntervalMinutes: 5, SessionRefreshIntervalMinutes: 30}
	if s.FetchInterval() != 5*time.Minute || s.SessionRefreshInterval() != 30*time.Minute {
		t.Fatalf("unexpected intervals: %v %v", s.FetchInterval(), s.SessionRefreshInterval())
	}
}
