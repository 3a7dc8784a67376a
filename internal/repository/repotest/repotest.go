// Package repotest: общий набор проверок для драйверов хранилища подписчиков
package repotest

import (
	"context"
	"errors"
	"testing"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
)

// Run гоняет контракт SubscriberRepository; newRepo должен возвращать пустое хранилище
func Run(t *testing.T, newRepo func(t *testing.T) domain.SubscriberRepository) {
	t.Helper()

	t.Run("get missing", func(t *testing.T) {
		repo := newRepo(t)
		if _, err := repo.Get(context.Background(), 1); !errors.Is(err, errs.ErrSubscriberNotFound) {
			t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
		}
	})

	t.Run("create and get", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		if err := repo.Create(ctx, domain.Subscriber{ChatID: 42, PreferredLocations: "1,5"}); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.Get(ctx, 42)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ChatID != 42 || got.PreferredLocations != "1,5" {
			t.Fatalf("unexpected subscriber: %+v", got)
		}
	})

	t.Run("create twice", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		_ = repo.Create(ctx, domain.Subscriber{ChatID: 7, PreferredLocations: "1"})
		err := repo.Create(ctx, domain.Subscriber{ChatID: 7, PreferredLocations: "5"})
		if !errors.Is(err, errs.ErrSubscriberExists) {
			t.Fatalf("expected ErrSubscriberExists, got %v", err)
		}
		// первая запись не тронута
		if got, _ := repo.Get(ctx, 7); got.PreferredLocations != "1" {
			t.Fatalf("record overwritten: %+v", got)
		}
	})

	t.Run("update locations", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		if err := repo.UpdateLocations(ctx, 9, "1"); !errors.Is(err, errs.ErrSubscriberNotFound) {
			t.Fatalf("expected ErrSubscriberNotFound, got %v", err)
		}
		_ = repo.Create(ctx, domain.Subscriber{ChatID: 9, PreferredLocations: "1"})
		if err := repo.UpdateLocations(ctx, 9, "6,7"); err != nil {
			t.Fatalf("update: %v", err)
		}
		if got, _ := repo.Get(ctx, 9); got.PreferredLocations != "6,7" {
			t.Fatalf("not updated: %+v", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		_ = repo.Create(ctx, domain.Subscriber{ChatID: 3, PreferredLocations: "1,5"})

		existed, err := repo.Delete(ctx, 3)
		if err != nil || !existed {
			t.Fatalf("first delete: (%v, %v)", existed, err)
		}
		existed, err = repo.Delete(ctx, 3)
		if err != nil || existed {
			t.Fatalf("second delete: (%v, %v)", existed, err)
		}
		if _, err := repo.Get(ctx, 3); !errors.Is(err, errs.ErrSubscriberNotFound) {
			t.Fatalf("record still present: %v", err)
		}
	})

	t.Run("list all", func(t *testing.T) {
		ctx := context.Background()
		repo := newRepo(t)
		empty, err := repo.ListAll(ctx)
		if err != nil || len(empty) != 0 {
			t.Fatalf("expected empty list, got (%v, %v)", empty, err)
		}
		for _, s := range []domain.Subscriber{
			{ChatID: 300, PreferredLocations: "7"},
			{ChatID: 20, PreferredLocations: "1"},
			{ChatID: 1000, PreferredLocations: "1,5"},
		} {
			if err := repo.Create(ctx, s); err != nil {
				t.Fatalf("create %d: %v", s.ChatID, err)
			}
		}
		_, _ = repo.Delete(ctx, 300)

		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(all) != 2 || all[0].ChatID != 20 || all[1].ChatID != 1000 {
			t.Fatalf("unexpected list: %+v", all)
		}
	})
}
