package bolt_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/bolt"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/repotest"
)

func open(t *testing.T, path string) *bolt.SubscriberRepo {
	t.Helper()
	repo, err := bolt.Open(path, time.Second, slog.Default())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return repo
}

func TestSubscriberRepo(t *testing.T) {
	t.Parallel()
	repotest.Run(t, func(t *testing.T) domain.SubscriberRepository {
		repo := open(t, filepath.Join(t.TempDir(), "subscribers.db"))
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}

// Подписчики переживают перезапуск процесса
func TestSubscriberRepo_Persists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subscribers.db")

	repo := open(t, path)
	if err := repo.Create(ctx, domain.Subscriber{ChatID: 11, PreferredLocations: "1,10"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := open(t, path)
	defer reopened.Close()
	got, err := reopened.Get(ctx, 11)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.PreferredLocations != "1,10" {
		t.Fatalf("unexpected subscriber: %+v", got)
	}
}

// Одна битая запись не ломает список для рассылки
func TestSubscriberRepo_ListAllSkipsCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "subscribers.db")

	repo := open(t, path)
	_ = repo.Create(ctx, domain.Subscriber{ChatID: 5, PreferredLocations: "1"})
	_ = repo.Create(ctx, domain.Subscriber{ChatID: 8, PreferredLocations: "5"})
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	raw, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		t.Fatalf("raw open: %v", err)
	}
	err = raw.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte("subscribers")).Put([]byte("6"), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("raw put: %v", err)
	}
	_ = raw.Close()

	reopened := open(t, path)
	defer reopened.Close()
	all, err := reopened.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ChatID != 5 || all[1].ChatID != 8 {
		t.Fatalf("unexpected list: %+v", all)
	}
}
