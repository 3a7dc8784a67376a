package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	bbolt "go.etcd.io/bbolt"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
)

var bucketSubscribers = []byte("subscribers")

// SubscriberRepo хранит подписчиков в bbolt: бакет subscribers, ключ chat_id, значение JSON
type SubscriberRepo struct {
	db     *bbolt.DB
	logger *slog.Logger
}

var _ domain.SubscriberRepository = (*SubscriberRepo)(nil)

// Open открывает (или создаёт) файл базы и бакет
func Open(path string, timeout time.Duration, logger *slog.Logger) (*SubscriberRepo, error) {
	if timeout <= 0 {
		timeout = time.Second
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketSubscribers)
		return e
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &SubscriberRepo{db: db, logger: logger}, nil
}

func (r *SubscriberRepo) Close() error { return r.db.Close() }

func key(chatID int64) []byte { return []byte(strconv.FormatInt(chatID, 10)) }

func (r *SubscriberRepo) Get(_ context.Context, chatID int64) (domain.Subscriber, error) {
	var sub domain.Subscriber
	err := r.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketSubscribers).Get(key(chatID))
		if v == nil {
			return errs.ErrSubscriberNotFound
		}
		return json.Unmarshal(v, &sub)
	})
	return sub, err
}

func (r *SubscriberRepo) Create(_ context.Context, sub domain.Subscriber) error {
	b, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSubscribers)
		if bucket.Get(key(sub.ChatID)) != nil {
			return errs.ErrSubscriberExists
		}
		return bucket.Put(key(sub.ChatID), b)
	})
}

func (r *SubscriberRepo) UpdateLocations(_ context.Context, chatID int64, locations string) error {
	return r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSubscribers)
		v := bucket.Get(key(chatID))
		if v == nil {
			return errs.ErrSubscriberNotFound
		}
		var sub domain.Subscriber
		if err := json.Unmarshal(v, &sub); err != nil {
			return err
		}
		sub.PreferredLocations = locations
		b, err := json.Marshal(sub)
		if err != nil {
			return err
		}
		return bucket.Put(key(chatID), b)
	})
}

func (r *SubscriberRepo) Delete(_ context.Context, chatID int64) (bool, error) {
	var existed bool
	err := r.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSubscribers)
		if bucket.Get(key(chatID)) == nil {
			return nil
		}
		existed = true
		return bucket.Delete(key(chatID))
	})
	return existed, err
}

// ListAll: все подписчики по возрастанию chat_id (ключи в бакете упорядочены как строки).
// Битая запись пропускается с предупреждением, остальные подписчики возвращаются.
func (r *SubscriberRepo) ListAll(_ context.Context) ([]domain.Subscriber, error) {
	var subs []domain.Subscriber
	err := r.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSubscribers).ForEach(func(k, v []byte) error {
			var s domain.Subscriber
			if err := json.Unmarshal(v, &s); err != nil {
				r.logger.Warn("bolt: skipping corrupt subscriber record",
					slog.String("key", string(k)),
					slog.String("error", err.Error()))
				return nil
			}
			subs = append(subs, s)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].ChatID < subs[j].ChatID })
	return subs, nil
}
