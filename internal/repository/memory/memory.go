// Package memory: хранилище подписчиков в памяти процесса, для разработки и тестов.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
)

type SubscriberRepo struct {
	mu   sync.RWMutex
	subs map[int64]domain.Subscriber
}

func NewSubscriberRepo() *SubscriberRepo {
	return &SubscriberRepo{subs: make(map[int64]domain.Subscriber)}
}

var _ domain.SubscriberRepository = (*SubscriberRepo)(nil)

func (r *SubscriberRepo) Get(_ context.Context, chatID int64) (domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.subs[chatID]
	if !ok {
		return domain.Subscriber{}, errs.ErrSubscriberNotFound
	}
	return sub, nil
}

func (r *SubscriberRepo) Create(_ context.Context, sub domain.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[sub.ChatID]; ok {
		return errs.ErrSubscriberExists
	}
	r.subs[sub.ChatID] = sub
	return nil
}

func (r *SubscriberRepo) UpdateLocations(_ context.Context, chatID int64, locations string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sub, ok := r.subs[chatID]
	if !ok {
		return errs.ErrSubscriberNotFound
	}
	sub.PreferredLocations = locations
	r.subs[chatID] = sub
	return nil
}

func (r *SubscriberRepo) Delete(_ context.Context, chatID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.subs[chatID]; !ok {
		return false, nil
	}
	delete(r.subs, chatID)
	return true, nil
}

// ListAll: все подписчики по возрастанию chat_id
func (r *SubscriberRepo) ListAll(_ context.Context) ([]domain.Subscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Subscriber, 0, len(r.subs))
	for _, s := range r.subs {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

func (r *SubscriberRepo) Close() error { return nil }
