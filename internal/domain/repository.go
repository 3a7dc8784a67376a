package domain

import "context"

// SubscriberRepository: хранилище подписчиков.
// Каждая мутация одна атомарная запись: при ошибке частичной записи не остаётся.
type SubscriberRepository interface {
	// Get возвращает errors.ErrSubscriberNotFound, если записи нет
	Get(ctx context.Context, chatID int64) (Subscriber, error)
	// Create возвращает errors.ErrSubscriberExists, если чат уже подписан
	Create(ctx context.Context, sub Subscriber) error
	// UpdateLocations возвращает errors.ErrSubscriberNotFound, если записи нет
	UpdateLocations(ctx context.Context, chatID int64, locations string) error
	// Delete сообщает, была ли запись
	Delete(ctx context.Context, chatID int64) (bool, error)
	ListAll(ctx context.Context) ([]Subscriber, error)
	Close() error
}
