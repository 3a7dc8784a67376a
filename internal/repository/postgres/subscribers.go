package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
)

const uniqueViolation = "23505"

type SubscriberRepo struct {
	db *pgxpool.Pool
}

func NewSubscriberRepo(db *pgxpool.Pool) *SubscriberRepo {
	return &SubscriberRepo{db: db}
}

var _ domain.SubscriberRepository = (*SubscriberRepo)(nil)

// EnsureSchema создаёт таблицу subscribers, если её ещё нет
func (r *SubscriberRepo) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS subscribers (
			id                  BIGSERIAL PRIMARY KEY,
			chat_id             BIGINT NOT NULL UNIQUE,
			preferred_locations TEXT   NOT NULL
		)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table subscribers: %w", err)
	}
	return nil
}

// Get: запись по chat_id
func (r *SubscriberRepo) Get(ctx context.Context, chatID int64) (domain.Subscriber, error) {
	const query = `SELECT chat_id, preferred_locations FROM subscribers WHERE chat_id = $1`

	var s domain.Subscriber
	err := r.db.QueryRow(ctx, query, chatID).Scan(&s.ChatID, &s.PreferredLocations)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscriber{}, errs.ErrSubscriberNotFound
	}
	if err != nil {
		return domain.Subscriber{}, err
	}
	return s, nil
}

// Create: новая подписка; повтор по chat_id отвергается уникальным индексом
func (r *SubscriberRepo) Create(ctx context.Context, sub domain.Subscriber) error {
	const query = `INSERT INTO subscribers (chat_id, preferred_locations) VALUES ($1, $2)`

	_, err := r.db.Exec(ctx, query, sub.ChatID, sub.PreferredLocations)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.ErrSubscriberExists
	}
	return err
}

func (r *SubscriberRepo) UpdateLocations(ctx context.Context, chatID int64, locations string) error {
	const query = `UPDATE subscribers SET preferred_locations = $2 WHERE chat_id = $1`

	tag, err := r.db.Exec(ctx, query, chatID, locations)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrSubscriberNotFound
	}
	return nil
}

func (r *SubscriberRepo) Delete(ctx context.Context, chatID int64) (bool, error) {
	const query = `DELETE FROM subscribers WHERE chat_id = $1`

	tag, err := r.db.Exec(ctx, query, chatID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SubscriberRepo) ListAll(ctx context.Context) ([]domain.Subscriber, error) {
	const query = `SELECT chat_id, preferred_locations FROM subscribers ORDER BY chat_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Subscriber, 0)
	for rows.Next() {
		var s domain.Subscriber
		if err := rows.Scan(&s.ChatID, &s.PreferredLocations); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close закрывает пул соединений
func (r *SubscriberRepo) Close() error {
	r.db.Close()
	return nil
}
