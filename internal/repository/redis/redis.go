package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/NastyaGoryachaya/termin-notifier/internal/config"
	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
)

const (
	fieldChatID    = "chat_id"
	fieldLocations = "preferred_locations"
)

// SubscriberRepo: hash {prefix}subscriber:{chat_id} и индекс-множество {prefix}subscribers
type SubscriberRepo struct {
	client *redis.Client
	prefix string
}

var _ domain.SubscriberRepository = (*SubscriberRepo)(nil)

// Open подключается и проверяет соединение
func Open(ctx context.Context, cfg config.RedisConfig) (*SubscriberRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return New(client, cfg.Prefix), nil
}

func New(client *redis.Client, prefix string) *SubscriberRepo {
	return &SubscriberRepo{client: client, prefix: prefix}
}

func (r *SubscriberRepo) Close() error { return r.client.Close() }

func (r *SubscriberRepo) key(chatID int64) string {
	return r.prefix + "subscriber:" + strconv.FormatInt(chatID, 10)
}

func (r *SubscriberRepo) index() string { return r.prefix + "subscribers" }

func (r *SubscriberRepo) Get(ctx context.Context, chatID int64) (domain.Subscriber, error) {
	vals, err := r.client.HGetAll(ctx, r.key(chatID)).Result()
	if err != nil {
		return domain.Subscriber{}, err
	}
	return decode(chatID, vals)
}

func decode(chatID int64, vals map[string]string) (domain.Subscriber, error) {
	locs, ok := vals[fieldLocations]
	if !ok {
		return domain.Subscriber{}, errs.ErrSubscriberNotFound
	}
	return domain.Subscriber{ChatID: chatID, PreferredLocations: locs}, nil
}

// Create: проверка и запись в одной транзакции WATCH/MULTI
func (r *SubscriberRepo) Create(ctx context.Context, sub domain.Subscriber) error {
	k := r.key(sub.ChatID)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, k).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return errs.ErrSubscriberExists
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, k, fieldChatID, sub.ChatID, fieldLocations, sub.PreferredLocations)
			p.SAdd(ctx, r.index(), sub.ChatID)
			return nil
		})
		return err
	}, k)
}

func (r *SubscriberRepo) UpdateLocations(ctx context.Context, chatID int64, locations string) error {
	k := r.key(chatID)
	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, k).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return errs.ErrSubscriberNotFound
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, k, fieldLocations, locations)
			return nil
		})
		return err
	}, k)
}

func (r *SubscriberRepo) Delete(ctx context.Context, chatID int64) (bool, error) {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, r.key(chatID))
		p.SRem(ctx, r.index(), chatID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

// ListAll: по индексу; id без hash (удалён между чтениями) пропускаются
func (r *SubscriberRepo) ListAll(ctx context.Context) ([]domain.Subscriber, error) {
	members, err := r.client.SMembers(ctx, r.index()).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad chat id %q in index: %w", m, err)
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cmds := make([]*redis.StringStringMapCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = p.HGetAll(ctx, r.key(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Subscriber, 0, len(ids))
	for i, id := range ids {
		s, err := decode(id, cmds[i].Val())
		if errors.Is(err, errs.ErrSubscriberNotFound) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}
