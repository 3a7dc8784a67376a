package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
	"github.com/NastyaGoryachaya/termin-notifier/internal/pkg/botfmt"
)

type state int

const (
	stateIdle state = iota
	stateSelecting
	stateUpdating
)

// Subscribers: то, что диалогу нужно от хранилища
type Subscribers interface {
	Get(ctx context.Context, chatID int64) (domain.Subscriber, error)
	Create(ctx context.Context, sub domain.Subscriber) error
	UpdateLocations(ctx context.Context, chatID int64, locations string) error
	Delete(ctx context.Context, chatID int64) (bool, error)
}

// Dialog: логика команд и выбора локаций без привязки к telebot.
// Каждый метод возвращает текст ответа; состояние хранится по chat_id.
type Dialog struct {
	store     Subscribers
	locations []domain.Location
	known     map[int]struct{}
	logger    *slog.Logger

	mu     sync.Mutex
	states map[int64]state
}

func NewDialog(store Subscribers, locations []domain.Location, logger *slog.Logger) *Dialog {
	known := make(map[int]struct{}, len(locations))
	for _, l := range locations {
		known[l.ID] = struct{}{}
	}
	return &Dialog{
		store:     store,
		locations: locations,
		known:     known,
		logger:    logger,
		states:    make(map[int64]state),
	}
}

func (d *Dialog) setState(chatID int64, s state) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s == stateIdle {
		delete(d.states, chatID)
		return
	}
	d.states[chatID] = s
}

func (d *Dialog) stateOf(chatID int64) state {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.states[chatID]
}

// Start: справка; незавершённый выбор сбрасывается
func (d *Dialog) Start(chatID int64) string {
	d.setState(chatID, stateIdle)
	return msgStart
}

// Subscribe: вход в выбор локаций, если чат ещё не подписан
func (d *Dialog) Subscribe(ctx context.Context, chatID int64) string {
	d.setState(chatID, stateIdle)

	_, err := d.store.Get(ctx, chatID)
	switch {
	case err == nil:
		return msgAlreadySubscribed
	case !errors.Is(err, errs.ErrSubscriberNotFound):
		d.logger.Error("bot: /subscribe lookup failed", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
		return msgInternal
	}

	d.setState(chatID, stateSelecting)
	return msgSelectPrompt + botfmt.FormatLocationList(d.locations)
}

// Update: вход в изменение локаций для уже подписанного чата
func (d *Dialog) Update(ctx context.Context, chatID int64) string {
	d.setState(chatID, stateIdle)

	_, err := d.store.Get(ctx, chatID)
	switch {
	case errors.Is(err, errs.ErrSubscriberNotFound):
		return msgNotSubscribedUpdate
	case err != nil:
		d.logger.Error("bot: /update lookup failed", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
		return msgInternal
	}

	d.setState(chatID, stateUpdating)
	return msgUpdatePrompt + botfmt.FormatLocationList(d.locations)
}

func (d *Dialog) Unsubscribe(ctx context.Context, chatID int64) string {
	d.setState(chatID, stateIdle)

	existed, err := d.store.Delete(ctx, chatID)
	if err != nil {
		d.logger.Error("bot: unsubscribe failed", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
		return msgInternal
	}
	if !existed {
		return msgNotSubscribed
	}
	d.logger.Info("bot: subscriber removed", slog.Int64("chat_id", chatID))
	return msgUnsubscribed
}

func (d *Dialog) Status(ctx context.Context, chatID int64) string {
	sub, err := d.store.Get(ctx, chatID)
	switch {
	case errors.Is(err, errs.ErrSubscriberNotFound):
		return msgNotSubscribed
	case err != nil:
		d.logger.Error("bot: status failed", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
		return msgInternal
	}

	ids := make([]int, 0)
	for _, raw := range sub.LocationIDs() {
		if id, err := strconv.Atoi(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return msgStatus + botfmt.FormatLocationNames(d.locations, ids)
}

func (d *Dialog) Cancel(chatID int64) string {
	d.setState(chatID, stateIdle)
	return msgCancelled
}

func (d *Dialog) Unknown(chatID int64) string {
	d.setState(chatID, stateIdle)
	return msgUnknown
}

// Text: обычное сообщение. Вне выбора локаций ответа нет (ok=false).
func (d *Dialog) Text(ctx context.Context, chatID int64, text string) (reply string, ok bool) {
	st := d.stateOf(chatID)
	if st == stateIdle {
		return "", false
	}

	ids, bad := d.parseSelection(text)
	if bad != "" {
		return bad, true
	}
	csv := domain.JoinLocationIDs(ids)
	names := botfmt.FormatLocationNames(d.locations, ids)

	// после попытки записи диалог завершается при любом исходе
	d.setState(chatID, stateIdle)

	if st == stateSelecting {
		err := d.store.Create(ctx, domain.Subscriber{ChatID: chatID, PreferredLocations: csv})
		switch {
		case errors.Is(err, errs.ErrSubscriberExists):
			return msgAlreadySubscribed, true
		case err != nil:
			d.logger.Error("bot: error adding subscriber", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
			return msgInternal, true
		}
		d.logger.Info("bot: subscriber added", slog.Int64("chat_id", chatID), slog.String("locations", csv))
		return msgSubscribed + names, true
	}

	err := d.store.UpdateLocations(ctx, chatID, csv)
	switch {
	case errors.Is(err, errs.ErrSubscriberNotFound):
		return msgNotSubscribedUpdate, true
	case err != nil:
		d.logger.Error("bot: error updating subscriber", slog.Int64("chat_id", chatID), slog.String("err", err.Error()))
		return msgInternal, true
	}
	d.logger.Info("bot: subscriber updated", slog.Int64("chat_id", chatID), slog.String("locations", csv))
	return msgUpdated + names, true
}

// parseSelection: "1, 5,6" -> [1 5 6]; первая ошибочная часть возвращается текстом ответа
func (d *Dialog) parseSelection(text string) ([]int, string) {
	if strings.TrimSpace(text) == "" {
		return nil, msgNoLocations
	}

	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if !isDigits(part) {
			return nil, fmt.Sprintf(msgInvalidInput, part)
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Sprintf(msgInvalidInput, part)
		}
		if _, ok := d.known[id]; !ok {
			return nil, fmt.Sprintf(msgInvalidID, part)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, msgNoLocations
	}
	return ids, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
