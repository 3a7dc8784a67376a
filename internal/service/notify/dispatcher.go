package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/pkg/botfmt"
)

//go:generate mockgen -source=dispatcher.go -destination=mocks/dispatcher_mock.go -package=mocks

// SubscriberLister: чтение всех подписчиков; фильтрация по локации делается здесь, а не в хранилище
type SubscriberLister interface {
	ListAll(ctx context.Context) ([]domain.Subscriber, error)
}

// Sender: исходящее сообщение в чат
type Sender interface {
	SendMessage(chatID int64, text string) error
}

type Dispatcher struct {
	store  SubscriberLister
	sender Sender
	log    *slog.Logger
}

func New(store SubscriberLister, sender Sender, log *slog.Logger) *Dispatcher {
	return &Dispatcher{store: store, sender: sender, log: log}
}

// Notify рассылает новые даты локации всем, кто на неё подписан.
// Ошибка отправки одному чату попадает в отчёт и не прерывает рассылку.
func (d *Dispatcher) Notify(ctx context.Context, loc domain.Location, dates []string) domain.DeliveryReport {
	report := domain.DeliveryReport{LocationID: loc.ID}

	subscribers, err := d.store.ListAll(ctx)
	if err != nil {
		d.log.Error("notify.list_subscribers failed",
			slog.Int("location_id", loc.ID),
			slog.String("err", err.Error()))
		return report
	}

	msg := botfmt.FormatNotification(loc, dates)
	start := time.Now()
	for _, s := range subscribers {
		if !s.InterestedIn(loc.ID) {
			continue
		}
		report.Matched++
		if err := d.sender.SendMessage(s.ChatID, msg); err != nil {
			d.log.Error("notify.send failed",
				slog.Int64("chat_id", s.ChatID),
				slog.Int("location_id", loc.ID),
				slog.String("err", err.Error()))
			report.Failures = append(report.Failures, domain.DeliveryFailure{ChatID: s.ChatID, Err: err})
			continue
		}
		report.Delivered++
		d.log.Info("notify.sent", slog.Int64("chat_id", s.ChatID), slog.Int("location_id", loc.ID))
	}
	d.log.Debug("notify.done",
		slog.Int("location_id", loc.ID),
		slog.Int("subscribers", len(subscribers)),
		slog.Duration("duration", time.Since(start)))
	return report
}
