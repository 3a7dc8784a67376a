package notify_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/notify"
	notifymocks "github.com/NastyaGoryachaya/termin-notifier/internal/service/notify/mocks"
)

var mitte = domain.Location{ID: 1, Name: "Bürgerbüro MITTE"}

const wantMsg = "Neue Termine verfügbar bei Bürgerbüro MITTE:\n01.01.2025\n02.01.2025"

// Только подписчики с "1" в списке; "15" и "10" не совпадают с "1"
func TestNotify_OnlyInterested(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := notifymocks.NewMockSubscriberLister(ctrl)
	sender := notifymocks.NewMockSender(ctrl)

	store.EXPECT().ListAll(gomock.Any()).Return([]domain.Subscriber{
		{ChatID: 100, PreferredLocations: "1,5"},
		{ChatID: 200, PreferredLocations: "15"},
		{ChatID: 300, PreferredLocations: "5, 1"},
		{ChatID: 400, PreferredLocations: "10"},
	}, nil)
	sender.EXPECT().SendMessage(int64(100), wantMsg).Return(nil).Times(1)
	sender.EXPECT().SendMessage(int64(300), wantMsg).Return(nil).Times(1)

	d := notify.New(store, sender, slog.Default())
	report := d.Notify(context.Background(), mitte, []string{"01.01.2025", "02.01.2025"})

	if report.LocationID != 1 || report.Matched != 2 || report.Delivered != 2 || len(report.Failures) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

// Ошибка доставки одному чату не прерывает рассылку остальным
func TestNotify_FailureIsolated(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := notifymocks.NewMockSubscriberLister(ctrl)
	sender := notifymocks.NewMockSender(ctrl)
	blocked := errors.New("telegram: bot was blocked by the user (403)")

	store.EXPECT().ListAll(gomock.Any()).Return([]domain.Subscriber{
		{ChatID: 1, PreferredLocations: "1"},
		{ChatID: 2, PreferredLocations: "1"},
		{ChatID: 3, PreferredLocations: "1"},
	}, nil)
	gomock.InOrder(
		sender.EXPECT().SendMessage(int64(1), gomock.Any()).Return(nil),
		sender.EXPECT().SendMessage(int64(2), gomock.Any()).Return(blocked),
		sender.EXPECT().SendMessage(int64(3), gomock.Any()).Return(nil),
	)

	report := notify.New(store, sender, slog.Default()).Notify(context.Background(), mitte, []string{"01.01.2025"})

	if report.Matched != 3 || report.Delivered != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Failures) != 1 || report.Failures[0].ChatID != 2 || !errors.Is(report.Failures[0].Err, blocked) {
		t.Fatalf("unexpected failures: %+v", report.Failures)
	}
}

// Хранилище недоступно: никаких отправок, пустой отчёт
func TestNotify_StoreError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := notifymocks.NewMockSubscriberLister(ctrl)
	sender := notifymocks.NewMockSender(ctrl)

	store.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("db down"))
	sender.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Times(0)

	report := notify.New(store, sender, slog.Default()).Notify(context.Background(), mitte, []string{"01.01.2025"})
	if report.Matched != 0 || report.Delivered != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

// Отписавшийся чат не получает сообщений
func TestNotify_NoSubscribers(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := notifymocks.NewMockSubscriberLister(ctrl)
	sender := notifymocks.NewMockSender(ctrl)

	store.EXPECT().ListAll(gomock.Any()).Return([]domain.Subscriber{}, nil)
	sender.EXPECT().SendMessage(gomock.Any(), gomock.Any()).Times(0)

	report := notify.New(store, sender, slog.Default()).Notify(context.Background(), mitte, []string{"01.01.2025"})
	if report.Matched != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
}
