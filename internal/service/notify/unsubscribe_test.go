package notify_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/NastyaGoryachaya/termin-notifier/internal/domain"
	"github.com/NastyaGoryachaya/termin-notifier/internal/infra/booking"
	"github.com/NastyaGoryachaya/termin-notifier/internal/repository/memory"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/fetch"
	fetchmocks "github.com/NastyaGoryachaya/termin-notifier/internal/service/fetch/mocks"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/notify"
	notifymocks "github.com/NastyaGoryachaya/termin-notifier/internal/service/notify/mocks"
	"github.com/NastyaGoryachaya/termin-notifier/internal/transport/bot"
)

// Подписчик "1,5" отписался: следующий цикл с новыми датами для 1 ему ничего не шлёт
func TestNotify_UnsubscribedChatGetsNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewSubscriberRepo()
	dialog := bot.NewDialog(store, []domain.Location{mitte, {ID: 5, Name: "Bürgerbüro WEST"}}, slog.Default())

	dialog.Subscribe(ctx, 100)
	if _, ok := dialog.Text(ctx, 100, "1,5"); !ok {
		t.Fatal("selection not consumed")
	}
	dialog.Subscribe(ctx, 200)
	dialog.Text(ctx, 200, "1")

	if sub, err := store.Get(ctx, 100); err != nil || sub.PreferredLocations != "1,5" {
		t.Fatalf("subscriber not stored: %+v, %v", sub, err)
	}
	dialog.Unsubscribe(ctx, 100)

	sessions := fetchmocks.NewMockSessions(ctrl)
	client := fetchmocks.NewMockAvailabilityClient(ctrl)
	sender := notifymocks.NewMockSender(ctrl)

	sessions.EXPECT().Token().Return("tok", true).AnyTimes()
	client.EXPECT().FetchAvailability(gomock.Any(), "tok", gomock.Any()).Return(booking.AvailabilityPayload{
		Dates: []json.RawMessage{json.RawMessage(`"01.01.2025"`), json.RawMessage(`"02.01.2025"`)},
	}, nil).Times(1)
	sender.EXPECT().SendMessage(int64(200), wantMsg).Return(nil).Times(1)
	sender.EXPECT().SendMessage(int64(100), gomock.Any()).Times(0)

	svc := fetch.NewService(sessions, client, notify.New(store, sender, slog.Default()),
		[]domain.Location{mitte}, fetch.Options{ServiceCode: 38}, slog.Default())
	if err := svc.FetchAvailability(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
