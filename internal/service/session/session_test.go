package session_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/NastyaGoryachaya/termin-notifier/internal/infra/booking"
	"github.com/NastyaGoryachaya/termin-notifier/internal/service/session"
	sessionmocks "github.com/NastyaGoryachaya/termin-notifier/internal/service/session/mocks"
)

func fixedNumber() int { return 42 }

// Success: первая попытка удачна, токен сохранён
func TestOpenSession_Success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	creator.EXPECT().CreateSession(gomock.Any(), 42, "").Return("tok-1", nil).Times(1)

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	if _, ok := m.Token(); ok {
		t.Fatal("token must be absent before first open")
	}
	if err := m.OpenSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, ok := m.Token()
	if !ok || token != "tok-1" {
		t.Fatalf("Token() = (%q, %v)", token, ok)
	}
}

// Второе открытие передаёт предыдущий токен и заменяет его
func TestOpenSession_ReplacesToken(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	gomock.InOrder(
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), "").Return("tok-1", nil),
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), "tok-1").Return("tok-2", nil),
	)

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	if err := m.OpenSession(context.Background()); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := m.OpenSession(context.Background()); err != nil {
		t.Fatalf("second open: %v", err)
	}
	if token, _ := m.Token(); token != "tok-2" {
		t.Fatalf("token = %q, want tok-2", token)
	}
}

// Ошибки транспорта: ровно 5 попыток, затем ErrSessionUnavailable
func TestOpenSession_ExhaustsAttempts(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	creator.EXPECT().
		CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("connection refused")).
		Times(5)

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	err := m.OpenSession(context.Background())
	if !errors.Is(err, session.ErrSessionUnavailable) {
		t.Fatalf("expected ErrSessionUnavailable, got %v", err)
	}
	if _, ok := m.Token(); ok {
		t.Fatal("token must stay absent")
	}
}

// Битый ответ на первых попытках, успех на третьей
func TestOpenSession_RecoversAfterMalformed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	gomock.InOrder(
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return("", booking.ErrMalformedResponse),
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return("", &booking.StatusError{Code: 503}),
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok-3", nil),
	)

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	if err := m.OpenSession(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token, _ := m.Token(); token != "tok-3" {
		t.Fatalf("token = %q", token)
	}
}

// Ответ без id: сразу ErrMissingToken, оставшиеся попытки не тратятся, старый токен не трогаем
func TestOpenSession_MissingTokenFailsFast(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	gomock.InOrder(
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), "").Return("tok-1", nil),
		creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), "tok-1").Return("", nil).Times(1),
	)

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	if err := m.OpenSession(context.Background()); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := m.OpenSession(context.Background()); !errors.Is(err, session.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if token, _ := m.Token(); token != "tok-1" {
		t.Fatalf("token = %q, want previous tok-1", token)
	}
}

// Отменённый контекст: ни одного сетевого вызова
func TestOpenSession_CancelledContext(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := session.NewManagerWithNumbers(creator, 5, fixedNumber, slog.Default())
	if err := m.OpenSession(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

// Параллельные чтения и обновления не видят частично записанный токен
func TestManager_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := sessionmocks.NewMockCreator(ctrl)
	creator.EXPECT().CreateSession(gomock.Any(), gomock.Any(), gomock.Any()).Return("tok", nil).AnyTimes()

	m := session.NewManager(creator, 5, slog.Default())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.OpenSession(context.Background())
		}()
		go func() {
			defer wg.Done()
			if token, ok := m.Token(); ok && token != "tok" {
				t.Errorf("unexpected token %q", token)
			}
		}()
	}
	wg.Wait()
}
