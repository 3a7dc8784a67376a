package session

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
)

//go:generate mockgen -source=session.go -destination=mocks/session_mock.go -package=mocks

const (
	DefaultMaxAttempts = 5
	maxSessionNumber   = 10000
)

var (
	// ErrSessionUnavailable: все попытки открыть сессию исчерпаны
	ErrSessionUnavailable = errors.New("session: failed to open session after all attempts")
	// ErrMissingToken: сервис ответил без поля id
	ErrMissingToken = errors.New("session: response has no token")
)

// Creator: удалённый сервис, выдающий токены (booking.Client)
type Creator interface {
	CreateSession(ctx context.Context, number int, prevToken string) (string, error)
}

// Manager владеет единственным токеном авторизации.
// Чтение и запись токена идут под одним мьютексом; сетевой вызов OpenSession
// выполняется под ним же, поэтому Token() ждёт окончания обновления.
type Manager struct {
	mu          sync.Mutex
	token       string
	creator     Creator
	maxAttempts int
	nextNumber  func() int
	logger      *slog.Logger
}

// NewManager: конструктор менеджера сессий
func NewManager(creator Creator, maxAttempts int, logger *slog.Logger) *Manager {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Manager{
		creator:     creator,
		maxAttempts: maxAttempts,
		nextNumber:  func() int { return rand.IntN(maxSessionNumber) + 1 },
		logger:      logger,
	}
}

// NewManagerWithNumbers - конструктор для тестов: детерминированный номер сессии.
func NewManagerWithNumbers(creator Creator, maxAttempts int, next func() int, logger *slog.Logger) *Manager {
	m := NewManager(creator, maxAttempts, logger)
	m.nextNumber = next
	return m
}

// OpenSession получает новый токен, делая до maxAttempts попыток.
// Ошибки транспорта и разбора ответа переводят к следующей попытке,
// ответ без id завершает вызов сразу с ErrMissingToken.
func (m *Manager) OpenSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("opening a new session")
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		number := m.nextNumber()
		token, err := m.creator.CreateSession(ctx, number, m.token)
		if err != nil {
			m.logger.Error("open session attempt failed",
				slog.Int("attempt", attempt),
				slog.Int("number", number),
				slog.String("err", err.Error()))
			continue
		}
		if token == "" {
			m.logger.Error("failed to obtain auth token from session creation response",
				slog.Int("attempt", attempt))
			return ErrMissingToken
		}

		m.token = token
		m.logger.Info("session opened",
			slog.Int("attempt", attempt),
			slog.String("token_prefix", tokenPrefix(token)))
		return nil
	}

	m.logger.Error("failed to open session after multiple attempts", slog.Int("attempts", m.maxAttempts))
	return ErrSessionUnavailable
}

// Token: текущий токен; ok=false, если сессия ещё не открыта
func (m *Manager) Token() (token string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// tokenPrefix: в логи попадает только начало токена
func tokenPrefix(token string) string {
	const n = 6
	if len(token) <= n {
		return "***"
	}
	return token[:n] + "..."
}
