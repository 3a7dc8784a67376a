package bot

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"gopkg.in/telebot.v4"

	"github.com/NastyaGoryachaya/termin-notifier/internal/config"
)

const storeTimeout = 3 * time.Second

// Bot: Telegram-обвязка над Dialog и исходящая отправка для рассылки
type Bot struct {
	bot    *telebot.Bot
	dialog *Dialog
	logger *slog.Logger

	mu      sync.Mutex
	started bool
}

// New создаёт бота и регистрирует команды
func New(cfg config.TelegramConfig, dialog *Dialog, logger *slog.Logger) (*Bot, error) {
	pollTimeout := cfg.LongPollTimeout
	if pollTimeout <= 0 {
		pollTimeout = 5 * time.Second
	}
	sendTimeout := cfg.SendTimeout
	if sendTimeout <= pollTimeout {
		// клиент не должен обрывать long poll раньше сервера
		sendTimeout = pollTimeout + 5*time.Second
	}

	b, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Token,
		URL:    cfg.APIURL,
		Poller: &telebot.LongPoller{Timeout: pollTimeout},
		Client: &http.Client{Timeout: sendTimeout},
		OnError: func(err error, c telebot.Context) {
			attrs := []any{slog.String("err", err.Error())}
			if c != nil && c.Chat() != nil {
				attrs = append(attrs, slog.Int64("chat_id", c.Chat().ID))
			}
			logger.Error("bot: handler error", attrs...)
		},
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{bot: b, dialog: dialog, logger: logger}

	// маршруты команд
	b.Handle("/start", bot.handleStart)
	b.Handle("/subscribe", bot.withStore(bot.dialog.Subscribe))
	b.Handle("/update", bot.withStore(bot.dialog.Update))
	b.Handle("/unsubscribe", bot.withStore(bot.dialog.Unsubscribe))
	b.Handle("/status", bot.withStore(bot.dialog.Status))
	b.Handle("/cancel", bot.handleCancel)
	b.Handle(telebot.OnText, bot.handleText)
	return bot, nil
}

// Start запускает long polling в отдельной горутине, повторный вызов ничего не делает
func (b *Bot) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return
	}
	b.started = true
	go b.bot.Start()
	b.logger.Info("telegram bot started")
}

// Stop останавливает polling; незапущенный бот не трогаем
func (b *Bot) Stop() {
	b.mu.Lock()
	if !b.started {
		b.mu.Unlock()
		return
	}
	b.started = false
	b.mu.Unlock()

	b.bot.Stop()
	b.logger.Info("telegram bot stopped")
}

// SendMessage: исходящее сообщение для рассылки
func (b *Bot) SendMessage(chatID int64, text string) error {
	_, err := b.bot.Send(&telebot.Chat{ID: chatID}, text)
	return err
}

func (b *Bot) handleStart(c telebot.Context) error {
	return c.Send(b.dialog.Start(c.Chat().ID))
}

func (b *Bot) handleCancel(c telebot.Context) error {
	return c.Send(b.dialog.Cancel(c.Chat().ID), &telebot.ReplyMarkup{RemoveKeyboard: true})
}

// withStore задаёт командам с доступом к хранилищу короткий таймаут на запрос
func (b *Bot) withStore(fn func(ctx context.Context, chatID int64) string) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		b.logger.Debug("bot: command received", slog.Int64("chat_id", c.Chat().ID), slog.String("text", c.Text()))
		return c.Send(fn(ctx, c.Chat().ID))
	}
}

// handleText: выбор локаций или неизвестная команда
func (b *Bot) handleText(c telebot.Context) error {
	chatID := c.Chat().ID
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return c.Send(b.dialog.Unknown(chatID))
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	reply, ok := b.dialog.Text(ctx, chatID, text)
	if !ok {
		return nil
	}
	return c.Send(reply, &telebot.ReplyMarkup{RemoveKeyboard: true})
}
