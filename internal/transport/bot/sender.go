package bot

import "log/slog"

// LogSender: отправка в лог, когда Telegram выключен
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendMessage(chatID int64, text string) error {
	s.logger.Info("telegram disabled, message not sent",
		slog.Int64("chat_id", chatID),
		slog.String("text", text))
	return nil
}
