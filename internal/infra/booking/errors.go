package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized: сервис отклонил токен (HTTP 401)
	ErrUnauthorized = errors.New("booking: unauthorized")
	// ErrMalformedResponse: тело не JSON или нет ожидаемого поля
	ErrMalformedResponse = errors.New("booking: malformed response")
)

// StatusError: любой другой неуспешный HTTP-статус
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("booking: unexpected status %d", e.Code)
	}
	return fmt.Sprintf("booking: unexpected status %d: %s", e.Code, e.Body)
}
