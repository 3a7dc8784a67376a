package fetch

import "time"

// Clock: абстракция времени, чтобы окно дат и cache-buster в тестах были детерминированы
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewRealClock - часы для прода
func NewRealClock() Clock {
	return realClock{}
}
