package errors

import "errors"

var (
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrSubscriberExists   = errors.New("subscriber already exists")
	ErrLocationNotFound   = errors.New("location not found")
	ErrInternal           = errors.New("internal error")
)
