package httptransport

import (
	"errors"
	"net/http"

	errs "github.com/NastyaGoryachaya/termin-notifier/internal/errors"
	"github.com/NastyaGoryachaya/termin-notifier/internal/ports/errcode"
)

func FromServiceError(err error) errcode.Code {
	switch {
	case errors.Is(err, errs.ErrLocationNotFound):
		return errcode.NotFoundLocation
	case errors.Is(err, errs.ErrInternal):
		return errcode.Internal
	default:
		return errcode.Internal
	}
}

// httpStatus: HTTP-статус для кода ошибки
func httpStatus(code errcode.Code) int {
	switch code {
	case errcode.NotFoundLocation:
		return http.StatusNotFound
	case errcode.BadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
