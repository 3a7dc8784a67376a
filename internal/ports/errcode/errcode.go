package errcode

type Code string

const (
	NotFoundLocation Code = "NOT_FOUND_LOCATION"

	BadRequest Code = "BAD_REQUEST"
	Internal   Code = "INTERNAL_ERROR"
)
