package errorx

import "net/http"

type Code int

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010

	// Board codes
	GameFull              Code = 200001
	GameClosed            Code = 200002
	DuplicateRegistration Code = 200003
	SessionConflict       Code = 200004
)

// StatusCode maps an error code to its fixed HTTP status. Business-rule
// violations around registration and scheduling are conflicts.
func StatusCode(code Code) int {
	switch code {
	case BadRequest:
		return http.StatusBadRequest
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case TooManyRequests:
		return http.StatusTooManyRequests
	case AlreadyExists, GameFull, GameClosed, DuplicateRegistration, SessionConflict:
		return http.StatusConflict
	case NotImplemented:
		return http.StatusNotImplemented
	case Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
