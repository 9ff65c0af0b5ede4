package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic          = fmt.Errorf("worker panic")
	ErrUnknownEvent         = fmt.Errorf("unknown event")
	ErrInvalidPayload       = fmt.Errorf("invalid payload")
	ErrConnectionClosed     = fmt.Errorf("connection closed")
	ErrSendBufferFull       = fmt.Errorf("send buffer full")
	ErrNotificationNotFound = fmt.Errorf("notification not found")
	ErrForbidden            = fmt.Errorf("forbidden")
	ErrUnauthorized         = fmt.Errorf("unauthorized")
	ErrSelfNotification     = fmt.Errorf("sender and recipient are the same user")
)

// StatusCode translates a domain error into the HTTP status returned to collaborators.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrUnknownEvent):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotificationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
