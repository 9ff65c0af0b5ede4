package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	req := require.New(t)

	req.Equal(http.StatusOK, StatusCode(nil))
	req.Equal(http.StatusBadRequest, StatusCode(fmt.Errorf("%w: missing field", ErrInvalidPayload)))
	req.Equal(http.StatusBadRequest, StatusCode(ErrUnknownEvent))
	req.Equal(http.StatusUnauthorized, StatusCode(ErrUnauthorized))
	req.Equal(http.StatusForbidden, StatusCode(ErrForbidden))
	req.Equal(http.StatusNotFound, StatusCode(fmt.Errorf("mark read: %w", ErrNotificationNotFound)))
	req.Equal(http.StatusInternalServerError, StatusCode(fmt.Errorf("disk full")))
}
