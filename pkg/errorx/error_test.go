package errorx

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_With(t *testing.T) {
	base := New(GameFull, "Maximum number of players is reached (%d)", 5)
	withDetail := base.With("max_players", 5)

	require.Equal(t, map[string]any{"max_players": 5}, withDetail.Details)

	// The original error is left untouched.
	require.Nil(t, base.Details)
}

func Test_StatusCode(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, StatusCode(BadRequest))
	require.Equal(t, http.StatusForbidden, StatusCode(PermissionDenied))
	require.Equal(t, http.StatusUnauthorized, StatusCode(Unauthenticated))
	require.Equal(t, http.StatusNotFound, StatusCode(NotFound))
	require.Equal(t, http.StatusConflict, StatusCode(GameFull))
	require.Equal(t, http.StatusConflict, StatusCode(GameClosed))
	require.Equal(t, http.StatusConflict, StatusCode(DuplicateRegistration))
	require.Equal(t, http.StatusConflict, StatusCode(SessionConflict))
	require.Equal(t, http.StatusInternalServerError, StatusCode(Internal))
}
