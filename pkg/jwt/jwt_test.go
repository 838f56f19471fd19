package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func Test_Engine(t *testing.T) {
	engine := NewEngine[payload]("secret", time.Minute)

	token, err := engine.Generate("user1", payload{ID: "user1", Role: "gm"})
	require.NoError(t, err)

	obj, err := engine.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "gm", obj.Role)
}

func Test_Engine_expired(t *testing.T) {
	engine := NewEngine[payload]("secret", -time.Minute)

	token, err := engine.Generate("user1", payload{ID: "user1"})
	require.NoError(t, err)

	_, err = engine.Verify(token)
	require.Error(t, err)
}

func Test_Engine_wrongSecret(t *testing.T) {
	token, err := NewEngine[payload]("secret", time.Minute).Generate("user1", payload{ID: "user1"})
	require.NoError(t, err)

	_, err = NewEngine[payload]("another", time.Minute).Verify(token)
	require.Error(t, err)
}
