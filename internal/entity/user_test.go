package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_IsDiscordID(t *testing.T) {
	require.True(t, IsDiscordID("12345678901234567"))
	require.True(t, IsDiscordID("123456789012345678901"))

	require.False(t, IsDiscordID(""))
	require.False(t, IsDiscordID("1234567890123456"))
	require.False(t, IsDiscordID("1234567890123456789012"))
	require.False(t, IsDiscordID("12345678901234567a"))
	require.False(t, IsDiscordID("alice"))
}
