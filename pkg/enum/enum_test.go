package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

var (
	red  = New(color("red"))
	blue = New(color("blue"))
)

func Test_ToEnum(t *testing.T) {
	got, err := ToEnum[color]("red")
	require.NoError(t, err)
	require.Equal(t, red, got)

	got, err = ToEnum[color]("blue")
	require.NoError(t, err)
	require.Equal(t, blue, got)

	_, err = ToEnum[color]("green")
	require.Error(t, err)
}

func Test_ToEnum_unknownType(t *testing.T) {
	type shape string
	_, err := ToEnum[shape]("circle")
	require.Error(t, err)
}
