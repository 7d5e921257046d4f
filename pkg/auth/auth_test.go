package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToken_roundTrip(t *testing.T) {
	t.Parallel()

	key := []byte("test-key")
	token, err := NewToken("reader", key, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, key)
	require.NoError(t, err)
	require.Equal(t, "reader", claims.Username)

	_, err = ParseToken(token, []byte("other-key"))
	require.Error(t, err)
}

func TestToken_expired(t *testing.T) {
	t.Parallel()

	key := []byte("test-key")
	token, err := NewToken("reader", key, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, key)
	require.Error(t, err)
}

func TestAuthContext(t *testing.T) {
	t.Parallel()

	ctx := SetAuthContext(context.Background(), "reader")
	name, ok := Username(ctx)
	require.True(t, ok)
	require.Equal(t, "reader", name)

	_, ok = Username(context.Background())
	require.False(t, ok)
}
