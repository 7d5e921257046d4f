package auth

import (
	"context"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
)

type contextKey int

const (
	contextKeyUsername contextKey = iota + 1
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewToken issues a signed HS256 token for the given user.
func NewToken(username string, key []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func ParseToken(tokenStr string, key []byte) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenNotValidYet
	}
	return claims, nil
}

func SetAuthContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUsername, username)
}

func Username(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(contextKeyUsername).(string)
	return name, ok
}
