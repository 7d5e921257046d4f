package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/internal/repository"
	"github.com/lectoria/library-service/pkg/auth"
	"github.com/lectoria/library-service/pkg/kafka"
)

type userRepoStub struct {
	repository.Repository
	getUserByUsername func(ctx context.Context, username string) (model.User, error)
	updatePassword    func(ctx context.Context, id int64, hashed string) error
	getUser           func(ctx context.Context, id int64) (model.User, error)
}

func (s *userRepoStub) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	return s.getUserByUsername(ctx, username)
}

func (s *userRepoStub) UpdateUserPassword(ctx context.Context, id int64, hashed string) error {
	return s.updatePassword(ctx, id, hashed)
}

func (s *userRepoStub) GetUser(ctx context.Context, id int64) (model.User, error) {
	return s.getUser(ctx, id)
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	jwtKey := []byte("test-key")
	hashed, err := bcrypt.GenerateFromPassword([]byte("qwerty123"), bcrypt.MinCost)
	require.NoError(t, err)

	newService := func(user model.User, found bool) *Service {
		repo := &userRepoStub{
			getUserByUsername: func(_ context.Context, _ string) (model.User, error) {
				if !found {
					return model.User{}, errs.ErrNotFound
				}
				return user, nil
			},
		}
		return NewService(repo, kafka.NopPublisher{}, Config{
			JWTKey:   jwtKey,
			TokenTTL: time.Hour,
		}, zap.NewNop())
	}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		svc := newService(model.User{
			ID:       1,
			Username: "reader",
			Password: string(hashed),
			IsActive: true,
		}, true)

		resp, err := svc.Login(context.Background(), model.LoginRequest{Username: "reader", Password: "qwerty123"})
		require.NoError(t, err)
		require.Equal(t, "Bearer", resp.TokenType)

		claims, err := auth.ParseToken(resp.AccessToken, jwtKey)
		require.NoError(t, err)
		require.Equal(t, "reader", claims.Username)
	})

	t.Run("err. wrong password", func(t *testing.T) {
		t.Parallel()
		svc := newService(model.User{Username: "reader", Password: string(hashed), IsActive: true}, true)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "reader", Password: "nope"})
		require.ErrorIs(t, err, errs.ErrBadCredentials)
	})

	t.Run("err. unknown user", func(t *testing.T) {
		t.Parallel()
		svc := newService(model.User{}, false)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "ghost", Password: "qwerty123"})
		require.ErrorIs(t, err, errs.ErrBadCredentials)
	})

	t.Run("err. inactive user", func(t *testing.T) {
		t.Parallel()
		svc := newService(model.User{Username: "reader", Password: string(hashed), IsActive: false}, true)

		_, err := svc.Login(context.Background(), model.LoginRequest{Username: "reader", Password: "qwerty123"})
		require.ErrorIs(t, err, errs.ErrBadCredentials)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.MinCost)
	require.NoError(t, err)

	var stored string
	repo := &userRepoStub{
		getUser: func(_ context.Context, _ int64) (model.User, error) {
			return model.User{ID: 1, Password: string(hashed)}, nil
		},
		updatePassword: func(_ context.Context, _ int64, h string) error {
			stored = h
			return nil
		},
	}
	svc := NewService(repo, kafka.NopPublisher{}, Config{}, zap.NewNop())

	err = svc.UpdatePassword(context.Background(), 1, model.UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-secret",
	})
	require.ErrorIs(t, err, errs.ErrBadCredentials)
	require.Empty(t, stored)

	err = svc.UpdatePassword(context.Background(), 1, model.UpdatePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-secret")))
}
