package service

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/lectoria/library-service/internal/errs"
	"github.com/lectoria/library-service/internal/model"
	"github.com/lectoria/library-service/pkg/auth"
)

func (s *Service) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.LoginResponse{}, errs.ErrBadCredentials
		}
		return model.LoginResponse{}, err
	}
	if !user.IsActive {
		return model.LoginResponse{}, errs.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return model.LoginResponse{}, errs.ErrBadCredentials
	}

	token, err := auth.NewToken(user.Username, s.cfg.JWTKey, s.cfg.TokenTTL)
	if err != nil {
		return model.LoginResponse{}, err
	}
	return model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}
