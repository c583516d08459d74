package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"
)

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Auth struct {
	recruiters repository.RecruiterRepository
	jwt        jwt.Service
	logger     *zap.Logger
}

func NewAuthUsecase(recruiters repository.RecruiterRepository, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	return &Auth{recruiters: recruiters, jwt: jwtSvc, logger: logger}
}

func (u *Auth) Login(ctx context.Context, email, password string) (TokenPair, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return TokenPair{}, ErrUnauthorized
	}

	rec, err := u.recruiters.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return TokenPair{}, ErrUnauthorized
		}
		return TokenPair{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, ErrUnauthorized
	}

	return u.issue(rec.ID, rec.Email)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	if refreshToken == "" {
		return TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil || !u.jwt.IsRefreshToken(claims) {
		return TokenPair{}, ErrUnauthorized
	}

	return u.issue(claims.RecruiterID, claims.Email)
}

func (u *Auth) issue(id uuid.UUID, email string) (TokenPair, error) {
	access, err := u.jwt.GenerateAccessToken(id, email)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(id)
	if err != nil {
		return TokenPair{}, ErrInternal
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

var _ AuthUsecase = (*Auth)(nil)
