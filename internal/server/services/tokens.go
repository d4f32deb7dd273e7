package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/obelousov/pixelboard/internal/common"
	"github.com/obelousov/pixelboard/internal/dbx"
	"github.com/obelousov/pixelboard/internal/server/auth"
	"github.com/obelousov/pixelboard/internal/server/config"
	"github.com/obelousov/pixelboard/internal/server/repositories/repomanager"
)

// tokenSubject identifies the dashboard client in issued access tokens.
// The API is single-tenant: there is exactly one service key.
const tokenSubject = "dashboard"

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type TokenService struct {
	repos                        repomanager.RepositoryManager
	apiKey                       []byte
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewTokenService(m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		repos:                        m,
		apiKey:                       []byte(cfg.APIKey),
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// IssueFromAPIKey exchanges the service API key for a token pair.
func (s *TokenService) IssueFromAPIKey(ctx context.Context, key string) (*TokenPair, error) {
	if subtle.ConstantTimeCompare([]byte(key), s.apiKey) != 1 {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, s.repos.Conn())
}

// Refresh rotates the given refresh token: the old one is deleted and a new
// pair is issued in a single transaction, on repositories bound to it.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	conn := s.repos.Conn()

	token, err := s.repos.RefreshTokens(conn).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var tokenPair *TokenPair

	err = dbx.WithTx(ctx, conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}

		tokenPair, err = s.generateTokenPair(ctx, tx)
		return err
	})

	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Validate checks an access token and distinguishes expiry from other
// failures so the transport can ask the client to refresh.
func (s *TokenService) Validate(tokenString string) error {
	_, err := auth.ValidateToken(tokenString, s.jwtSecret)
	return err
}

func (s *TokenService) generateTokenPair(ctx context.Context, db dbx.DBTX) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(tokenSubject, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	if err := s.repos.RefreshTokens(db).Create(ctx, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
