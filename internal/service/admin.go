package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"carepulse/config"
	"carepulse/internal/domain"
	"carepulse/pkg/auth"
)

const adminSubject = "admin"

type adminClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type AdminServiceImpl struct {
	passkeyHash string
	cfg         config.AdminConfig
	now         func() time.Time
	logger      *zap.Logger
}

// NewAdminService checks passkeys against passkeyHash, an argon2id hash
// produced by auth.HashPasskey.
func NewAdminService(passkeyHash string, cfg config.AdminConfig, logger *zap.Logger) *AdminServiceImpl {
	return &AdminServiceImpl{
		passkeyHash: passkeyHash,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger,
	}
}

func (s *AdminServiceImpl) CreateSession(_ context.Context, passkey string) (*domain.AdminToken, error) {
	ok, err := auth.VerifyPasskey(passkey, s.passkeyHash)
	if err != nil {
		s.logger.Error("failed to verify admin passkey", zap.Error(err))
		return nil, fmt.Errorf("verify passkey: %w", domain.ErrUnauthorized)
	}
	if !ok {
		s.logger.Warn("invalid admin passkey")
		return nil, fmt.Errorf("invalid passkey: %w", domain.ErrUnauthorized)
	}

	tokenID, err := auth.GenerateRandomToken(16)
	if err != nil {
		return nil, fmt.Errorf("generate token id: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TokenTTL)
	claims := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminSubject,
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role: adminSubject,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SigningKey))
	if err != nil {
		s.logger.Error("failed to sign admin token", zap.Error(err))
		return nil, fmt.Errorf("sign admin token: %w", err)
	}

	s.logger.Info("admin session created", zap.String("tokenId", claims.ID))
	return &domain.AdminToken{AccessToken: token, ExpiresAt: expiresAt}, nil
}

func (s *AdminServiceImpl) ParseToken(_ context.Context, tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &adminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return fmt.Errorf("parse token: %w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*adminClaims)
	if !ok || !token.Valid || claims.Subject != adminSubject || claims.Role != adminSubject {
		return fmt.Errorf("invalid token: %w", domain.ErrUnauthorized)
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("token without expiry: %w", domain.ErrUnauthorized)
	}
	return nil
}
