package ports

import (
	"auth-web-server/internal/model"
	"auth-web-server/internal/security"
	"context"
	"time"
)

type JWTRepositoryInterface interface {
	SaveRefreshToken(ctx context.Context, token *model.RefreshToken) error
	FindByJTI(ctx context.Context, jti string) (*model.RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
}

type JWTServiceInterface interface {
	IssueAccessToken(userID int64, role string) (string, error)
	IssueRefreshToken(userID int64, jti string, ttlDays int) (string, string, time.Time, error)
	DecodeToken(tokenString string) (*security.Claims, error)
}
