package repository

import (
	"auth-web-server/config"
	"auth-web-server/internal/model"
	"auth-web-server/internal/util"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateToken : jti уже есть в таблице; при случайной генерации
	// jti такого быть не должно, но ошибка обрабатывается, а не игнорируется
	ErrDuplicateToken = errors.New("токен с таким jti уже существует")
	// ErrTokenNotFound : jti отсутствует в таблице
	ErrTokenNotFound = errors.New("токен не найден")
)

const pgUniqueViolation = "23505"

type JWTRepository struct {
	*config.Database
}

func NewJWTRepository(database *config.Database) *JWTRepository {
	return &JWTRepository{database}
}

// SaveRefreshToken сохраняет запись refresh-токена с revoked = false.
// Возвращает ErrDuplicateToken при нарушении уникальности jti
func (r *JWTRepository) SaveRefreshToken(ctx context.Context, refreshToken *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (user_id, jti, expires_at, revoked)
					VALUES ($1, $2, $3, FALSE)
	`

	_, err := r.DB.ExecContext(ctx, query,
		refreshToken.UserID,
		refreshToken.JTI,
		refreshToken.ExpiresAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateToken, refreshToken.JTI)
		}
		return util.LogError("ошибка вставки данных в БД", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

// RevokeByJTI изменяет поле revoked, делая его равным TRUE.
// Повторный отзыв уже отозванного токена ошибкой не считается;
// ErrTokenNotFound возвращается только для неизвестного jti
func (r *JWTRepository) RevokeByJTI(ctx context.Context, jti string) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE jti = $1`

	result, err := r.DB.ExecContext(ctx, query, jti)
	if err != nil {
		return util.LogError("не удалось отозвать рефреш токен", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("не удалось проверить, отозван ли токен", err)
	}
	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	return nil
}

// FindByJTI ищет запись refresh-токена в базе данных.
// Возвращает модель model.RefreshToken или ErrTokenNotFound
func (r *JWTRepository) FindByJTI(ctx context.Context, jti string) (*model.RefreshToken, error) {
	query := `SELECT id, user_id, jti, expires_at, revoked, created_at FROM refresh_tokens WHERE jti = $1`

	refreshToken := &model.RefreshToken{}

	err := r.DB.QueryRowContext(ctx, query, jti).Scan(
		&refreshToken.ID,
		&refreshToken.UserID,
		&refreshToken.JTI,
		&refreshToken.ExpiresAt,
		&refreshToken.Revoked,
		&refreshToken.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, util.LogError("ошибка при выполнении запроса", err)
	}

	return refreshToken, nil
}
