package service

import (
	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthenticationFailed : неизвестный email или неверный пароль;
	// наружу причина не раскрывается
	ErrAuthenticationFailed = errors.New("неверный логин или пароль")
	// ErrTokenRevoked : refresh-токен отозван через logout
	ErrTokenRevoked = errors.New("токен отозван")
	// ErrUserInactive : владелец токена удален или деактивирован
	ErrUserInactive = errors.New("пользователь неактивен или не найден")
)

type AuthenticationService struct {
	jwtRepoInterface    ports.JWTRepositoryInterface
	jwtServiceInterface ports.JWTServiceInterface
	userRepository      ports.UserRepository
}

func NewAuthenticationService(
	repo ports.JWTRepositoryInterface,
	service ports.JWTServiceInterface,
	userInterface ports.UserRepository,
) *AuthenticationService {
	return &AuthenticationService{
		repo,
		service,
		userInterface,
	}
}

// Login выдает пару access/refresh токенов по email и паролю.
// Каждый вход создает независимую запись refresh-токена со своим jti,
// поэтому параллельные сессии одного пользователя живут одновременно.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrAuthenticationFailed
	}

	accessToken, err := s.jwtServiceInterface.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	refreshToken, jti, expiresAt, err := s.jwtServiceInterface.IssueRefreshToken(user.ID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	record := &model.RefreshToken{
		UserID:    user.ID,
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if err := s.jwtRepoInterface.SaveRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("ошибка сохранения refresh токена: %w", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh выдает новый access токен по действующему refresh токену.
// Выполняет следующие проверки, каждая со своим видом ошибки:
//  1. Подпись и срок действия самого токена (security.ErrInvalidToken,
//     security.ErrTokenExpired).
//  2. Тип токена — принимается только refresh.
//  3. Запись jti в хранилище: отсутствие (repository.ErrTokenNotFound),
//     отзыв (ErrTokenRevoked), истечение срока по данным БД
//     (security.ErrTokenExpired) — подписанный exp и expires_at в таблице
//     должны совпадать, проверяются оба.
//  4. Владелец токена перечитывается из БД и должен быть активен.
//
// Сам refresh токен не ротируется: он действует до своего истечения или
// до явного logout. Между чтением записи и выдачей access токена возможен
// конкурентный logout — транзакции на весь запрос нет, окно признано
// допустимым ограничением.
//
// Возвращает:
//   - новый access токен
//   - ошибку, если обновление невозможно
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtServiceInterface.DecodeToken(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.TokenType != security.TokenTypeRefresh {
		return "", security.ErrInvalidToken
	}
	if claims.ID == "" || claims.Subject == "" {
		return "", security.ErrInvalidToken
	}

	storedRefreshToken, err := s.jwtRepoInterface.FindByJTI(ctx, claims.ID)
	if err != nil {
		return "", util.LogError("не удалось найти рефреш токен", err)
	}
	if storedRefreshToken.Revoked {
		return "", ErrTokenRevoked
	}
	if !time.Now().UTC().Before(storedRefreshToken.ExpiresAt) {
		return "", security.ErrTokenExpired
	}

	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil || !user.Active {
		return "", ErrUserInactive
	}

	accessToken, err := s.jwtServiceInterface.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return accessToken, nil
}

// Logout отзывает refresh-токен: revoked переводится в TRUE и назад
// не возвращается. Повторный logout того же токена проходит без ошибки
//
// Возвращает:
//   - ошибку, если токен невалиден или jti неизвестен хранилищу
func (s *AuthenticationService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtServiceInterface.DecodeToken(refreshToken)
	if err != nil {
		return err
	}

	if claims.TokenType != security.TokenTypeRefresh || claims.ID == "" {
		return security.ErrInvalidToken
	}

	if err := s.jwtRepoInterface.RevokeByJTI(ctx, claims.ID); err != nil {
		return fmt.Errorf("не удалось отозвать токен: %w", err)
	}
	return nil
}
