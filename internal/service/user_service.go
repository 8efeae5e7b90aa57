package service

import (
	"auth-web-server/internal/model"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"context"
	"fmt"
	"log"
	"unicode"
)

type UserService struct {
	userRepository  ports.UserRepository
	cacheRepository ports.CacheRepository
}

func NewUserService(
	userRepository ports.UserRepository,
	cacheRepository ports.CacheRepository,
) *UserService {
	return &UserService{
		userRepository:  userRepository,
		cacheRepository: cacheRepository,
	}
}

// Register создает нового пользователя с ролью user.
// Возвращает repository.ErrEmailTaken, если email уже занят
func (s *UserService) Register(ctx context.Context, email, fullName, password string) (*model.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, fmt.Errorf("[UserService] %w", err)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось создать хэш пароля: %w", err)
	}

	user := &model.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         "user",
		Active:       true,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return created, nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("пароль должен содержать минимум 8 символов")
	}

	var upperCount, lowerCount, digitCount int

	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			upperCount++
		case unicode.IsLower(c):
			lowerCount++
		case unicode.IsDigit(c):
			digitCount++
		}
	}

	if upperCount == 0 || lowerCount == 0 {
		return fmt.Errorf("пароль должен содержать буквы в разных регистрах")
	}
	if digitCount < 1 {
		return fmt.Errorf("пароль должен содержать хотя бы одну цифру")
	}

	return nil
}

// GetUser возвращает профиль пользователя, сначала проверяя кэш.
// Промах кэша дочитывается из БД и кладется обратно с TTL
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if cached, err := s.cacheRepository.GetUser(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepository.SetUser(ctx, user); err != nil {
		log.Printf("не удалось положить пользователя в кэш: %v", err)
	}

	return user, nil
}
