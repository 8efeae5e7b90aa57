package security

import (
	"auth-web-server/config"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken : токен не разобран, подпись неверна или тип токена не тот
	ErrInvalidToken = errors.New("невалидный токен")
	// ErrTokenExpired : срок действия токена истек; никогда не сводится к ErrInvalidToken
	ErrTokenExpired = errors.New("токен просрочен")
)

var signingMethods = map[string]jwt.SigningMethod{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// Claims : набор утверждений access и refresh токенов.
// sub и exp лежат в RegisteredClaims, jti — в RegisteredClaims.ID (только refresh),
// role заполняется только для access токенов.
type Claims struct {
	Role      string `json:"role,omitempty"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID возвращает sub как числовой идентификатор пользователя
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: некорректный sub", ErrInvalidToken)
	}
	return id, nil
}

type JWTService struct {
	*config.JWTConfig
	method jwt.SigningMethod
}

func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	method, ok := signingMethods[cfg.Algorithm]
	if !ok {
		return nil, fmt.Errorf("неизвестный алгоритм подписи: %s", cfg.Algorithm)
	}
	return &JWTService{cfg, method}, nil
}

// IssueAccessToken выпускает подписанный access токен с ролью пользователя.
// Время жизни задается настройкой access_token_ttl_minutes.
func (service *JWTService) IssueAccessToken(userID int64, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role:      role,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(service.AccessTokenTTLMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	jwtToken := jwt.NewWithClaims(service.method, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return accessToken, nil
}

// IssueRefreshToken выпускает подписанный refresh токен.
// Если jti пустой — генерируется новый uuid; если ttlDays равен нулю —
// берется настройка refresh_token_ttl_days. Сохранение jti/expiresAt в БД —
// ответственность вызывающего, сервис ничего не знает о хранилище.
func (service *JWTService) IssueRefreshToken(userID int64, jti string, ttlDays int) (string, string, time.Time, error) {
	if jti == "" {
		jti = uuid.New().String()
	}
	if ttlDays == 0 {
		ttlDays = service.RefreshTokenTTLDays
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(ttlDays) * 24 * time.Hour)

	claims := Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	jwtToken := jwt.NewWithClaims(service.method, claims)
	refreshToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return refreshToken, jti, expiresAt, nil
}

// DecodeToken проверяет подпись и срок действия токена.
// Тип токена и отзыв здесь не проверяются — это делают вызывающие.
func (service *JWTService) DecodeToken(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != service.method.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !jwtToken.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
