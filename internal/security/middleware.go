package security

import (
	"auth-web-server/internal/repository"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// JWTMiddleware проверяет access токен из заголовка Authorization.
// Тип токена должен быть access, владелец токена должен существовать и быть
// активным — запись пользователя перечитывается из БД на каждый запрос.
func JWTMiddleware(jwtService *JWTService, userRepository *repository.UserRepository) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(jwtService, userRepository, next))
	}
}

func handleAuthentication(jwtService *JWTService, userRepository *repository.UserRepository, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		authorizationHeader := request.Header.Get("Authorization")
		if !strings.HasPrefix(authorizationHeader, "Bearer ") {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authorizationHeader, "Bearer ")

		claims, err := jwtService.DecodeToken(token)
		if err != nil {
			log.Printf("невалидный токен: %v", err)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		if claims.TokenType != TokenTypeAccess {
			log.Printf("ожидался access токен, получен %q", claims.TokenType)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := userRepository.FindByID(request.Context(), userID)
		if err != nil || !user.Active {
			log.Printf("пользователь %d неактивен или не найден", userID)
			http.Error(writer, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
		next.ServeHTTP(writer, req)
	}
}

// RequireRole пропускает запрос только при совпадении роли из access токена
func RequireRole(role string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims, err := GetClaimsFromContext(request.Context())
			if err != nil {
				http.Error(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			if claims.Role != role {
				http.Error(writer, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
