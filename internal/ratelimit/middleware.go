package ratelimit

import (
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"
	"log"
	"net"
	"net/http"
	"strings"
)

// Middleware ограничивает частоту запросов в рамках области scope.
// Ключ — идентификатор авторизованного пользователя, иначе первый адрес
// из X-Forwarded-For, иначе адрес соединения.
func Middleware(limiter *Limiter, scope string, limit, window int) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := clientKey(request)
			if !limiter.Allow(scope, key, limit, window, 1) {
				log.Printf("%v: scope=%s key=%s", ErrRateLimited, scope, key)
				util.HandleError(writer, ErrRateLimited.Error(), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func clientKey(request *http.Request) string {
	if claims, err := security.GetClaimsFromContext(request.Context()); err == nil {
		return claims.Subject
	}

	if forwarded := request.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
