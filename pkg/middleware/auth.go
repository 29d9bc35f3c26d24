package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prem5599/bizinsights-sub001/internal/domain"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

// Rotas que não exigem autenticação: healthcheck e o ingresso de webhooks,
// cuja assinatura já foi validada pelo middleware do gateway
func isPublicPath(path string, method string) bool {
	if path == "/healthcheck" {
		return true
	}
	if method == http.MethodPost && strings.HasPrefix(path, "/v1/integrations/") && strings.HasSuffix(path, "/webhook") {
		return true
	}
	return false
}

// AuthMiddleware valida o token JWT emitido pelo serviço de autenticação
// externo e injeta as claims no contexto da requisição
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := ValidateToken(tokenString, secret)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateToken verifica a assinatura e a validade do token e retorna as claims
func ValidateToken(tokenString string, secret string) (*domain.Claims, error) {
	claims := &domain.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("token inválido")
	}

	return claims, nil
}
