package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"openblog/internal/config"
)

type Middleware func(http.Handler) http.Handler

type contextKey string

const (
	callerKey contextKey = "caller"
	emailKey  contextKey = "email"
)

// Caller возвращает username вызывающего из контекста запроса.
// Пустая строка означает анонимный запрос.
func Caller(ctx context.Context) string {
	username, _ := ctx.Value(callerKey).(string)
	return username
}

// CallerEmail возвращает email вызывающего из контекста запроса
func CallerEmail(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// WithCaller кладет личность вызывающего в контекст. Используется в
// тестах обработчиков.
func WithCaller(ctx context.Context, username, email string) context.Context {
	ctx = context.WithValue(ctx, callerKey, username)
	return context.WithValue(ctx, emailKey, email)
}

// IdentityMiddleware разбирает Bearer-токен, если он есть, и кладет
// username и email в контекст. Запрос без токена проходит дальше как
// анонимный - обязательность авторизации решают сами обработчики.
func IdentityMiddleware(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// Checking the "Bearer <token>" format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeUnauthorized(w, "Неверный формат токена")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
				}
				return []byte(cfg.JWTSecretKey), nil
			})

			if err != nil || !token.Valid {
				writeUnauthorized(w, "Недействительный токен")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				writeUnauthorized(w, "Неверные claims токена")
				return
			}

			username, ok1 := claims["username"].(string)
			email, ok2 := claims["email"].(string)
			if !ok1 || !ok2 {
				writeUnauthorized(w, "Неверные данные в токене")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), username, email)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":%q}`, message)
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Method: %s, URL: %s", r.Method, r.RequestURI)
		next.ServeHTTP(w, r)
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
