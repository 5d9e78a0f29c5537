package middleware

import (
	"ChefHub/internal/model"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName — имя cookie с токеном сессии.
const CookieName = "auth_token"

type ctxKey int

const (
	chefIDKey ctxKey = iota
	requestIDKey
)

// tokenTTL — срок жизни выдаваемых токенов.
var tokenTTL = 24 * time.Hour

// SetTokenTTL задаёт срок жизни токенов; неположительное значение игнорируется.
func SetTokenTTL(d time.Duration) {
	if d > 0 {
		tokenTTL = d
	}
}

// Claims — утверждения токена: стандартные плюс идентификатор повара.
type Claims struct {
	jwt.RegisteredClaims
	ChefID int64 `json:"chef_id"`
}

var errInvalidToken = errors.New("invalid token")

// BuildToken подписывает HS256-токен для повара.
func BuildToken(chefID int64, secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		ChefID: chefID,
	})
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и срок действия, возвращает id повара.
func ParseToken(tokenString, secret string) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	if !token.Valid || claims.ChefID < 1 {
		return 0, errInvalidToken
	}
	return claims.ChefID, nil
}

// SetLoginCookie выписывает токен, кладёт его в cookie и возвращает строку токена.
func SetLoginCookie(w http.ResponseWriter, chefID int64, secret string) (string, error) {
	token, err := BuildToken(chefID, secret)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(tokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}

// WithAuth кладёт id повара в контекст, если запрос несёт валидный токен
// в cookie или в заголовке Authorization: Bearer. Иначе запрос остаётся
// анонимным; требование идентификации проверяют сервисы.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			chefID, err := ParseToken(token, secret)
			if err != nil {
				logger.Debugw("auth token rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), chefIDKey, chefID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if v, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(v)
		}
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// GetChefIDFromContext возвращает id повара, установленный WithAuth.
func GetChefIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(chefIDKey).(int64)
	return id, ok && id > 0
}

// ActorFromContext возвращает контекст действующего повара запроса.
func ActorFromContext(ctx context.Context) model.Actor {
	if id, ok := GetChefIDFromContext(ctx); ok {
		return model.AsChef(id)
	}
	return model.Anonymous
}
