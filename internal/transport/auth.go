package transport

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	adminRole        = "admin"
	defaultJWTLeeway = 30 * time.Second
)

// adminAuth admits requests carrying an HS256 bearer token whose "role" claim
// is "admin". Without a secret every admin request is refused.
type adminAuth struct {
	secret []byte
	leeway time.Duration
	logger *zap.Logger
}

func newAdminAuth(secret string, logger *zap.Logger) *adminAuth {
	return &adminAuth{
		secret: []byte(strings.TrimSpace(secret)),
		leeway: defaultJWTLeeway,
		logger: logger,
	}
}

func (a *adminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(a.secret) == 0 {
			writeErrorCode(w, http.StatusForbidden, "forbidden", "admin api is disabled")
			return
		}
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		claims, err := a.parse(token)
		if err != nil {
			a.logger.Info("admin token rejected", zap.String("path", r.URL.Path), zap.Error(err))
			writeErrorCode(w, http.StatusUnauthorized, "unauthorized", "invalid token")
			return
		}
		if role, _ := claims["role"].(string); role != adminRole {
			writeErrorCode(w, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *adminAuth) parse(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(a.leeway))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
