package middleware

import (
	"net/http"
	"strings"

	"lawconnect/internal/entity"
	"lawconnect/internal/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	JWT *utils.JWTManager
}

func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := m.parseRequest(c); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}

// OptionalAuth sets the auth context when a valid bearer token is present
// and lets the request through either way. The question listing uses it to
// show unanswered questions to lawyers only.
func (m AuthMiddleware) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		m.parseRequest(c)
		return next(c)
	}
}

func (m AuthMiddleware) parseRequest(c echo.Context) (*utils.AccessClaims, bool) {
	if m.JWT == nil {
		return nil, false
	}
	token := extractBearerToken(c.Request())
	if token == "" {
		return nil, false
	}
	claims, err := m.JWT.ParseAccessToken(token)
	if err != nil {
		return nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, false
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, false
	}
	SetAuthContext(c, userID, entity.AccountKind(claims.Kind), sessionID)
	return claims, true
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
