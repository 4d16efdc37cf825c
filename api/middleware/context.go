package middleware

import (
	"lawconnect/internal/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextUserIDKey  = "auth_user_id"
	contextKindKey    = "auth_kind"
	contextSessionKey = "auth_session_id"
)

func SetAuthContext(c echo.Context, userID uuid.UUID, kind entity.AccountKind, sessionID uuid.UUID) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextKindKey, kind)
	c.Set(contextSessionKey, sessionID)
}

func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextUserIDKey)
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

func KindFromContext(c echo.Context) (entity.AccountKind, bool) {
	value := c.Get(contextKindKey)
	kind, ok := value.(entity.AccountKind)
	return kind, ok
}

func SessionIDFromContext(c echo.Context) (uuid.UUID, bool) {
	value := c.Get(contextSessionKey)
	sessionID, ok := value.(uuid.UUID)
	return sessionID, ok
}
