package middleware

import (
	"strings"

	"innkeeper/config"
	domainerrors "innkeeper/internal/domain/errors"
	"innkeeper/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyAccountID is where Authenticate stores the authenticated account id.
const ContextKeyAccountID = "accountID"

// AuthMiddleware provides middleware for session-token authentication.
type AuthMiddleware struct {
	tokenSvc   service.TokenService
	cookieName string
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:   tokenSvc,
		cookieName: cfg.Cookie.Name,
	}
}

// Authenticate validates the session token and stores the account id on the
// request context. The token is looked up in the session cookie first, then
// in the Authorization header; the token itself is the same either way.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, err := m.extractToken(c)
		if err != nil {
			return err
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return err
			}

			return domainerrors.ErrTokenInvalid.WrapMessage("token validation failed")
		}

		c.Set(ContextKeyAccountID, claims.AccountID)

		return next(c)
	}
}

func (m *AuthMiddleware) extractToken(c echo.Context) (string, error) {
	if cookie, err := c.Cookie(m.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("no session token presented")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", domainerrors.ErrUnauthorized.WrapMessage("invalid authorization header format")
	}

	return tokenString, nil
}
