// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"innkeeper/config"
	"innkeeper/internal/delivery/http/middleware"
	"innkeeper/internal/delivery/http/response"
	"innkeeper/internal/domain/service"
	"innkeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc       usecase.AccountUsecase
	tokenSvc service.TokenService
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, tokenSvc service.TokenService, cfg *config.Config, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register handles the account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	// Bind into a zero value so an empty body reaches the usecase as missing
	// fields and comes back as field-level validation errors, not a nil input.
	input := new(usecase.RegisterInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.Token)

	// The token travels in the cookie; the body carries only the outcome.
	return response.Success(c, http.StatusCreated, nil, "User registered successfully")
}

// Login handles the account login request.
func (h *AccountHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookie(c, output.Token)

	return response.Success(c, http.StatusOK, map[string]string{"userId": output.Account.ID.String()}, "User logged in successfully")
}

// Logout clears the session cookie. Tokens are stateless, so there is nothing
// to revoke server-side; the token simply ages out at its expiry.
func (h *AccountHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// ValidateToken resolves the session cookie back to the account it was issued
// for. It runs behind the auth middleware, which rejects missing, expired and
// tampered tokens; the account lookup catches tokens that outlived their
// account.
func (h *AccountHandler) ValidateToken(c echo.Context) error {
	accountIDVal := c.Get(middleware.ContextKeyAccountID)
	accountID, ok := accountIDVal.(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid account ID in token")
	}

	account, err := h.uc.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"userId": account.ID.String()}, "Token is valid")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func (h *AccountHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenSvc.AccessTokenDuration().Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AccountHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cfg.Cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}
