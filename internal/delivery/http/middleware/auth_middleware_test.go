package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"innkeeper/config"
	domainerrors "innkeeper/internal/domain/errors"
	"innkeeper/internal/domain/service"
	mockSvc "innkeeper/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *mockSvc.MockTokenService) {
	tokenSvc := mockSvc.NewMockTokenService(t)

	cfg := &config.Config{
		Cookie: &config.CookieConfig{Name: "auth_token"},
	}

	return NewAuthMiddleware(tokenSvc, cfg), tokenSvc
}

func newAuthTestContext(modify func(*http.Request)) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/validate-token", nil)
	if modify != nil {
		modify(req)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec)
}

func TestAuthMiddleware_TokenFromCookie(t *testing.T) {
	mw, tokenSvc := createTestAuthMiddleware(t)

	accountID := uuid.New()
	tokenSvc.EXPECT().Validate("cookie_token").Return(&service.Claims{AccountID: accountID}, nil)

	c := newAuthTestContext(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie_token"})
	})

	var nextCalled bool
	handler := mw.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})

	err := handler(c)
	require.NoError(t, err)
	assert.True(t, nextCalled)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
}

func TestAuthMiddleware_TokenFromBearerHeader(t *testing.T) {
	mw, tokenSvc := createTestAuthMiddleware(t)

	accountID := uuid.New()
	tokenSvc.EXPECT().Validate("header_token").Return(&service.Claims{AccountID: accountID}, nil)

	c := newAuthTestContext(func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer header_token")
	})

	handler := mw.Authenticate(func(c echo.Context) error {
		return nil
	})

	err := handler(c)
	require.NoError(t, err)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
}

func TestAuthMiddleware_CookiePreferredOverHeader(t *testing.T) {
	mw, tokenSvc := createTestAuthMiddleware(t)

	tokenSvc.EXPECT().Validate("cookie_token").Return(&service.Claims{AccountID: uuid.New()}, nil)

	c := newAuthTestContext(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "cookie_token"})
		req.Header.Set(echo.HeaderAuthorization, "Bearer header_token")
	})

	handler := mw.Authenticate(func(c echo.Context) error {
		return nil
	})

	require.NoError(t, handler(c))
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	mw, _ := createTestAuthMiddleware(t)

	c := newAuthTestContext(nil)

	var nextCalled bool
	handler := mw.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})

	err := handler(c)
	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthMiddleware_MalformedAuthorizationHeader(t *testing.T) {
	mw, _ := createTestAuthMiddleware(t)

	c := newAuthTestContext(func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	})

	handler := mw.Authenticate(func(c echo.Context) error {
		return nil
	})

	err := handler(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	mw, tokenSvc := createTestAuthMiddleware(t)

	tokenSvc.EXPECT().
		Validate("stale_token").
		Return(nil, domainerrors.ErrTokenExpired.WrapMessage("session token expired"))

	c := newAuthTestContext(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "stale_token"})
	})

	var nextCalled bool
	handler := mw.Authenticate(func(c echo.Context) error {
		nextCalled = true

		return nil
	})

	err := handler(c)
	require.Error(t, err)
	assert.False(t, nextCalled)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenExpired))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mw, tokenSvc := createTestAuthMiddleware(t)

	tokenSvc.EXPECT().
		Validate("garbage").
		Return(nil, errors.New("unexpected parser failure"))

	c := newAuthTestContext(func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})
	})

	handler := mw.Authenticate(func(c echo.Context) error {
		return nil
	})

	err := handler(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}
