package handler

import (
	"net/http"

	"innkeeper/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// TestHandler handles test endpoints, registered only when testRoutes.enabled is set.
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// Hello is a plain reachability probe for the API.
func (h *TestHandler) Hello(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello World"})
}

// TestAuthMiddleware tests the authentication middleware.
// This endpoint requires a valid session token.
func (h *TestHandler) TestAuthMiddleware(c echo.Context) error {
	accountID := c.Get("accountID")

	return response.Success(c, http.StatusOK, map[string]any{
		"accountID": accountID,
		"status":    "authenticated",
	}, "Authentication middleware test successful")
}
