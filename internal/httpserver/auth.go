package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/online_pharmacy/pkg/logging"
	middleware "github.com/Skotchmaster/online_pharmacy/pkg/middleware/auth"

	"github.com/Skotchmaster/online_pharmacy/internal/service"
	"github.com/Skotchmaster/online_pharmacy/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if _, err := h.Svc.Register(ctx, req); err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
		case errors.Is(err, service.ErrConflict):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already exists")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
		}
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "User registered successfully"})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, reason(err, service.ErrValidation))
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
		}
	}

	c.SetCookie(middleware.CreateCookie(middleware.AccessCookie, res.AccessToken, "/", res.AccessExp))
	l.Info("login_successful", "user_id", res.User.ID)

	return c.JSON(http.StatusOK, transport.LoginResponse{
		ID:    res.User.ID,
		Email: res.User.Email,
		Name:  res.User.Name,
		Role:  res.User.Role,
		Token: res.AccessToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	c.SetCookie(middleware.DeleteCookie(middleware.AccessCookie, "/"))
	logging.FromContext(c.Request().Context()).Info("logout_successful", "handler", "auth.logout")
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Logged out"})
}
