package handler

import (
	"errors"
	"net/http"
	"os"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	uc           *usecase.AuthUsecase
	refreshTTL   time.Duration
	cookieSecure bool
}

func NewAuthHandler(uc *usecase.AuthUsecase, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		uc:           uc,
		refreshTTL:   refreshTTL,
		cookieSecure: envBool("COOKIE_SECURE", true),
	}
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/register", h.register)
	e.POST("/auth/login", h.login)
	e.POST("/auth/refresh", h.refresh)
	e.POST("/auth/logout", h.logout)

	me := e.Group("/auth")
	me.Use(middleware.AuthJWT(cfg))
	me.GET("/me", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.AuthRegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.AuthLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	userAgent := c.Request().Header.Get("User-Agent")
	ip := c.RealIP()

	res, err := h.uc.Login(c.Request().Context(), req, userAgent, ip)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return c.JSON(http.StatusOK, res.Body)
}

func (h *AuthHandler) me(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) refresh(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	userAgent := c.Request().Header.Get("User-Agent")

	res, err := h.uc.Refresh(c.Request().Context(), cookie.Value, userAgent)
	if err != nil {
		h.clearAuthCookies(c)
		return writeAuthError(c, err)
	}

	h.setRefreshCookie(c, res.RefreshTokenPlain)
	h.setCsrfCookie(c, res.CsrfTokenPlain)

	return c.JSON(http.StatusOK, res.Body)
}

func (h *AuthHandler) logout(c echo.Context) error {
	cookie, err := c.Cookie("refresh")
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Logout(c.Request().Context(), cookie.Value)
	if err != nil {
		return writeAuthError(c, err)
	}

	h.clearAuthCookies(c)
	return c.JSON(http.StatusOK, out)
}

func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, validator.ErrInvalidInput),
		errors.Is(err, validator.ErrInvalidRefresh):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "VALIDATION_ERROR"})
	case errors.Is(err, usecase.ErrUnauthorized), errors.Is(err, usecase.ErrSecurityIncident):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "UNAUTHORIZED"})
	case errors.Is(err, usecase.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "FORBIDDEN"})
	case errors.Is(err, usecase.ErrConflict), errors.Is(err, validator.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "CONFLICT"})
	case errors.Is(err, usecase.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "TOO_MANY_REQUESTS"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "INTERNAL"})
	}
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, plainRefresh string) {
	c.SetCookie(&http.Cookie{
		Name:     "refresh",
		Value:    plainRefresh,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) setCsrfCookie(c echo.Context, csrfToken string) {
	c.SetCookie(&http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.refreshTTL),
	})
}

func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	for _, name := range []string{"refresh", "csrf_token"} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: name == "refresh",
			Secure:   h.cookieSecure,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}
