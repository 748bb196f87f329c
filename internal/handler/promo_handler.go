package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PromoHandler struct {
	uc *usecase.PromoUsecase
}

func NewPromoHandler(uc *usecase.PromoUsecase) *PromoHandler {
	return &PromoHandler{uc: uc}
}

type PromoValidateRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (h *PromoHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/promo-codes")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/validate", h.validate)
}

func (h *PromoHandler) validate(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PromoValidateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Validate(c.Request().Context(), userID, req.Code, req.Subtotal)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
