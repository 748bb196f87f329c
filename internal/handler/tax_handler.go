package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TaxHandler struct {
	uc *usecase.TaxUsecase
}

func NewTaxHandler(uc *usecase.TaxUsecase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

func (h *TaxHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/tax")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/preview", h.preview)
}

func (h *TaxHandler) preview(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req usecase.TaxPreviewInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Preview(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
