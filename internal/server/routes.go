package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Cfg config.Config

	Auth           *handler.AuthHandler
	Order          *handler.OrderHandler
	Promo          *handler.PromoHandler
	Tax            *handler.TaxHandler
	Inventory      *handler.InventoryHandler
	ServiceRequest *handler.ServiceRequestHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminPromo     *handler.AdminPromoHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e, h.Cfg)
	h.Order.RegisterRoutes(e, h.Cfg)
	h.Promo.RegisterRoutes(e, h.Cfg)
	h.Tax.RegisterRoutes(e, h.Cfg)
	h.Inventory.RegisterRoutes(e, h.Cfg)
	h.ServiceRequest.RegisterRoutes(e, h.Cfg)
	h.AdminOrder.RegisterRoutes(e, h.Cfg)
	h.AdminPromo.RegisterRoutes(e, h.Cfg)
}
