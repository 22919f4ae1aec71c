package server

import (
	"net/http"

	"backoffice/internal/config"
	"backoffice/internal/middleware"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))

	h.Compositions.RegisterRoutes(admin)
	h.Inventory.RegisterRoutes(admin)
	h.Orders.RegisterRoutes(admin)
	h.Audit.RegisterRoutes(admin)

	//バッチの手動実行はADMINだけ
	jobs := e.Group("/admin/jobs", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	h.StockJob.RegisterRoutes(jobs)
}
