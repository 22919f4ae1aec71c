package server

import (
	"net/http"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Handlers struct {
	Compositions *handler.CompositionHandler
	Inventory    *handler.InventoryHandler
	Orders       *handler.OrderHandler
	Audit        *handler.AuditHandler
	StockJob     *handler.StockJobHandler
}

// echoを組み立てる（テストからも使う）
func New(cfg config.Config, log *logrus.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(requestLogger(log))

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(addr string, e *echo.Echo) error {
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func requestLogger(log *logrus.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"user_id": c.Get(middleware.CtxUserIDKey),
			}).Info("request")
			return nil
		},
	})
}
