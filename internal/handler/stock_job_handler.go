package handler

import (
	"errors"
	"net/http"
	"time"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

// バッチを手動で1回走らせる（ADMINのみ）
type StockJobHandler struct {
	uc    *usecase.StockDeductionUsecase
	clock usecase.Clock
}

func NewStockJobHandler(uc *usecase.StockDeductionUsecase, clock usecase.Clock) *StockJobHandler {
	return &StockJobHandler{uc: uc, clock: clock}
}

func (h *StockJobHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/stock-deduction", h.run)
}

func (h *StockJobHandler) run(c echo.Context) error {
	now := h.clock.Now()
	if v := c.QueryParam("now"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid now"})
		}
		now = tm
	}

	report, err := h.uc.ProcessPickedUpOrders(c.Request().Context(), now)
	if errors.Is(err, usecase.ErrJobAlreadyRunning) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "job already running"})
	}
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, report)
}
