package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StockAdjustRequest は在庫調整の入力です。
type StockAdjustRequest struct {
	Delta int64  `json:"delta"`
	Note  string `json:"note"`
}

type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/inventory/:variant_id/adjustments", h.adjust)
	g.GET("/inventory/:variant_id/movements", h.movements)
}

func (h *InventoryHandler) adjust(c echo.Context) error {
	variantID, err := strconv.ParseInt(c.Param("variant_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid variant_id"})
	}

	var req StockAdjustRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.AdjustStock(c.Request().Context(), ownerID, variantID, usecase.AdjustStockInput{
		Delta: req.Delta,
		Note:  req.Note,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *InventoryHandler) movements(c echo.Context) error {
	variantID, err := strconv.ParseInt(c.Param("variant_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid variant_id"})
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMovements(c.Request().Context(), ownerID, variantID, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
