package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type StatusHistoryRequest struct {
	Status     string `json:"status"`
	PickupTime string `json:"pickup_time"` // RFC3339（任意）
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders/:id", h.detail)
	g.POST("/orders/:id/status-history", h.recordStatus)
}

func (h *OrderHandler) detail(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetOrder(c.Request().Context(), ownerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) recordStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req StatusHistoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	var pickup *time.Time
	if s := strings.TrimSpace(req.PickupTime); s != "" {
		tm, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid pickup_time"})
		}
		pickup = &tm
	}

	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.RecordStatus(c.Request().Context(), ownerID, orderID, usecase.RecordStatusInput{
		Status:     req.Status,
		PickupTime: pickup,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "recorded"})
}
