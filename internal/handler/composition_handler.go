package handler

import (
	"net/http"
	"strconv"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CompositionItemRequest struct {
	ComponentSKU string `json:"component_sku"`
	Quantity     int64  `json:"quantity"`
}

type CompositionReplaceRequest struct {
	Items []CompositionItemRequest `json:"items"`
}

type CompositionResponse struct {
	BundleSKU string                    `json:"bundle_sku"`
	Items     []usecase.CompositionItem `json:"items"`
}

// /admin/compositions
type CompositionHandler struct {
	uc *usecase.CompositionUsecase
}

// DI
func NewCompositionHandler(uc *usecase.CompositionUsecase) *CompositionHandler {
	return &CompositionHandler{uc: uc}
}

func (h *CompositionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/compositions/:bundle_sku", h.get)
	g.PUT("/compositions/:bundle_sku", h.replace)
	g.GET("/compositions/:bundle_sku/candidates", h.candidates)
}

func (h *CompositionHandler) get(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	bundleSKU := c.Param("bundle_sku")
	items, err := h.uc.GetComposition(c.Request().Context(), ownerID, bundleSKU)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CompositionResponse{BundleSKU: bundleSKU, Items: items})
}

func (h *CompositionHandler) replace(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CompositionReplaceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.CompositionItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.CompositionItem{ComponentSKU: it.ComponentSKU, Quantity: it.Quantity})
	}

	if err := h.uc.ReplaceComposition(c.Request().Context(), ownerID, c.Param("bundle_sku"), items); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "saved"})
}

func (h *CompositionHandler) candidates(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	limit := usecase.DefaultCandidateLimit
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil || l < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	//自分自身（セットSKU）は候補から外す
	out, err := h.uc.SearchComponentCandidates(
		c.Request().Context(),
		ownerID,
		c.QueryParam("q"),
		c.Param("bundle_sku"),
		limit,
	)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
