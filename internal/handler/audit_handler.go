package handler

import (
	"net/http"
	"strconv"
	"time"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuditHandler struct {
	uc *usecase.AuditUsecase
}

func NewAuditHandler(uc *usecase.AuditUsecase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

func (h *AuditHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/audit-logs", h.list)
}

// GET /admin/audit-logs?action=&resource_type=&resource_id=&from=&to=&limit=&offset=
func (h *AuditHandler) list(c echo.Context) error {
	ownerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	q := usecase.AuditLogQuery{
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resource_type"),
		Limit:        50,
	}

	var err error
	if q.Limit, err = intQuery(c, "limit", q.Limit); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit", Field: "limit"})
	}
	if q.Offset, err = intQuery(c, "offset", 0); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset", Field: "offset"})
	}
	if v := c.QueryParam("resource_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resource_id", Field: "resource_id"})
		}
		q.ResourceID = &id
	}
	if q.From, err = timeQuery(c, "from"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from", Field: "from"})
	}
	if q.To, err = timeQuery(c, "to"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to", Field: "to"})
	}

	logs, err := h.uc.ListMine(c.Request().Context(), ownerID, q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// RFC3339。未指定なら nil
func timeQuery(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	tm, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &tm, nil
}
