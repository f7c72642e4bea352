package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/store"
)

func (api *API) registerOrderRoutes() {
	api.ws.ApiGET("/orders", api.listOrders)
	api.ws.ApiGET("/orders/:id", api.getOrder)
	api.ws.ApiGET("/orders/export", api.exportOrders)
}

// orderFilterFromQuery accepts human date formats in from/to, e.g.
// 2024-01-02 or "Jan 2 2024".
func orderFilterFromQuery(c echo.Context) (store.OrderFilter, error) {
	filter := store.OrderFilter{
		Type:   strings.TrimSpace(c.QueryParam("type")),
		Status: strings.TrimSpace(c.QueryParam("status")),
	}
	if from := strings.TrimSpace(c.QueryParam("from")); from != "" {
		t, err := dateparse.ParseLocal(from)
		if err != nil {
			return filter, fmt.Errorf("invalid from date: %w", err)
		}
		filter.From = t
	}
	if to := strings.TrimSpace(c.QueryParam("to")); to != "" {
		t, err := dateparse.ParseLocal(to)
		if err != nil {
			return filter, fmt.Errorf("invalid to date: %w", err)
		}
		filter.To = t
	}
	return filter, nil
}

func (api *API) listOrders(c echo.Context) error {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	page, pageSize := parsePagination(c)

	rows, err := api.appctx.OrderService().List(c.Request().Context(), filter)
	if err != nil {
		return failFor(c, err, "orders")
	}
	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

func (api *API) getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	o, err := api.appctx.OrderService().Get(c.Request().Context(), id)
	if err != nil {
		return failFor(c, err, "order")
	}
	return ok(c, o)
}

type orderCSVRow struct {
	ID        int64   `csv:"id"`
	Type      string  `csv:"type"`
	Status    string  `csv:"status"`
	Name      string  `csv:"name"`
	Email     string  `csv:"email"`
	Phone     string  `csv:"phone"`
	Address   string  `csv:"address"`
	Items     string  `csv:"items"`
	Total     float64 `csv:"total"`
	CreatedAt string  `csv:"created_at"`
}

func (api *API) exportOrders(c echo.Context) error {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	rows, err := api.appctx.OrderService().List(c.Request().Context(), filter)
	if err != nil {
		return failFor(c, err, "orders")
	}

	out := make([]orderCSVRow, 0, len(rows))
	for _, o := range rows {
		out = append(out, orderCSVRow{
			ID:        o.ID,
			Type:      o.Type,
			Status:    o.Status,
			Name:      o.Name,
			Email:     o.Email,
			Phone:     o.Phone,
			Address:   o.Address,
			Items:     itemsSummary(o),
			Total:     o.Total,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := gocsv.MarshalString(&out)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to build CSV", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}

func itemsSummary(o domain.Order) string {
	if o.Type == domain.OrderTypeCustom {
		return o.Description
	}
	parts := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
