package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/pkg/metrics"
)

func (api *API) registerSettingsRoutes() {
	api.ws.ApiGET("/settings", api.listSettings)
	api.ws.ApiPOST("/settings", api.saveSettings)
	api.ws.ApiPOST("/notify/test", api.testNotify)
	api.ws.ApiGET("/metrics", api.dashboardMetrics)
}

func (api *API) listSettings(c echo.Context) error {
	rows, err := api.appctx.Store().Settings().List(c.Request().Context())
	if err != nil {
		return failFor(c, err, "settings")
	}
	return ok(c, rows)
}

func (api *API) saveSettings(c echo.Context) error {
	var payload map[string]interface{}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	if err := api.appctx.SaveSettings(payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}
	return ok(c, map[string]interface{}{"saved": len(payload)})
}

// testNotify is the one endpoint whose sole job is sending a notification,
// so here a delivery failure is surfaced instead of swallowed.
func (api *API) testNotify(c echo.Context) error {
	var payload struct {
		Text string `json:"text"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Text == "" {
		payload.Text = "🔔 Test notification from craftstore"
	}
	if err := api.appctx.Notifier().SendMessage(c.Request().Context(), payload.Text); err != nil {
		return fail(c, http.StatusBadGateway, "NOTIFY_FAILED", "Failed to send notification", err.Error())
	}
	return ok(c, map[string]interface{}{"sent": true})
}

func (api *API) dashboardMetrics(c echo.Context) error {
	since := time.Now().Add(-24 * time.Hour)
	return ok(c, map[string]interface{}{
		"orders_cart_24h":     metrics.CountSince(metrics.MetricOrdersCart, since),
		"orders_custom_24h":   metrics.CountSince(metrics.MetricOrdersCustom, since),
		"notify_failures_24h": metrics.CountSince(metrics.MetricNotifyFailures, since),
		"http_requests_24h":   metrics.CountSince(metrics.MetricHTTPRequests, since),
	})
}
