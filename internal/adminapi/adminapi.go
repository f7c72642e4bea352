// Package adminapi is the authenticated management surface: operator auth,
// product and category CRUD, order browsing/export, settings and a
// notification test endpoint.
package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/app"
	"github.com/talkincode/craftstore/internal/order"
	"github.com/talkincode/craftstore/internal/store"
	"github.com/talkincode/craftstore/internal/webserver"
)

type API struct {
	ws     *webserver.WebServer
	appctx app.AppContext
}

// Register wires all admin routes onto the JWT-guarded group.
func Register(ws *webserver.WebServer) *API {
	api := &API{ws: ws, appctx: ws.AppContext()}
	api.registerAuthRoutes()
	api.registerProductRoutes()
	api.registerCategoryRoutes()
	api.registerOrderRoutes()
	api.registerSettingsRoutes()
	return api
}

// failFor maps service errors onto the admin envelope.
func failFor(c echo.Context, err error, what string) error {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verr.Error(), verr.Details)
	case store.IsNotFound(err):
		return fail(c, http.StatusNotFound, "NOT_FOUND", what+" not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to access "+what, err.Error())
	}
}
