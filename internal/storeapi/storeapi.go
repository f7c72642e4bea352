// Package storeapi is the public storefront surface. Unlike the admin API
// it speaks the bare wire shapes the frontend expects: plain arrays for
// listings, the created order itself on 201, and {error, details} failures.
package storeapi

import (
	"github.com/talkincode/craftstore/internal/app"
	"github.com/talkincode/craftstore/internal/webserver"
)

type API struct {
	ws     *webserver.WebServer
	appctx app.AppContext
}

// Register wires all public routes.
func Register(ws *webserver.WebServer) *API {
	api := &API{ws: ws, appctx: ws.AppContext()}
	api.registerProductRoutes()
	api.registerOrderRoutes()
	api.registerCartRoutes()
	return api
}

type errorBody struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}
