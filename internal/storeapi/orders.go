package storeapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/internal/order"
)

func (api *API) registerOrderRoutes() {
	api.ws.PubPOST("/orders/cart", api.submitCartOrder)
	api.ws.PubPOST("/orders/custom", api.submitCustomOrder)
}

// submitCartOrder records a checkout. Validation errors short-circuit with
// the per-field details map; a storage failure is the only 500, and a
// notification failure never surfaces here.
func (api *API) submitCartOrder(c echo.Context) error {
	var req order.CartOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body", Details: err.Error()})
	}

	o, err := api.appctx.OrderService().SubmitCartOrder(c.Request().Context(), req)
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, errorBody{
				Error:   "Missing required fields",
				Details: verr.Details,
			})
		}
		zap.L().Error("storeapi: cart order failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody{
			Error:   "Failed to store order",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, o)
}

func (api *API) submitCustomOrder(c echo.Context) error {
	var req order.CustomOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body", Details: err.Error()})
	}

	o, err := api.appctx.OrderService().SubmitCustomOrder(c.Request().Context(), req)
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, errorBody{
				Error:   "Missing required fields",
				Details: verr.Details,
			})
		}
		zap.L().Error("storeapi: custom order failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorBody{
			Error:   "Failed to create custom order",
			Details: err.Error(),
		})
	}
	return c.JSON(http.StatusCreated, o)
}
