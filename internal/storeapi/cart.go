package storeapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/cart"
	"github.com/talkincode/craftstore/internal/store"
)

// Cart sessions let a browser keep its selection across reloads. Every
// mutation returns the full snapshot with recomputed totals so the client
// never has to track derived values.

type cartView struct {
	SessionID string      `json:"session_id"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"item_count"`
}

func viewOf(sid string, c cart.Cart) cartView {
	return cartView{
		SessionID: sid,
		Items:     c.Items,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}

func (api *API) registerCartRoutes() {
	api.ws.PubPOST("/cart", api.createCartSession)
	api.ws.PubGET("/cart/:sid", api.getCart)
	api.ws.PubPOST("/cart/:sid/items", api.addCartItem)
	api.ws.PubPUT("/cart/:sid/items/:pid", api.setCartQuantity)
	api.ws.PubDELETE("/cart/:sid/items/:pid", api.removeCartItem)
	api.ws.PubDELETE("/cart/:sid", api.clearCart)
}

func (api *API) createCartSession(c echo.Context) error {
	sid := api.appctx.Carts().NewSessionID()
	snap, err := api.appctx.Carts().Mutate(sid, func(*cart.Cart) {})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to create cart"})
	}
	return c.JSON(http.StatusCreated, viewOf(sid, snap))
}

func (api *API) getCart(c echo.Context) error {
	sid := c.Param("sid")
	snap, err := api.appctx.Carts().Load(sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to load cart"})
	}
	return c.JSON(http.StatusOK, viewOf(sid, snap))
}

func (api *API) addCartItem(c echo.Context) error {
	sid := c.Param("sid")
	var payload struct {
		ProductID int64 `json:"product_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}

	// snapshot name/price at add-time
	p, err := api.appctx.Catalog().Get(c.Request().Context(), payload.ProductID)
	if err != nil {
		if store.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, errorBody{Error: "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to fetch product"})
	}

	snap, err := api.appctx.Carts().Mutate(sid, func(ct *cart.Cart) {
		ct.Add(p.ID, p.Name, p.Price)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, viewOf(sid, snap))
}

func (api *API) setCartQuantity(c echo.Context) error {
	sid := c.Param("sid")
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product id"})
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid request body"})
	}
	snap, err := api.appctx.Carts().Mutate(sid, func(ct *cart.Cart) {
		ct.SetQuantity(pid, payload.Quantity)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, viewOf(sid, snap))
}

func (api *API) removeCartItem(c echo.Context) error {
	sid := c.Param("sid")
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product id"})
	}
	snap, err := api.appctx.Carts().Mutate(sid, func(ct *cart.Cart) {
		ct.Remove(pid)
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, viewOf(sid, snap))
}

func (api *API) clearCart(c echo.Context) error {
	sid := c.Param("sid")
	if err := api.appctx.Carts().Clear(sid); err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to clear cart"})
	}
	return c.JSON(http.StatusOK, viewOf(sid, cart.Cart{Items: []cart.Item{}}))
}
