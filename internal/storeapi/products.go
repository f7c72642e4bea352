package storeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/store"
)

func (api *API) registerProductRoutes() {
	api.ws.PubGET("/products", api.listProducts)
	api.ws.PubGET("/products/:id", api.getProduct)
	api.ws.PubGET("/categories", api.listCategoryNames)
}

func (api *API) listProducts(c echo.Context) error {
	category := strings.TrimSpace(c.QueryParam("category"))
	rows, err := api.appctx.Catalog().List(c.Request().Context(), category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to fetch products"})
	}
	return c.JSON(http.StatusOK, rows)
}

func (api *API) getProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "Invalid product id"})
	}
	p, err := api.appctx.Catalog().Get(c.Request().Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			return c.JSON(http.StatusNotFound, errorBody{Error: "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to fetch product"})
	}
	return c.JSON(http.StatusOK, p)
}

func (api *API) listCategoryNames(c echo.Context) error {
	names, err := api.appctx.Catalog().CategoryNames(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "Failed to fetch categories"})
	}
	return c.JSON(http.StatusOK, names)
}
