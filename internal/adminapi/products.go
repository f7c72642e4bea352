package adminapi

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/catalog"
)

// registerProductRoutes registers product CRUD endpoints
func (api *API) registerProductRoutes() {
	api.ws.ApiGET("/products", api.listProducts)
	api.ws.ApiGET("/products/:id", api.getProduct)
	api.ws.ApiPOST("/products", api.createProduct)
	api.ws.ApiPUT("/products/:id", api.updateProduct)
	api.ws.ApiDELETE("/products/:id", api.deleteProduct)
}

func (api *API) listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	q := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))
	category := strings.TrimSpace(c.QueryParam("category"))

	rows, err := api.appctx.Catalog().List(c.Request().Context(), category)
	if err != nil {
		return failFor(c, err, "products")
	}
	if q != "" {
		filtered := rows[:0]
		for _, p := range rows {
			if strings.Contains(strings.ToLower(p.Name), q) {
				filtered = append(filtered, p)
			}
		}
		rows = filtered
	}

	// whitelist sort fields; listing is in-memory because the catalog is
	// small and the filter already ran
	sortField := strings.TrimSpace(c.QueryParam("sort"))
	desc := !strings.EqualFold(c.QueryParam("order"), "ASC")
	sort.SliceStable(rows, func(i, j int) bool {
		var less bool
		switch sortField {
		case "name":
			less = rows[i].Name < rows[j].Name
		case "price":
			less = rows[i].Price < rows[j].Price
		default:
			less = rows[i].ID < rows[j].ID
		}
		if desc {
			return !less
		}
		return less
	})

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

func (api *API) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := api.appctx.Catalog().Get(c.Request().Context(), id)
	if err != nil {
		return failFor(c, err, "product")
	}
	return ok(c, p)
}

func (api *API) createProduct(c echo.Context) error {
	var fields catalog.ProductFields
	if err := c.Bind(&fields); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := api.appctx.Catalog().Create(c.Request().Context(), fields)
	if err != nil {
		return failFor(c, err, "product")
	}
	return created(c, p)
}

func (api *API) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var fields catalog.ProductFields
	if err := c.Bind(&fields); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := api.appctx.Catalog().Update(c.Request().Context(), id, fields)
	if err != nil {
		return failFor(c, err, "product")
	}
	return ok(c, p)
}

// deleteProduct removes a product by id. A missing id is a 404, not a
// silent success.
func (api *API) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := api.appctx.Catalog().Delete(c.Request().Context(), id); err != nil {
		return failFor(c, err, "product")
	}
	return ok(c, map[string]interface{}{"id": id, "message": "Product deleted successfully"})
}
