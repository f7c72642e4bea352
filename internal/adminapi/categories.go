package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/craftstore/internal/domain"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Featured    bool   `json:"featured"`
}

func (api *API) registerCategoryRoutes() {
	api.ws.ApiGET("/categories", api.listCategories)
	api.ws.ApiPOST("/categories", api.createCategory)
	api.ws.ApiPUT("/categories/:id", api.updateCategory)
	api.ws.ApiDELETE("/categories/:id", api.deleteCategory)
}

func (api *API) listCategories(c echo.Context) error {
	rows, err := api.appctx.Catalog().ListCategories(c.Request().Context())
	if err != nil {
		return failFor(c, err, "categories")
	}
	return ok(c, rows)
}

func (api *API) createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	cat := &domain.Category{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Image:       strings.TrimSpace(payload.Image),
		Featured:    payload.Featured,
	}
	if err := api.appctx.Catalog().CreateCategory(c.Request().Context(), cat); err != nil {
		return failFor(c, err, "category")
	}
	return created(c, cat)
}

func (api *API) updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	cat := &domain.Category{
		ID:          id,
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		Image:       strings.TrimSpace(payload.Image),
		Featured:    payload.Featured,
	}
	if err := api.appctx.Catalog().UpdateCategory(c.Request().Context(), cat); err != nil {
		return failFor(c, err, "category")
	}
	return ok(c, cat)
}

func (api *API) deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	if err := api.appctx.Catalog().DeleteCategory(c.Request().Context(), id); err != nil {
		return failFor(c, err, "category")
	}
	return ok(c, map[string]interface{}{"id": id})
}
