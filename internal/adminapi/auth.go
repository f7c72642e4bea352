package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/talkincode/craftstore/internal/domain"
	"github.com/talkincode/craftstore/internal/store"
	"github.com/talkincode/craftstore/pkg/common"
)

type authClaims struct {
	Username string `json:"username"`
	Level    string `json:"level"`
	jwt.RegisteredClaims
}

type loginPayload struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Email    string `json:"email" validate:"required,email"`
}

func (api *API) registerAuthRoutes() {
	api.ws.ApiPOST("/auth/login", api.login)
	api.ws.ApiPOST("/auth/register", api.registerAdmin)
}

func (api *API) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
	}

	admins := api.appctx.Store().Admins()
	opr, err := admins.GetByUsername(c.Request().Context(), strings.TrimSpace(payload.Username))
	if err != nil {
		if store.IsNotFound(err) {
			return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operator", err.Error())
	}
	if opr.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account disabled", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)) != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
	}

	claims := authClaims{
		Username: opr.Username,
		Level:    opr.Level,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   opr.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(api.appctx.Config().Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to sign token", err.Error())
	}

	opr.LastLogin = time.Now()
	if err := admins.Update(c.Request().Context(), opr); err != nil {
		zap.L().Warn("adminapi: failed to record last login", zap.Error(err))
	}

	zap.L().Info("adminapi: operator login", zap.String("username", opr.Username))
	return ok(c, map[string]interface{}{
		"token":    token,
		"username": opr.Username,
		"level":    opr.Level,
	})
}

// registerAdmin creates an additional operator account. The route sits
// behind the JWT guard, so only an authenticated admin can add admins; the
// first account is seeded at boot.
func (api *API) registerAdmin(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "All fields are required", err.Error())
	}

	admins := api.appctx.Store().Admins()
	username := strings.TrimSpace(payload.Username)
	if _, err := admins.GetByUsername(c.Request().Context(), username); err == nil {
		return fail(c, http.StatusBadRequest, "USERNAME_TAKEN", "Username already exists", nil)
	} else if !store.IsNotFound(err) {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query operator", err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "HASH_ERROR", "Failed to hash password", err.Error())
	}
	opr := &domain.SysOpr{
		ID:       common.UUIDint64(),
		Username: username,
		Password: string(hashed),
		Email:    strings.TrimSpace(payload.Email),
		Level:    "opr",
		Status:   common.ENABLED,
	}
	if err := admins.Create(c.Request().Context(), opr); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create operator", err.Error())
	}
	zap.L().Info("adminapi: operator registered", zap.String("username", username))
	return created(c, map[string]interface{}{"username": username})
}
