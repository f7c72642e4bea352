// Package webserver owns the echo instance: middleware, CORS, JWT guard for
// the admin surface, static assets and route registration helpers.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/talkincode/craftstore/internal/app"
	"github.com/talkincode/craftstore/pkg/metrics"
)

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

type WebServer struct {
	appctx app.AppContext
	root   *echo.Echo
	public *echo.Group
	admin  *echo.Group
}

func New(appctx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	// Every mutating endpoint echoes permissive CORS headers and answers
	// preflight with 204.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			metrics.Incr(metrics.MetricHTTPRequests)
			return next(c)
		}
	})

	cfg := appctx.Config()
	if cfg.Web.AssetsDir != "" {
		e.Static("/assets", cfg.Web.AssetsDir)
	}

	ws := &WebServer{appctx: appctx, root: e}
	ws.public = e.Group("/api")
	ws.admin = e.Group("/admin/api", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.Secret),
		Skipper: func(c echo.Context) bool {
			// login stays reachable without a token
			return c.Path() == "/admin/api/auth/login"
		},
	}))
	return ws
}

// AppContext returns the application context for handler packages.
func (ws *WebServer) AppContext() app.AppContext { return ws.appctx }

func (ws *WebServer) PubGET(path string, h echo.HandlerFunc)    { ws.public.GET(path, h) }
func (ws *WebServer) PubPOST(path string, h echo.HandlerFunc)   { ws.public.POST(path, h) }
func (ws *WebServer) PubPUT(path string, h echo.HandlerFunc)    { ws.public.PUT(path, h) }
func (ws *WebServer) PubDELETE(path string, h echo.HandlerFunc) { ws.public.DELETE(path, h) }

func (ws *WebServer) ApiGET(path string, h echo.HandlerFunc)    { ws.admin.GET(path, h) }
func (ws *WebServer) ApiPOST(path string, h echo.HandlerFunc)   { ws.admin.POST(path, h) }
func (ws *WebServer) ApiPUT(path string, h echo.HandlerFunc)    { ws.admin.PUT(path, h) }
func (ws *WebServer) ApiDELETE(path string, h echo.HandlerFunc) { ws.admin.DELETE(path, h) }

// Echo exposes the underlying instance for tests.
func (ws *WebServer) Echo() *echo.Echo { return ws.root }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (ws *WebServer) Start(ctx context.Context) error {
	cfg := ws.appctx.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)

	errch := make(chan error, 1)
	go func() {
		zap.L().Info("webserver listening", zap.String("addr", addr))
		errch <- ws.root.Start(addr)
	}()

	select {
	case err := <-errch:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return ws.root.Shutdown(shutdownCtx)
	}
}
