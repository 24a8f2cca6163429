package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List available products
	// (GET /menu)
	GetMenu(ctx echo.Context) error
	// Place an order
	// (POST /orders)
	PlaceOrder(ctx echo.Context) error
	// Order status with items, queue position and QR payload
	// (GET /orders/{token})
	GetOrder(ctx echo.Context, token Token) error
	// 1-based place in the serving order, 0 when not queued
	// (GET /orders/{token}/position)
	GetOrderPosition(ctx echo.Context, token Token) error
	// Move a queued order to in preparation
	// (POST /orders/{token}/prepare)
	PrepareOrder(ctx echo.Context, token Token) error
	// Mark an order ready and notify the customer
	// (POST /orders/{token}/ready)
	MarkOrderReady(ctx echo.Context, token Token) error
	// Orders of one queue view
	// (GET /queue)
	GetQueue(ctx echo.Context, params GetQueueParams) error
	// Queued, in preparation and ready orders from one snapshot
	// (GET /queue/board)
	GetQueueBoard(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// GetMenu converts echo context to params.
func (w *ServerInterfaceWrapper) GetMenu(ctx echo.Context) error {
	return w.Handler.GetMenu(ctx)
}

// PlaceOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PlaceOrder(ctx echo.Context) error {
	return w.Handler.PlaceOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	token, err := bindToken(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, token)
}

// GetOrderPosition converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderPosition(ctx echo.Context) error {
	token, err := bindToken(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderPosition(ctx, token)
}

// PrepareOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PrepareOrder(ctx echo.Context) error {
	token, err := bindToken(ctx)
	if err != nil {
		return err
	}
	return w.Handler.PrepareOrder(ctx, token)
}

// MarkOrderReady converts echo context to params.
func (w *ServerInterfaceWrapper) MarkOrderReady(ctx echo.Context) error {
	token, err := bindToken(ctx)
	if err != nil {
		return err
	}
	return w.Handler.MarkOrderReady(ctx, token)
}

// GetQueue converts echo context to params.
func (w *ServerInterfaceWrapper) GetQueue(ctx echo.Context) error {
	var params GetQueueParams

	err := runtime.BindQueryParameter("form", true, false, "view", ctx.QueryParams(), &params.View)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter view: %s", err))
	}

	return w.Handler.GetQueue(ctx, params)
}

// GetQueueBoard converts echo context to params.
func (w *ServerInterfaceWrapper) GetQueueBoard(ctx echo.Context) error {
	return w.Handler.GetQueueBoard(ctx)
}

func bindToken(ctx echo.Context) (Token, error) {
	var token Token
	err := runtime.BindStyledParameterWithOptions("simple", "token", ctx.Param("token"), &token,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter token: %s", err))
	}
	return token, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/menu", wrapper.GetMenu)
	router.POST(baseURL+"/orders", wrapper.PlaceOrder)
	router.GET(baseURL+"/orders/:token", wrapper.GetOrder)
	router.GET(baseURL+"/orders/:token/position", wrapper.GetOrderPosition)
	router.POST(baseURL+"/orders/:token/prepare", wrapper.PrepareOrder)
	router.POST(baseURL+"/orders/:token/ready", wrapper.MarkOrderReady)
	router.GET(baseURL+"/queue", wrapper.GetQueue)
	router.GET(baseURL+"/queue/board", wrapper.GetQueueBoard)
}
