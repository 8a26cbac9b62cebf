// Package http exposes the dispatch operations over a REST API.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	assignOrderHandler          commands.AssignOrderCommandHandler
	autoAssignOrderHandler      commands.AutoAssignOrderCommandHandler
	acceptOrderHandler          commands.AcceptOrderCommandHandler
	rejectOrderHandler          commands.RejectOrderCommandHandler
	pickupOrderHandler          commands.PickupOrderCommandHandler
	deliverOrderHandler         commands.DeliverOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	createDriverHandler         commands.CreateDriverCommandHandler
	updateDriverLocationHandler commands.UpdateDriverLocationCommandHandler
	startShiftHandler           commands.StartShiftCommandHandler
	endShiftHandler             commands.EndShiftCommandHandler
	startBreakHandler           commands.StartBreakCommandHandler
	endBreakHandler             commands.EndBreakCommandHandler

	// Query handlers
	getNearbyDriversHandler queries.GetNearbyDriversQueryHandler
	getOrdersHandler        queries.GetOrdersQueryHandler
}

// ServerHandlers bundles the use case handlers the server depends on.
type ServerHandlers struct {
	CreateOrder          commands.CreateOrderCommandHandler
	AssignOrder          commands.AssignOrderCommandHandler
	AutoAssignOrder      commands.AutoAssignOrderCommandHandler
	AcceptOrder          commands.AcceptOrderCommandHandler
	RejectOrder          commands.RejectOrderCommandHandler
	PickupOrder          commands.PickupOrderCommandHandler
	DeliverOrder         commands.DeliverOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	CreateDriver         commands.CreateDriverCommandHandler
	UpdateDriverLocation commands.UpdateDriverLocationCommandHandler
	StartShift           commands.StartShiftCommandHandler
	EndShift             commands.EndShiftCommandHandler
	StartBreak           commands.StartBreakCommandHandler
	EndBreak             commands.EndBreakCommandHandler
	GetNearbyDrivers     queries.GetNearbyDriversQueryHandler
	GetOrders            queries.GetOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createOrderHandler:          handlers.CreateOrder,
		assignOrderHandler:          handlers.AssignOrder,
		autoAssignOrderHandler:      handlers.AutoAssignOrder,
		acceptOrderHandler:          handlers.AcceptOrder,
		rejectOrderHandler:          handlers.RejectOrder,
		pickupOrderHandler:          handlers.PickupOrder,
		deliverOrderHandler:         handlers.DeliverOrder,
		cancelOrderHandler:          handlers.CancelOrder,
		createDriverHandler:         handlers.CreateDriver,
		updateDriverLocationHandler: handlers.UpdateDriverLocation,
		startShiftHandler:           handlers.StartShift,
		endShiftHandler:             handlers.EndShift,
		startBreakHandler:           handlers.StartBreak,
		endBreakHandler:             handlers.EndBreak,
		getNearbyDriversHandler:     handlers.GetNearbyDrivers,
		getOrdersHandler:            handlers.GetOrders,
	}
}

// RegisterRoutes wires all dispatch endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:order_id/assign", s.AssignOrder)
	api.POST("/orders/:order_id/auto-assign", s.AutoAssignOrder)
	api.POST("/orders/:order_id/accept", s.AcceptOrder)
	api.POST("/orders/:order_id/reject", s.RejectOrder)
	api.POST("/orders/:order_id/pickup", s.PickupOrder)
	api.POST("/orders/:order_id/deliver", s.DeliverOrder)
	api.POST("/orders/:order_id/cancel", s.CancelOrder)

	api.POST("/drivers", s.CreateDriver)
	api.GET("/drivers/nearby", s.GetNearbyDrivers)
	api.POST("/drivers/:driver_id/location", s.UpdateDriverLocation)
	api.POST("/drivers/:driver_id/shift/start", s.StartShift)
	api.POST("/drivers/:driver_id/shift/end", s.EndShift)
	api.POST("/drivers/:driver_id/break/start", s.StartBreak)
	api.POST("/drivers/:driver_id/break/end", s.EndBreak)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps application errors onto HTTP status codes.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrCapacityExceeded),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrNoDriversAvailable):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
