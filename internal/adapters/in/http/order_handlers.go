package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// WaypointRequest carries one endpoint of a delivery leg.
type WaypointRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// PartyRequest identifies a customer or restaurant contact.
type PartyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Pickup     WaypointRequest `json:"pickup"`
	Dropoff    WaypointRequest `json:"dropoff"`
	Customer   PartyRequest    `json:"customer"`
	Restaurant PartyRequest    `json:"restaurant"`
	Price      float64         `json:"price"`
}

// CreateOrderResponse returns the server-generated order id.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// AssignOrderRequest is the body of the manual assign endpoint. The ETA
// overrides are optional RFC 3339 timestamps.
type AssignOrderRequest struct {
	DriverID             string     `json:"driver_id"`
	EstimatedPickupTime  *time.Time `json:"estimated_pickup_time,omitempty"`
	EstimatedDropoffTime *time.Time `json:"estimated_dropoff_time,omitempty"`
}

// DriverActionRequest identifies the driver acting on an offer.
type DriverActionRequest struct {
	DriverID string `json:"driver_id"`
}

// OrderResponse is one order in the listing read model.
type OrderResponse struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	PickupAddress  string    `json:"pickup_address"`
	DropoffAddress string    `json:"dropoff_address"`
	Price          float64   `json:"price"`
	DriverID       *string   `json:"driver_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func waypointFromRequest(req WaypointRequest) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(point, req.Address)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickup, err := waypointFromRequest(req.Pickup)
	if err != nil {
		return respondError(ctx, err)
	}
	dropoff, err := waypointFromRequest(req.Dropoff)
	if err != nil {
		return respondError(ctx, err)
	}

	customer, err := order.NewParty(req.Customer.Name, req.Customer.Phone)
	if err != nil {
		return respondError(ctx, err)
	}
	restaurant, err := order.NewParty(req.Restaurant.Name, req.Restaurant.Phone)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, pickup, dropoff, customer, restaurant, req.Price)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// AssignOrder handles POST /api/v1/orders/:order_id/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, driverID, req.EstimatedPickupTime, req.EstimatedDropoffTime)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// AutoAssignOrder handles POST /api/v1/orders/:order_id/auto-assign.
func (s *Server) AutoAssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAutoAssignOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.autoAssignOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// AcceptOrder handles POST /api/v1/orders/:order_id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req DriverActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// RejectOrder handles POST /api/v1/orders/:order_id/reject.
func (s *Server) RejectOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req DriverActionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.rejectOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// PickupOrder handles POST /api/v1/orders/:order_id/pickup.
func (s *Server) PickupOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPickupOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.pickupOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// DeliverOrder handles POST /api/v1/orders/:order_id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeliverOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:order_id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("order_id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetOrders handles GET /api/v1/orders with optional status and driver_id
// filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter")
		}
		statusFilter = &status
	}

	var driverFilter *kernel.UUID
	if raw := ctx.QueryParam("driver_id"); raw != "" {
		driverID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid driver id filter")
		}
		driverFilter = &driverID
	}

	query, err := queries.NewGetOrdersQuery(statusFilter, driverFilter)
	if err != nil {
		return respondError(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		item := OrderResponse{
			ID:             o.ID.String(),
			Status:         o.Status,
			PickupAddress:  o.PickupAddress,
			DropoffAddress: o.DropoffAddress,
			Price:          o.Price,
			CreatedAt:      o.CreatedAt,
		}
		if o.DriverID != nil {
			id := o.DriverID.String()
			item.DriverID = &id
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}
