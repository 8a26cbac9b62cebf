package http

import (
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateDriverRequest is the body of POST /api/v1/drivers.
type CreateDriverRequest struct {
	Name string `json:"name"`
}

// CreateDriverResponse returns the server-generated driver id.
type CreateDriverResponse struct {
	ID string `json:"id"`
}

// UpdateLocationRequest is the body of the position report endpoint.
// Speed is in km/h, heading in degrees clockwise from north.
type UpdateLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SpeedKmh  float64 `json:"speed_kmh"`
	Heading   float64 `json:"heading"`
}

// NearbyDriverResponse is one driver in the radius search read model.
type NearbyDriverResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(ctx echo.Context) error {
	var req CreateDriverRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverCommand(driverID, req.Name)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.createDriverHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateDriverResponse{ID: driverID.String()})
}

// UpdateDriverLocation handles POST /api/v1/drivers/:driver_id/location.
func (s *Server) UpdateDriverLocation(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	var req UpdateLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	point, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateDriverLocationCommand(driverID, point, req.SpeedKmh, req.Heading)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.updateDriverLocationHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// StartShift handles POST /api/v1/drivers/:driver_id/shift/start.
func (s *Server) StartShift(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewStartShiftCommand(driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.startShiftHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// EndShift handles POST /api/v1/drivers/:driver_id/shift/end.
func (s *Server) EndShift(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewEndShiftCommand(driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.endShiftHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// StartBreak handles POST /api/v1/drivers/:driver_id/break/start.
func (s *Server) StartBreak(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewStartBreakCommand(driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.startBreakHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// EndBreak handles POST /api/v1/drivers/:driver_id/break/end.
func (s *Server) EndBreak(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("driver_id"))
	if err != nil {
		return badRequest(ctx, "Invalid driver id")
	}

	cmd, err := commands.NewEndBreakCommand(driverID)
	if err != nil {
		return respondError(ctx, err)
	}

	if handleErr := s.endBreakHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return respondError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetNearbyDrivers handles GET /api/v1/drivers/nearby. Requires lat, lng
// and radius_km query parameters; status defaults to available and limit
// to 10.
func (s *Server) GetNearbyDrivers(ctx echo.Context) error {
	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lat parameter")
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid lng parameter")
	}
	radiusKm, err := strconv.ParseFloat(ctx.QueryParam("radius_km"), 64)
	if err != nil {
		return badRequest(ctx, "Invalid radius_km parameter")
	}

	status := driver.Available
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err = driver.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status parameter")
		}
	}

	limit := 10
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit parameter")
		}
	}

	origin, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetNearbyDriversQuery(origin, radiusKm, status, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	drivers, err := s.getNearbyDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]NearbyDriverResponse, len(drivers))
	for i, d := range drivers {
		response[i] = NearbyDriverResponse{
			ID:         d.ID.String(),
			Name:       d.Name,
			Status:     d.Status,
			Latitude:   d.Location.Latitude(),
			Longitude:  d.Location.Longitude(),
			DistanceKm: d.DistanceKm,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
