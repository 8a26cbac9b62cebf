package commands

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/outbox"
)

// orderEventPayload is the JSON body of every order lifecycle event.
type orderEventPayload struct {
	OrderID  string  `json:"order_id"`
	Status   string  `json:"status"`
	DriverID *string `json:"driver_id,omitempty"`
}

// driverLocationPayload is the JSON body of driver.location_updated events.
type driverLocationPayload struct {
	DriverID  string  `json:"driver_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	SpeedKmh  float64 `json:"speed_kmh"`
	Heading   float64 `json:"heading"`
	Status    string  `json:"status"`
}

func newOrderEvent(name string, o *order.Order, now time.Time) (*outbox.Event, error) {
	payload := orderEventPayload{
		OrderID: o.ID().String(),
		Status:  o.Status().String(),
	}
	if driverID := o.DriverID(); driverID != nil {
		s := driverID.String()
		payload.DriverID = &s
	}

	return outbox.NewEvent(name, o.ID(), payload, now)
}

func newDriverLocationEvent(d *driver.Driver, speedKmh, heading float64, now time.Time) (*outbox.Event, error) {
	location := d.Location()
	payload := driverLocationPayload{
		DriverID: d.ID().String(),
		SpeedKmh: speedKmh,
		Heading:  heading,
		Status:   d.Status().String(),
	}
	if location != nil {
		payload.Latitude = location.Latitude()
		payload.Longitude = location.Longitude()
	}

	return outbox.NewEvent(outbox.DriverLocationUpdated, d.ID(), payload, now)
}
