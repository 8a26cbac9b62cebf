// Package orderrepo persists order aggregates with GORM. It maps the
// aggregate to a flat row and enforces optimistic locking on updates via
// the version column.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. UpdatedAt is
// maintained by GORM on every write; the offer-expiry sweep reads it to
// find offers that have gone stale.
type OrderDTO struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	DriverID             *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup               WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff              WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Customer             PartyDTO    `gorm:"embedded;embeddedPrefix:customer_"`
	Restaurant           PartyDTO    `gorm:"embedded;embeddedPrefix:restaurant_"`
	Price                float64
	Status               string `gorm:"type:varchar(32);index"`
	DistanceKm           float64
	DurationMin          float64
	Fee                  float64
	EstimatedPickupTime  *time.Time
	EstimatedDropoffTime *time.Time
	ActualDurationMin    *float64
	CreatedAt            time.Time
	AssignedAt           *time.Time
	PickedUpAt           *time.Time
	DeliveredAt          *time.Time
	UpdatedAt            time.Time `gorm:"index"`
	Version              int
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// WaypointDTO is an embedded coordinate pair with its street address.
type WaypointDTO struct {
	Latitude  float64
	Longitude float64
	Address   string
}

// PartyDTO is an embedded contact.
type PartyDTO struct {
	Name  string
	Phone string
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:       aggregate.ID().Bytes(),
		DriverID: driverID,
		Pickup: WaypointDTO{
			Latitude:  aggregate.Pickup().Point().Latitude(),
			Longitude: aggregate.Pickup().Point().Longitude(),
			Address:   aggregate.Pickup().Address(),
		},
		Dropoff: WaypointDTO{
			Latitude:  aggregate.Dropoff().Point().Latitude(),
			Longitude: aggregate.Dropoff().Point().Longitude(),
			Address:   aggregate.Dropoff().Address(),
		},
		Customer: PartyDTO{
			Name:  aggregate.Customer().Name(),
			Phone: aggregate.Customer().Phone(),
		},
		Restaurant: PartyDTO{
			Name:  aggregate.Restaurant().Name(),
			Phone: aggregate.Restaurant().Phone(),
		},
		Price:                aggregate.Price(),
		Status:               aggregate.Status().String(),
		DistanceKm:           aggregate.Estimate().DistanceKm(),
		DurationMin:          aggregate.Estimate().DurationMin(),
		Fee:                  aggregate.Estimate().Fee(),
		EstimatedPickupTime:  aggregate.EstimatedPickupTime(),
		EstimatedDropoffTime: aggregate.EstimatedDropoffTime(),
		ActualDurationMin:    aggregate.ActualDurationMin(),
		CreatedAt:            aggregate.CreatedAt(),
		AssignedAt:           aggregate.AssignedAt(),
		PickedUpAt:           aggregate.PickedUpAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		Version:              aggregate.Version(),
	}
}

func toWaypoint(dto WaypointDTO) (order.Waypoint, error) {
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return order.Waypoint{}, err
	}
	return order.NewWaypoint(point, dto.Address)
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := toWaypoint(dto.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := toWaypoint(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	customer, err := order.NewParty(dto.Customer.Name, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}
	restaurant, err := order.NewParty(dto.Restaurant.Name, dto.Restaurant.Phone)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	estimate, err := order.NewEstimate(dto.DistanceKm, dto.DurationMin, dto.Fee)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		pickup, dropoff,
		customer, restaurant,
		dto.Price,
		status,
		driverID,
		estimate,
		dto.EstimatedPickupTime, dto.EstimatedDropoffTime,
		dto.ActualDurationMin,
		dto.CreatedAt,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
		dto.Version,
	)
}
