// Package driverrepo persists driver aggregates with GORM and serves the
// geospatial nearest-driver search used by auto-assignment.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the database row for a driver aggregate. Latitude and
// longitude stay NULL until the driver's first position report.
type DriverDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Status         string    `gorm:"type:varchar(32);index;not null"`
	DutyStatus     string    `gorm:"type:varchar(32);not null"`
	Latitude       *float64
	Longitude      *float64
	OrdersReceived int
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:             aggregate.ID().Bytes(),
		Name:           aggregate.Name(),
		Status:         aggregate.Status().String(),
		DutyStatus:     aggregate.DutyStatus().String(),
		OrdersReceived: aggregate.OrdersReceived(),
		Version:        aggregate.Version(),
	}

	if location := aggregate.Location(); location != nil {
		lat := location.Latitude()
		lng := location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lng
	}

	return dto
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	dutyStatus, err := driver.DutyStatusFromString(dto.DutyStatus)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return driver.RestoreDriver(id, dto.Name, status, dutyStatus, location, dto.OrdersReceived, dto.Version)
}
