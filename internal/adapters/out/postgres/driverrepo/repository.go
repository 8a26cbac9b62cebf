package driverrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements ports.DriverRepository using GORM.
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing driver under the optimistic version check.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&DriverDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("driver")
	}

	return nil
}

// Get retrieves a driver by ID.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DriverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindNearby returns drivers with a known position within radiusKm of the
// origin, closest first. The great-circle distance is computed in SQL so
// filtering and ordering happen before rows leave the database.
func (r *GormDriverRepository) FindNearby(
	ctx context.Context,
	origin kernel.GeoPoint,
	radiusKm float64,
	status driver.Status,
	limit int,
) ([]ports.NearbyDriver, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	type nearbyRow struct {
		DriverDTO
		DistanceKm float64
	}

	var rows []nearbyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT
				drivers.*,
				6371 * acos(least(1.0,
					cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?))
					+ sin(radians(?)) * sin(radians(latitude))
				)) AS distance_km
			FROM drivers
			WHERE latitude IS NOT NULL
			  AND longitude IS NOT NULL
			  AND status = ?
		) candidates
		WHERE distance_km <= ?
		ORDER BY distance_km
		LIMIT ?
	`, origin.Latitude(), origin.Longitude(), origin.Latitude(), status.String(), radiusKm, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	nearby := make([]ports.NearbyDriver, 0, len(rows))
	for _, row := range rows {
		d, rowErr := toDomain(row.DriverDTO)
		if rowErr != nil {
			return nil, rowErr
		}
		nearby = append(nearby, ports.NearbyDriver{Driver: d, DistanceKm: row.DistanceKm})
	}

	return nearby, nil
}
