package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNearbyDriversQueryHandler executes the radius search read model.
// Distance is computed in SQL with the spherical law of cosines so ordering
// and truncation happen in the database.
type GetNearbyDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetNearbyDriversQueryHandler creates a handler for radius search queries.
// Requires a GORM database connection for query execution.
func NewGetNearbyDriversQueryHandler(db *gorm.DB) GetNearbyDriversQueryHandler {
	return GetNearbyDriversQueryHandler{db: db}
}

// Handle executes the query and returns matching drivers ordered by
// ascending distance from the origin. Drivers without a reported location
// never match.
func (h GetNearbyDriversQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyDriversQuery,
) ([]GetNearbyDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers := make([]GetNearbyDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, status, latitude, longitude, distance_km
		FROM (
			SELECT
				id,
				name,
				status,
				latitude,
				longitude,
				6371 * acos(least(1.0,
					cos(radians(?)) * cos(radians(latitude)) *
					cos(radians(longitude) - radians(?)) +
					sin(radians(?)) * sin(radians(latitude)))) AS distance_km
			FROM drivers
			WHERE latitude IS NOT NULL
			  AND longitude IS NOT NULL
			  AND status = ?
		) candidates
		WHERE distance_km <= ?
		ORDER BY distance_km
		LIMIT ?
	`,
		query.Origin().Latitude(),
		query.Origin().Longitude(),
		query.Origin().Latitude(),
		query.Status().String(),
		query.RadiusKm(),
		query.Limit(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetNearbyDriversQueryResponse
		var id uuid.UUID
		var latitude, longitude float64

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Status,
			&latitude,
			&longitude,
			&response.DistanceKm,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = driverID

		location, locErr := kernel.NewGeoPoint(latitude, longitude)
		if locErr != nil {
			return nil, locErr
		}
		response.Location = location

		drivers = append(drivers, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
