package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders straight from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns matching orders, newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, status, pickup_address, dropoff_address, price, driver_id, created_at
		FROM orders
		WHERE 1=1`
	args := make([]any, 0, 2)

	if query.Status() != nil {
		sql += " AND status = ?"
		args = append(args, query.Status().String())
	}
	if query.DriverID() != nil {
		sql += " AND driver_id = ?"
		args = append(args, query.DriverID().Bytes())
	}
	sql += " ORDER BY created_at DESC"

	orders := make([]GetOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetOrdersQueryResponse
		var id uuid.UUID
		var driverID *uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&response.Status,
			&response.PickupAddress,
			&response.DropoffAddress,
			&response.Price,
			&driverID,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		response.CreatedAt = createdAt

		if driverID != nil {
			assignee, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return nil, idErr
			}
			response.DriverID = &assignee
		}

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
