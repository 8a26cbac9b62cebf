package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery lists orders, optionally narrowed to one status and/or one
// driver. With no filters it returns every order, newest first.
//
//nolint:recvcheck //using for validation
type GetOrdersQuery struct {
	guard guard.ConstructorGuard

	status   *order.Status
	driverID *kernel.UUID
}

// NewGetOrdersQuery creates an order listing query. Either filter may be
// nil, which leaves that dimension unconstrained.
func NewGetOrdersQuery(status *order.Status, driverID *kernel.UUID) (GetOrdersQuery, error) {
	var query GetOrdersQuery

	err := errors.Join(
		query.setStatus(status),
		query.setDriverID(driverID),
	)
	if err != nil {
		return GetOrdersQuery{}, err
	}

	query.guard = guard.NewConstructorGuard()
	return query, nil
}

// Status returns the status filter, or nil when all statuses match.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// DriverID returns the driver filter, or nil when all drivers match.
func (q GetOrdersQuery) DriverID() *kernel.UUID {
	return q.driverID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q *GetOrdersQuery) setStatus(status *order.Status) error {
	if status == nil {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}

	q.status = status
	return nil
}

func (q *GetOrdersQuery) setDriverID(driverID *kernel.UUID) error {
	if driverID == nil {
		return nil
	}
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetOrdersQueryResponse represents one order in the listing read model.
// DriverID is nil for orders no driver currently holds.
type GetOrdersQueryResponse struct {
	ID             kernel.UUID
	Status         string
	PickupAddress  string
	DropoffAddress string
	Price          float64
	DriverID       *kernel.UUID
	CreatedAt      time.Time
}
