package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testWaypoint(t *testing.T, lat, lng float64, address string) order.Waypoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	wp, err := order.NewWaypoint(point, address)
	require.NoError(t, err)
	return wp
}

func testParty(t *testing.T, name, phone string) order.Party {
	t.Helper()
	p, err := order.NewParty(name, phone)
	require.NoError(t, err)
	return p
}

func testEstimate(t *testing.T) order.Estimate {
	t.Helper()
	est, err := order.NewEstimate(7.05, 9.4, 15.46)
	require.NoError(t, err)
	return est
}

func newPendingTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		testWaypoint(t, 40.7128, -74.0060, "1 Pickup Plaza"),
		testWaypoint(t, 40.7589, -73.9851, "200 Dropoff Ave"),
		testParty(t, "Alice Murphy", "+15550100"),
		testParty(t, "Pizza Palace", "+15550200"),
		24.99,
		testEstimate(t),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func newOfferedTestOrder(t *testing.T, driverID kernel.UUID) *order.Order {
	t.Helper()
	o := newPendingTestOrder(t)
	now := time.Now()
	require.NoError(t, o.Offer(driverID, now.Add(10*time.Minute), now.Add(25*time.Minute)))
	return o
}

func newAvailableTestDriver(t *testing.T, id kernel.UUID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(id, "Riley Chen")
	require.NoError(t, err)
	require.NoError(t, d.StartShift())
	point, err := kernel.NewGeoPoint(40.71, -74.0)
	require.NoError(t, err)
	require.NoError(t, d.ReportLocation(point))
	return d
}
