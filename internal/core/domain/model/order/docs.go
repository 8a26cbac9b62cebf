// Package order contains the Order aggregate and its lifecycle state
// machine.
//
// An order moves pending → offered → assigned → picked_up → delivered,
// with reject/expiry returning an offered order to pending and cancelled
// as the terminal escape from any pre-delivery state. Transitions are
// guarded methods on the aggregate; the Status type encodes the closed set
// of states and the legal moves between them.
//
// Waypoint, Party, and Estimate are immutable value objects carried by the
// aggregate. The estimate is computed once at creation and never changes.
package order
