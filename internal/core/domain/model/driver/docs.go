// Package driver contains the Driver aggregate: availability status, duty
// status, last reported position, and the capacity rule limiting how many
// active orders one driver may hold.
//
// Shift operations (start/end shift, start/end break) move the driver
// between offline, available, and on_break. Taking an order makes the
// driver busy; releasing the last active order makes them available again.
package driver
