package order_test

import (
	"fmt"
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allValidStatuses() []order.Status {
	return []order.Status{
		order.Pending,
		order.Offered,
		order.Assigned,
		order.PickedUp,
		order.Delivered,
		order.Cancelled,
	}
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		for _, status := range allValidStatuses() {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "0 is not a valid order status")
	})

	t.Run("should reject out-of-set status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(7), order.Status(100)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return persisted snake_case names", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Pending, "pending"},
			{order.Offered, "offered"},
			{order.Assigned, "assigned"},
			{order.PickedUp, "picked_up"},
			{order.Delivered, "delivered"},
			{order.Cancelled, "cancelled"},
			{order.Unknown, "unknown"},
			{order.Status(42), "unknown"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		for _, status := range allValidStatuses() {
			restored, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, restored)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "PENDING", "in_transit"} {
			_, err := order.StatusFromString(s)

			require.Error(t, err, "expected error for %q", s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Delivered.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Offered.IsTerminal())
	assert.False(t, order.Assigned.IsTerminal())
	assert.False(t, order.PickedUp.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	assert.True(t, order.Assigned.IsActive())
	assert.True(t, order.PickedUp.IsActive())
	assert.False(t, order.Pending.IsActive())
	assert.False(t, order.Offered.IsActive())
	assert.False(t, order.Delivered.IsActive())
	assert.False(t, order.Cancelled.IsActive())
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	t.Run("driver required for offered through delivered", func(t *testing.T) {
		for _, status := range []order.Status{order.Offered, order.Assigned, order.PickedUp, order.Delivered} {
			t.Run(status.String(), func(t *testing.T) {
				assert.NoError(t, status.ValidateCanHaveDriver(true))
				assert.Error(t, status.ValidateCanHaveDriver(false))
			})
		}
	})

	t.Run("driver forbidden for pending and cancelled", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Cancelled} {
			t.Run(status.String(), func(t *testing.T) {
				assert.NoError(t, status.ValidateCanHaveDriver(false))
				assert.Error(t, status.ValidateCanHaveDriver(true))
			})
		}
	})
}

func TestStatus_Transitions(t *testing.T) {
	type transition struct {
		name  string
		apply func(order.Status) (order.Status, error)
		from  []order.Status
		to    order.Status
	}

	transitions := []transition{
		{
			name:  "Offer",
			apply: order.Status.Offer,
			from:  []order.Status{order.Pending},
			to:    order.Offered,
		},
		{
			name:  "Assign",
			apply: order.Status.Assign,
			from:  []order.Status{order.Pending, order.Offered, order.Assigned},
			to:    order.Assigned,
		},
		{
			name:  "Accept",
			apply: order.Status.Accept,
			from:  []order.Status{order.Offered},
			to:    order.Assigned,
		},
		{
			name:  "Reject",
			apply: order.Status.Reject,
			from:  []order.Status{order.Offered},
			to:    order.Pending,
		},
		{
			name:  "PickUp",
			apply: order.Status.PickUp,
			from:  []order.Status{order.Assigned},
			to:    order.PickedUp,
		},
		{
			name:  "Deliver",
			apply: order.Status.Deliver,
			from:  []order.Status{order.PickedUp},
			to:    order.Delivered,
		},
		{
			name:  "Cancel",
			apply: order.Status.Cancel,
			from:  []order.Status{order.Pending, order.Offered, order.Assigned, order.PickedUp},
			to:    order.Cancelled,
		},
	}

	allowed := func(tr transition, s order.Status) bool {
		for _, from := range tr.from {
			if from == s {
				return true
			}
		}
		return false
	}

	for _, tr := range transitions {
		t.Run(tr.name, func(t *testing.T) {
			for _, from := range allValidStatuses() {
				t.Run(fmt.Sprintf("from %s", from), func(t *testing.T) {
					result, err := tr.apply(from)

					if allowed(tr, from) {
						require.NoError(t, err)
						assert.Equal(t, tr.to, result)
					} else {
						require.Error(t, err)
						assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
						assert.Contains(t, err.Error(), from.String())
						assert.Equal(t, order.Unknown, result)
					}
				})
			}
		})
	}

	t.Run("transition errors name current and requested status", func(t *testing.T) {
		_, err := order.Pending.PickUp()

		require.Error(t, err)
		var transitionErr *errs.InvalidStateTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, "order", transitionErr.Entity)
		assert.Equal(t, "pending", transitionErr.Current)
		assert.Equal(t, "picked_up", transitionErr.Requested)
	})
}
