package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrExpireOffersCommandIsNotConstructed = errors.New(
	"ExpireOffersCommand must be created via NewExpireOffersCommand constructor",
)

// ExpireOffersCommand returns stale offers to the pending pool. Offers
// older than the TTL have effectively been ignored by the driver.
type ExpireOffersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration

	guard guard.ConstructorGuard
}

// NewExpireOffersCommand creates a command to expire offers older than ttl.
func NewExpireOffersCommand(ttl time.Duration) (ExpireOffersCommand, error) {
	cmd := ExpireOffersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setTTL(ttl); err != nil {
		return ExpireOffersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpireOffersCommand) Validate() error {
	return c.guard.Validate(ErrExpireOffersCommandIsNotConstructed)
}

// TTL returns how long an offer may stay unanswered.
func (c ExpireOffersCommand) TTL() time.Duration {
	return c.ttl
}

func (c *ExpireOffersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsInvalidError("ttl")
	}
	c.ttl = ttl
	return nil
}
