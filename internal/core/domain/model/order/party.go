package order

import (
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrPartyIsNotConstructed is returned when validating a Party that was not
// built via NewParty.
var ErrPartyIsNotConstructed = errs.NewValueIsRequiredError(
	"party must be created via NewParty constructor")

// Party identifies one side of an order: the ordering customer or the
// restaurant the order is picked up from. The phone is optional.
type Party struct {
	name  string
	phone string
	guard guard.ConstructorGuard
}

// NewParty creates a Party. The name must be non-blank.
func NewParty(name, phone string) (Party, error) {
	if strings.TrimSpace(name) == "" {
		return Party{}, errs.NewValueIsRequiredError("name")
	}

	return Party{
		name:  name,
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Party was built via NewParty.
func (p Party) Validate() error {
	return p.guard.Validate(ErrPartyIsNotConstructed)
}

// Name returns the party's display name.
func (p Party) Name() string {
	return p.name
}

// Phone returns the contact phone, possibly empty.
func (p Party) Phone() string {
	return p.phone
}
