// Package errs provides the standardized error taxonomy for the dispatch
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers both generic validation failures and the dispatch
// domain's own failure classes:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     input validation
//   - ObjectNotFoundError: unknown order or driver identifiers
//   - VersionIsInvalidError: optimistic-lock conflicts on concurrent writes
//   - InvalidStateTransitionError: lifecycle guard violations, naming the
//     current and requested status
//   - CapacityExceededError: a driver at the active-order limit
//   - ForbiddenError: a driver acting on an order not offered to them
//
// Each error type follows the same pattern: a sentinel error variable for
// errors.Is classification, a struct carrying the details, constructor
// functions (with and without cause where a cause makes sense), an Error()
// method, and an Unwrap() method returning the sentinel.
package errs
