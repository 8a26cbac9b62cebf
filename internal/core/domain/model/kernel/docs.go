// Package kernel provides core domain primitives for the dispatch system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated geographic coordinate with great-circle distance
//
// These primitives enforce domain invariants at construction, ensuring that
// domain objects are always in a valid state. They are immutable and
// thread-safe, making them suitable for concurrent use.
package kernel
