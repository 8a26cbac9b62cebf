// Package services contains stateless domain services.
//
// EstimateCalculator derives the immutable creation-time estimate for an
// order and projects the pickup/dropoff times written into an offer. It
// depends only on the kernel and order value objects.
package services
