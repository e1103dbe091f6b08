// Package kernel contains shared value objects used across the domain model:
// prefixed identifiers for orders and bookings, WhatsApp phone identities, and
// an integer minor-unit Money type.
//
// All value objects are immutable and must be created through their
// constructor functions. Zero values fail validation.
package kernel
