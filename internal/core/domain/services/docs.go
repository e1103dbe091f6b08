// Package services contains domain services: stateless or in-process
// stateful logic that spans aggregates and does not belong to any single
// aggregate root.
//
// The package currently holds the OrderLockRegistry, the in-memory mutual
// exclusion primitive that serializes concurrent booking attempts on the
// same order so exactly one rider wins the claim.
package services
