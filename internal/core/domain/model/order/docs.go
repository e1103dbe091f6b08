// Package order provides the Order aggregate root and its status lifecycle.
//
// An order is owned by the buyer who placed it and moves forward through a
// strictly monotonic lifecycle:
//
//	PendingPayment -> PaymentConfirmed -> AssignedToRider -> Delivered
//
// Key business rules:
//   - Orders must have a valid identifier, buyer, meal, positive price, and a
//     delivery location of at least three characters
//   - Status never regresses; each transition is only valid from its
//     immediate predecessor
//   - A rider may be recorded only when the order is assigned or delivered
//   - Orders can only be created through the NewOrder constructor
package order
