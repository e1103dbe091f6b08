// Package booking provides the Booking aggregate root: the record of a
// rider's exclusive claim on one order, together with the PaymentHold that
// escrows the rider's earnings until delivery is confirmed.
//
// The package includes:
//   - Booking: the aggregate root owning the claim lifecycle and timestamps
//   - Status: a state machine enforcing booked -> in_transit -> delivered
//   - PaymentHold: the escrow record, held -> released
//
// Key business rules:
//   - At most one booking exists per order; the rider assignment is immutable
//   - Pickup must be confirmed before delivery (strict ordering)
//   - The payment hold is released exactly when the booking is delivered,
//     inside the same aggregate mutation, so the two can never diverge
//   - Earnings are a fixed basis-point cut of the order price, computed in
//     integer minor units
//
// Only the Booking aggregate mutates its PaymentHold; no other component
// writes hold state directly.
package booking
