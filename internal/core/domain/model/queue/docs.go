// Package queue provides the rider queue Entry aggregate: the bookable
// projection of an order between payment confirmation and rider assignment.
//
// An Entry mirrors the order details riders need to decide on a claim (meal,
// landmark, price) and carries a two-state lifecycle:
//
//	PendingBooking -> Booked
//
// The transition to Booked happens exactly once, atomically with the creation
// of the winning rider's Booking.
package queue
