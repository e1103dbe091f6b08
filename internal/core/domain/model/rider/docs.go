// Package rider provides the Rider aggregate root: a registered delivery
// rider identified by phone number, carrying running delivery and earnings
// totals.
//
// Riders are registered by an operator before they can claim orders. The
// totals are updated exactly once per confirmed delivery, in the same
// transaction that releases the rider's payment hold.
package rider
