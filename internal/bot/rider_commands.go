package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/application/usecases/queries"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/pkg/errs"
)

// OrderBooker claims a pending order for a rider.
type OrderBooker interface {
	Handle(ctx context.Context, cmd commands.AttemptBookingCommand) (*booking.Booking, error)
}

// PickupConfirmer records a rider's pickup confirmation.
type PickupConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmPickupCommand) (*booking.Booking, error)
}

// DeliveryConfirmer records a delivery confirmation and releases the hold.
type DeliveryConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmDeliveryCommand) (*booking.Booking, error)
}

// PendingOrdersReader lists orders riders can claim.
type PendingOrdersReader interface {
	Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
}

// RiderBookingsReader lists one rider's active bookings.
type RiderBookingsReader interface {
	Handle(ctx context.Context, query queries.GetRiderBookingsQuery) ([]queries.GetRiderBookingsQueryResponse, error)
}

// PaymentStatusReader reads one rider's earnings records.
type PaymentStatusReader interface {
	Handle(ctx context.Context, query queries.GetPaymentStatusQuery) (queries.GetPaymentStatusQueryResponse, error)
}

// BookingPaymentReader reads a single booking's payment hold.
type BookingPaymentReader interface {
	Handle(ctx context.Context, query queries.GetBookingPaymentQuery) (queries.PaymentHoldResponse, error)
}

// RiderRouter handles the rider command surface: whitespace-split,
// case-insensitive commands with an id argument where needed. Every outcome
// is rendered as reply text; expected business failures get specific
// messages, anything else a generic apology.
type RiderRouter struct {
	attemptBooking  OrderBooker
	confirmPickup   PickupConfirmer
	confirmDelivery DeliveryConfirmer
	pendingOrders   PendingOrdersReader
	riderBookings   RiderBookingsReader
	paymentStatus   PaymentStatusReader
	bookingPayment  BookingPaymentReader
	logger          *slog.Logger
}

// NewRiderRouter creates the rider command router.
func NewRiderRouter(
	attemptBooking OrderBooker,
	confirmPickup PickupConfirmer,
	confirmDelivery DeliveryConfirmer,
	pendingOrders PendingOrdersReader,
	riderBookings RiderBookingsReader,
	paymentStatus PaymentStatusReader,
	bookingPayment BookingPaymentReader,
	logger *slog.Logger,
) *RiderRouter {
	return &RiderRouter{
		attemptBooking:  attemptBooking,
		confirmPickup:   confirmPickup,
		confirmDelivery: confirmDelivery,
		pendingOrders:   pendingOrders,
		riderBookings:   riderBookings,
		paymentStatus:   paymentStatus,
		bookingPayment:  bookingPayment,
		logger:          logger.With("component", "rider_router"),
	}
}

// HandleCommand processes one rider message and returns the reply text.
func (r *RiderRouter) HandleCommand(ctx context.Context, rider kernel.Phone, text string) string {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(parts) == 0 {
		return riderHelpText()
	}
	action, args := parts[0], parts[1:]

	switch action {
	case "orders":
		return r.listPendingOrders(ctx, rider)
	case "book":
		if len(args) < 1 {
			return "Usage: book ORD-12345"
		}
		return r.bookOrder(ctx, rider, args[0])
	case "pickup":
		if len(args) < 1 {
			return "Usage: pickup BOOK-12345"
		}
		return r.pickup(ctx, rider, args[0])
	case "delivered":
		if len(args) < 1 {
			return "Usage: delivered BOOK-12345"
		}
		return r.delivered(ctx, rider, args[0])
	case "myorders":
		return r.listActiveBookings(ctx, rider)
	case "payment":
		// With a booking id: that booking's hold. Without: earnings summary.
		if len(args) < 1 {
			return r.checkPaymentStatus(ctx, rider)
		}
		return r.checkBookingPayment(ctx, rider, args[0])
	default:
		return riderHelpText()
	}
}

func (r *RiderRouter) listPendingOrders(ctx context.Context, rider kernel.Phone) string {
	orders, err := r.pendingOrders.Handle(ctx, queries.NewGetPendingOrdersQuery())
	if err != nil {
		r.logger.ErrorContext(ctx, "pending orders listing failed",
			"rider", rider.String(), "error", err)
		return "Error fetching orders."
	}
	return pendingOrdersText(orders)
}

func (r *RiderRouter) bookOrder(ctx context.Context, rider kernel.Phone, rawID string) string {
	orderID, err := kernel.OrderIDFromString(rawID)
	if err != nil {
		return "Usage: book ORD-12345"
	}

	cmd, err := commands.NewAttemptBookingCommand(orderID, rider)
	if err != nil {
		return "Usage: book ORD-12345"
	}

	b, err := r.attemptBooking.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrOrderAlreadyBeingBooked):
		return "Another rider is booking this order right now. Try a different one."
	case errors.Is(err, commands.ErrOrderNotAvailable):
		return "Order not available. Reply \"orders\" for the current list."
	case errors.Is(err, commands.ErrRiderNotRegistered):
		return "You are not registered as a rider. Contact the admin to sign up."
	case err != nil:
		r.logger.ErrorContext(ctx, "booking attempt failed",
			"rider", rider.String(), "order_id", orderID.String(), "error", err)
		return errorText()
	}

	return orderBookedText(b)
}

func (r *RiderRouter) pickup(ctx context.Context, rider kernel.Phone, rawID string) string {
	bookingID, err := kernel.BookingIDFromString(rawID)
	if err != nil {
		return "Usage: pickup BOOK-12345"
	}

	cmd, err := commands.NewConfirmPickupCommand(bookingID, rider)
	if err != nil {
		return "Usage: pickup BOOK-12345"
	}

	b, err := r.confirmPickup.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, commands.ErrBookingNotOwned):
		// Not-found and not-yours are indistinguishable on purpose.
		return "Booking not found or not yours."
	case err != nil:
		r.logger.ErrorContext(ctx, "pickup confirmation failed",
			"rider", rider.String(), "booking_id", bookingID.String(), "error", err)
		return errorText()
	}

	return pickupConfirmedText(b)
}

func (r *RiderRouter) delivered(ctx context.Context, rider kernel.Phone, rawID string) string {
	bookingID, err := kernel.BookingIDFromString(rawID)
	if err != nil {
		return "Usage: delivered BOOK-12345"
	}

	cmd, err := commands.NewConfirmDeliveryCommand(bookingID, rider)
	if err != nil {
		return "Usage: delivered BOOK-12345"
	}

	b, err := r.confirmDelivery.Handle(ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrBookingNotFound), errors.Is(err, commands.ErrBookingNotOwned):
		return "Booking not found or not yours."
	case errors.Is(err, commands.ErrBookingNotInTransit):
		return "Confirm pickup first: pickup " + bookingID.String()
	case err != nil:
		r.logger.ErrorContext(ctx, "delivery confirmation failed",
			"rider", rider.String(), "booking_id", bookingID.String(), "error", err)
		return errorText()
	}

	return deliveryConfirmedText(b)
}

func (r *RiderRouter) listActiveBookings(ctx context.Context, rider kernel.Phone) string {
	query, err := queries.NewGetRiderBookingsQuery(rider)
	if err != nil {
		return errorText()
	}

	bookings, err := r.riderBookings.Handle(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "active bookings listing failed",
			"rider", rider.String(), "error", err)
		return "Error fetching your orders."
	}
	return activeBookingsText(bookings)
}

func (r *RiderRouter) checkPaymentStatus(ctx context.Context, rider kernel.Phone) string {
	query, err := queries.NewGetPaymentStatusQuery(rider)
	if err != nil {
		return errorText()
	}

	status, err := r.paymentStatus.Handle(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "payment status lookup failed",
			"rider", rider.String(), "error", err)
		return "Error checking payment."
	}
	return paymentStatusText(status)
}

func (r *RiderRouter) checkBookingPayment(ctx context.Context, rider kernel.Phone, rawID string) string {
	bookingID, err := kernel.BookingIDFromString(rawID)
	if err != nil {
		return "Usage: payment BOOK-12345"
	}

	query, err := queries.NewGetBookingPaymentQuery(bookingID, rider)
	if err != nil {
		return errorText()
	}

	hold, err := r.bookingPayment.Handle(ctx, query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return "Booking not found or not yours."
	case err != nil:
		r.logger.ErrorContext(ctx, "booking payment lookup failed",
			"rider", rider.String(), "booking_id", bookingID.String(), "error", err)
		return "Error checking payment."
	}

	return bookingPaymentText(hold)
}
