package bot

import (
	"fmt"
	"strings"

	"mealbot/internal/core/application/usecases/queries"
	"mealbot/internal/core/domain/model/booking"
	"mealbot/internal/core/domain/model/kernel"
)

// Message text builders for the buyer flow. The voice is terse and caring:
// the bot sells "fuel", not just food.

func welcomeText() string {
	return "Roho. Fuel for your day.\n\nReply:\n1️⃣ Order Lunch\n2️⃣ My Account"
}

func menuText() string {
	return "Today's fuel options:\n\n" +
		"1️⃣ *Beef & Mukimo* - Nyama choma, soft maize. Protein + carbs. KES 320\n\n" +
		"2️⃣ *Kienyeji Chicken* - Free-range chicken, kales, ugali. Pure fuel. KES 320\n\n" +
		"3️⃣ *Vegan Bowl* - Beans, greens, avocado, whole grains. Balance. KES 320\n\n" +
		"Reply with 1, 2, or 3"
}

func confirmOrderText(mealName string, price kernel.Money) string {
	return fmt.Sprintf("You chose: *%s*\nPrice: %s\n\n"+
		"Where should we deliver? (Enter office building or location)", mealName, price)
}

func paymentPromptText(mealName string, price kernel.Money) string {
	return fmt.Sprintf("Final check:\n\n*%s*\n%s\n\n"+
		"We'll send an M-PESA prompt to your number.\n\nReply:\n✅ Confirm\n❌ Cancel",
		mealName, price)
}

func orderConfirmationText(orderID kernel.OrderID, mealName, location string, price kernel.Money) string {
	return fmt.Sprintf("✓ Order placed.\n\nID: %s\n%s\nDeliver to: %s\n%s\n\n"+
		"Lunch ready by 1 PM. Roho delivers.", orderID, mealName, location, price)
}

func promoAppliedText(promoCode string) string {
	return fmt.Sprintf("Promo *%s* applied.\nFree delivery on your order.",
		strings.ToUpper(promoCode))
}

func accountText() string {
	return "Your account info coming soon. For now, let's order lunch.\n\nReply: 1 to Order Lunch"
}

func orderCancelledText() string {
	return "Order cancelled. Ready for lunch? Reply: 1 to Order Lunch"
}

func invalidLocationText() string {
	return "Please enter a valid office building or location."
}

func errorText() string {
	return "Something went wrong. Try again or type \"Hi\" to restart."
}

// Message text builders for the rider command surface.

func riderHelpText() string {
	return "Rider commands:\n\n" +
		"📋 orders - View pending orders\n" +
		"📦 book ORD-123 - Book an order\n" +
		"🚚 pickup BOOK-123 - Confirm pickup\n" +
		"✅ delivered BOOK-123 - Confirm delivery & release funds\n" +
		"💰 payment BOOK-123 - Check a delivery payment\n" +
		"💰 payment - Check your earnings\n" +
		"📊 myorders - Your active orders"
}

func pendingOrdersText(orders []queries.GetPendingOrdersQueryResponse) string {
	if len(orders) == 0 {
		return "No pending orders at the moment."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 *%d Pending Orders*:\n\n", len(orders))
	for i, o := range orders {
		fmt.Fprintf(&b, "%d. *%s*\n   📍 %s\n   💵 %s\n   ID: %s\n\n",
			i+1, o.MealName, o.Location, o.Price, o.OrderID)
	}
	b.WriteString("Reply: book ORD-12345 to claim an order")
	return b.String()
}

func orderBookedText(b *booking.Booking) string {
	return fmt.Sprintf("✅ Order booked!\n\nBooking ID: %s\n\n"+
		"Next:\nReply \"pickup %s\" when ready for pickup", b.ID(), b.ID())
}

func pickupConfirmedText(b *booking.Booking) string {
	return fmt.Sprintf("🚚 Picked up!\n\nDelivering to: %s\n\n"+
		"Reply \"delivered %s\" when customer receives order", b.Location(), b.ID())
}

func deliveryConfirmedText(b *booking.Booking) string {
	return fmt.Sprintf("✅ Delivery confirmed!\n\n💰 Funds Released: %s\n\n"+
		"Thank you for the delivery!", b.PaymentHold().Amount())
}

func activeBookingsText(bookings []queries.GetRiderBookingsQueryResponse) string {
	if len(bookings) == 0 {
		return "No active bookings. Reply \"orders\" to see pending."
	}

	var b strings.Builder
	b.WriteString("📊 *Your Active Bookings*:\n\n")
	for i, bk := range bookings {
		fmt.Fprintf(&b, "%d. *%s*\n   📍 %s\n   Status: %s\n   ID: %s\n\n",
			i+1, bk.MealName, bk.Location, bk.Status, bk.BookingID)
	}
	return b.String()
}

func paymentStatusText(status queries.GetPaymentStatusQueryResponse) string {
	if len(status.Holds) == 0 {
		return "No earnings yet. Reply \"orders\" to find deliveries."
	}

	var b strings.Builder
	b.WriteString("💰 *Payment Status*\n\n")
	for _, h := range status.Holds {
		fmt.Fprintf(&b, "%s - %s (%s)\n", h.BookingID, h.Amount, h.Status)
	}
	fmt.Fprintf(&b, "\nHeld: %s\nReleased: %s\n\n", status.TotalHeld, status.TotalReleased)
	b.WriteString("held = waiting for delivery | released = available to withdraw")
	return b.String()
}

func bookingPaymentText(h queries.PaymentHoldResponse) string {
	return fmt.Sprintf("💰 *Payment for %s*\n\nAmount: %s\nStatus: %s\n\n"+
		"held = waiting for delivery | released = available to withdraw",
		h.BookingID, h.Amount, h.Status)
}
