// Package bot routes incoming WhatsApp messages. Buyers get a stateful
// ordering conversation driven by their session step; registered riders get a
// stateless command surface (orders / book / pickup / delivered / myorders /
// payment). All outcomes, including failures, are rendered as reply text.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"
	"mealbot/internal/core/ports"
	"mealbot/internal/pkg/errs"
)

// OrderCreator persists a new order from the buyer's session data.
type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

// PaymentConfirmer confirms an order's payment and queues it for riders.
type PaymentConfirmer interface {
	Handle(ctx context.Context, cmd commands.ConfirmPaymentCommand) error
}

// meal is one fixed menu option shown to buyers.
type meal struct {
	id    string
	name  string
	price int64 // shillings
}

func menuMeals() map[string]meal {
	return map[string]meal{
		"1": {id: "meal_beef_mukimo", name: "Beef & Mukimo", price: 320},
		"2": {id: "meal_chicken", name: "Kienyeji Chicken", price: 320},
		"3": {id: "meal_vegan", name: "Vegan Bowl", price: 320},
	}
}

func validPromoCodes() map[string]struct{} {
	return map[string]struct{}{
		"britam_grp":  {},
		"roho_free":   {},
		"nairobitech": {},
	}
}

// Session data keys used by the buyer flow.
const (
	keyMealID    = "meal_id"
	keyMealName  = "meal_name"
	keyPrice     = "price"
	keyLocation  = "location"
	keyPromoCode = "promo_code"
)

// MinLocationLength is the shortest accepted delivery landmark.
const MinLocationLength = 3

// Engine drives the buyer ordering conversation. Each incoming message is
// interpreted against the buyer's current session step, the session advances,
// and the reply text is returned for the messenger to send.
type Engine struct {
	sessions       ports.SessionRepository
	createOrder    OrderCreator
	confirmPayment PaymentConfirmer
	logger         *slog.Logger
	now            func() time.Time
}

// NewEngine creates the buyer conversation engine.
func NewEngine(
	sessions ports.SessionRepository,
	createOrder OrderCreator,
	confirmPayment PaymentConfirmer,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		sessions:       sessions,
		createOrder:    createOrder,
		confirmPayment: confirmPayment,
		logger:         logger.With("component", "buyer_engine"),
		now:            time.Now,
	}
}

// HandleIncoming processes one buyer message and returns the reply text.
// Unexpected errors are logged and rendered as a generic apology; the buyer
// is never shown an internal error.
func (e *Engine) HandleIncoming(ctx context.Context, phone kernel.Phone, text string) string {
	reply, err := e.route(ctx, phone, text)
	if err != nil {
		e.logger.ErrorContext(ctx, "buyer message failed",
			"phone", phone.String(), "error", err)
		return errorText()
	}
	return reply
}

func (e *Engine) route(ctx context.Context, phone kernel.Phone, text string) (string, error) {
	now := e.now().UTC()

	sess, err := e.loadSession(ctx, phone, now)
	if err != nil {
		return "", err
	}

	// Promo codes override the state machine at any step.
	if input := normalize(text); isPromoCode(input) {
		sess.Put(keyPromoCode, strings.ToUpper(input), now)
		if err = e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
		return promoAppliedText(input), nil
	}

	switch sess.Step() {
	case session.Welcome:
		return e.handleWelcome(ctx, sess, text, now)
	case session.SelectingFood:
		return e.handleFoodSelection(ctx, sess, text, now)
	case session.ConfirmOrder:
		return e.handleLocation(ctx, sess, text, now)
	case session.Payment:
		return e.handlePayment(ctx, sess, text, now)
	case session.OrderComplete:
		fallthrough
	default:
		// Completed or unknown step: restart the conversation.
		if err = sess.Advance(session.Welcome, now); err != nil {
			return "", err
		}
		if err = e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
		return welcomeText(), nil
	}
}

// loadSession fetches the buyer's session, starting a fresh one for new
// buyers and for sessions idle past the TTL.
func (e *Engine) loadSession(ctx context.Context, phone kernel.Phone, now time.Time) (*session.Session, error) {
	sess, err := e.sessions.Get(ctx, phone)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return session.NewSession(phone, now)
	}
	if err != nil {
		return nil, err
	}

	if sess.IsStale(session.DefaultTTL, now) {
		return session.NewSession(phone, now)
	}
	return sess, nil
}

func (e *Engine) handleWelcome(ctx context.Context, sess *session.Session, text string, now time.Time) (string, error) {
	input := normalize(text)

	if input == "1" || strings.Contains(input, "order") {
		if err := sess.Advance(session.SelectingFood, now); err != nil {
			return "", err
		}
		if err := e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
		return menuText(), nil
	}

	if input == "2" || strings.Contains(input, "account") {
		return accountText(), nil
	}

	if err := e.sessions.Save(ctx, sess); err != nil {
		return "", err
	}
	return welcomeText(), nil
}

func (e *Engine) handleFoodSelection(ctx context.Context, sess *session.Session, text string, now time.Time) (string, error) {
	m, ok := menuMeals()[normalize(text)]
	if !ok {
		return menuText(), nil
	}

	price, err := kernel.MoneyFromShillings(m.price)
	if err != nil {
		return "", err
	}

	sess.Put(keyMealID, m.id, now)
	sess.Put(keyMealName, m.name, now)
	sess.Put(keyPrice, strconv.FormatInt(price.MinorUnits(), 10), now)
	if err = sess.Advance(session.ConfirmOrder, now); err != nil {
		return "", err
	}
	if err = e.sessions.Save(ctx, sess); err != nil {
		return "", err
	}

	return confirmOrderText(m.name, price), nil
}

func (e *Engine) handleLocation(ctx context.Context, sess *session.Session, text string, now time.Time) (string, error) {
	location := strings.TrimSpace(text)
	if len(location) < MinLocationLength {
		return invalidLocationText(), nil
	}

	sess.Put(keyLocation, location, now)
	if err := sess.Advance(session.Payment, now); err != nil {
		return "", err
	}
	if err := e.sessions.Save(ctx, sess); err != nil {
		return "", err
	}

	mealName, price, err := sessionMeal(sess)
	if err != nil {
		return "", err
	}
	return paymentPromptText(mealName, price), nil
}

func (e *Engine) handlePayment(ctx context.Context, sess *session.Session, text string, now time.Time) (string, error) {
	input := normalize(text)

	if input == "✅" || strings.Contains(input, "confirm") {
		return e.placeOrder(ctx, sess, now)
	}

	if input == "❌" || strings.Contains(input, "cancel") {
		if err := sess.Advance(session.Welcome, now); err != nil {
			return "", err
		}
		if err := e.sessions.Save(ctx, sess); err != nil {
			return "", err
		}
		return orderCancelledText(), nil
	}

	mealName, price, err := sessionMeal(sess)
	if err != nil {
		return "", err
	}
	return paymentPromptText(mealName, price), nil
}

// placeOrder creates the order from the session data and immediately confirms
// its payment, which queues it for riders. The M-PESA prompt is simulated.
func (e *Engine) placeOrder(ctx context.Context, sess *session.Session, now time.Time) (string, error) {
	mealName, price, err := sessionMeal(sess)
	if err != nil {
		return "", err
	}
	mealID, _ := sess.Get(keyMealID)
	location, ok := sess.Get(keyLocation)
	if !ok {
		return "", errs.NewValueIsRequiredError("location")
	}
	promoCode, _ := sess.Get(keyPromoCode)

	orderID := kernel.NewOrderID()
	createCmd, err := commands.NewCreateOrderCommand(orderID, sess.Phone(), mealID,
		mealName, price, location, promoCode)
	if err != nil {
		return "", err
	}
	if err = e.createOrder.Handle(ctx, createCmd); err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	payCmd, err := commands.NewConfirmPaymentCommand(orderID)
	if err != nil {
		return "", err
	}
	if err = e.confirmPayment.Handle(ctx, payCmd); err != nil {
		return "", fmt.Errorf("confirm payment: %w", err)
	}

	if err = sess.Advance(session.OrderComplete, now); err != nil {
		return "", err
	}
	if err = e.sessions.Save(ctx, sess); err != nil {
		return "", err
	}

	e.logger.InfoContext(ctx, "order placed",
		"order_id", orderID.String(), "buyer", sess.Phone().String())
	return orderConfirmationText(orderID, mealName, location, price), nil
}

// sessionMeal reads the chosen meal back out of the session data bag.
func sessionMeal(sess *session.Session) (string, kernel.Money, error) {
	mealName, ok := sess.Get(keyMealName)
	if !ok {
		return "", kernel.Money{}, errs.NewValueIsRequiredError(keyMealName)
	}

	raw, ok := sess.Get(keyPrice)
	if !ok {
		return "", kernel.Money{}, errs.NewValueIsRequiredError(keyPrice)
	}
	minorUnits, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", kernel.Money{}, errs.NewValueIsInvalidErrorWithCause(keyPrice, err)
	}
	price, err := kernel.NewMoney(minorUnits)
	if err != nil {
		return "", kernel.Money{}, err
	}

	return mealName, price, nil
}

func isPromoCode(input string) bool {
	_, ok := validPromoCodes()[input]
	return ok
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}
