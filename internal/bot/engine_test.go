package bot

import (
	"errors"
	"testing"
	"time"

	"mealbot/internal/core/application/usecases/commands"
	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"
	"mealbot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestEngine(sessions *MockSessionRepository, creator *MockOrderCreator, confirmer *MockPaymentConfirmer) *Engine {
	e := NewEngine(sessions, creator, confirmer, discardLogger())
	e.now = func() time.Time { return engineNow }
	return e
}

// sessionAt builds a session advanced to the given step with the data bag
// applied, updated just before the test clock.
func sessionAt(t *testing.T, phone kernel.Phone, step session.Step, data map[string]string) *session.Session {
	t.Helper()

	sess, err := session.NewSession(phone, engineNow.Add(-time.Minute))
	require.NoError(t, err)
	if step != session.Welcome {
		require.NoError(t, sess.Advance(step, engineNow.Add(-time.Minute)))
	}
	for k, v := range data {
		sess.Put(k, v, engineNow.Add(-time.Minute))
	}
	return sess
}

func TestEngine_HandleIncoming_NewBuyerGetsWelcome(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(nil, errs.NewObjectNotFoundError("session", buyer.String())).Once()
	sessions.On("Save", ctx, mock.Anything).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "hi")

	assert.Equal(t, welcomeText(), reply)
	sessions.AssertExpectations(t)
}

func TestEngine_HandleIncoming_WelcomeOrderShowsMenu(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.Welcome, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "1")

	assert.Equal(t, menuText(), reply)
	assert.Equal(t, session.SelectingFood, sess.Step())
}

func TestEngine_HandleIncoming_WelcomeAccountComingSoon(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.Welcome, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "2")

	assert.Equal(t, accountText(), reply)
	assert.Equal(t, session.Welcome, sess.Step())
}

func TestEngine_HandleIncoming_MealSelectionAsksForLocation(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.SelectingFood, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "3")

	assert.Equal(t, confirmOrderText("Vegan Bowl", mustMoney(t, 320)), reply)
	assert.Equal(t, session.ConfirmOrder, sess.Step())

	mealID, ok := sess.Get(keyMealID)
	require.True(t, ok)
	assert.Equal(t, "meal_vegan", mealID)
	price, ok := sess.Get(keyPrice)
	require.True(t, ok)
	assert.Equal(t, "32000", price)
}

func TestEngine_HandleIncoming_InvalidMealReshowsMenu(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.SelectingFood, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "nyama fry")

	assert.Equal(t, menuText(), reply)
	assert.Equal(t, session.SelectingFood, sess.Step())
}

func TestEngine_HandleIncoming_LocationTooShort(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.ConfirmOrder, map[string]string{
		keyMealName: "Vegan Bowl",
		keyPrice:    "32000",
	})

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "ab")

	assert.Equal(t, invalidLocationText(), reply)
	assert.Equal(t, session.ConfirmOrder, sess.Step())
}

func TestEngine_HandleIncoming_LocationAcceptedShowsPaymentPrompt(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.ConfirmOrder, map[string]string{
		keyMealName: "Beef & Mukimo",
		keyPrice:    "32000",
	})

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "Britam Tower")

	assert.Equal(t, paymentPromptText("Beef & Mukimo", mustMoney(t, 320)), reply)
	assert.Equal(t, session.Payment, sess.Step())

	location, ok := sess.Get(keyLocation)
	require.True(t, ok)
	assert.Equal(t, "Britam Tower", location)
}

func TestEngine_HandleIncoming_PaymentConfirmPlacesOrder(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.Payment, map[string]string{
		keyMealID:   "meal_vegan",
		keyMealName: "Vegan Bowl",
		keyPrice:    "32000",
		keyLocation: "Britam Tower",
	})

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	creator := new(MockOrderCreator)
	creator.On("Handle", ctx, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.MealName() == "Vegan Bowl" &&
			cmd.Location() == "Britam Tower" &&
			cmd.Buyer().IsEqual(buyer)
	})).Return(nil).Once()

	confirmer := new(MockPaymentConfirmer)
	confirmer.On("Handle", ctx, mock.Anything).Return(nil).Once()

	e := newTestEngine(sessions, creator, confirmer)
	reply := e.HandleIncoming(ctx, buyer, "Confirm")

	assert.Contains(t, reply, "Order placed.")
	assert.Contains(t, reply, "ID: ORD-")
	assert.Contains(t, reply, "Britam Tower")
	assert.Equal(t, session.OrderComplete, sess.Step())

	creator.AssertExpectations(t)
	confirmer.AssertExpectations(t)
}

func TestEngine_HandleIncoming_PaymentCancelRestarts(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.Payment, map[string]string{
		keyMealName: "Vegan Bowl",
		keyPrice:    "32000",
		keyLocation: "Britam Tower",
	})

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "cancel")

	assert.Equal(t, orderCancelledText(), reply)
	assert.Equal(t, session.Welcome, sess.Step())

	_, ok := sess.Get(keyMealName)
	assert.False(t, ok, "returning to welcome should clear the data bag")
}

func TestEngine_HandleIncoming_PromoCodeInterceptsAnyStep(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.SelectingFood, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "BRITAM_GRP")

	assert.Equal(t, promoAppliedText("britam_grp"), reply)
	assert.Equal(t, session.SelectingFood, sess.Step(), "promo must not advance the flow")

	promo, ok := sess.Get(keyPromoCode)
	require.True(t, ok)
	assert.Equal(t, "BRITAM_GRP", promo)
}

func TestEngine_HandleIncoming_OrderCompleteRestartsFlow(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.OrderComplete, nil)

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()
	sessions.On("Save", ctx, sess).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "hi")

	assert.Equal(t, welcomeText(), reply)
	assert.Equal(t, session.Welcome, sess.Step())
}

func TestEngine_HandleIncoming_StaleSessionRestarts(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")

	stale, err := session.NewSession(buyer, engineNow.Add(-25*time.Hour))
	require.NoError(t, err)
	require.NoError(t, stale.Advance(session.Payment, engineNow.Add(-25*time.Hour)))

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(stale, nil).Once()
	sessions.On("Save", ctx, mock.MatchedBy(func(s *session.Session) bool {
		return s.Step() == session.Welcome
	})).Return(nil).Once()

	e := newTestEngine(sessions, new(MockOrderCreator), new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "hi")

	assert.Equal(t, welcomeText(), reply)
}

func TestEngine_HandleIncoming_CreateOrderFailureRendersApology(t *testing.T) {
	ctx := t.Context()
	buyer := mustPhone(t, "+254712345678")
	sess := sessionAt(t, buyer, session.Payment, map[string]string{
		keyMealID:   "meal_vegan",
		keyMealName: "Vegan Bowl",
		keyPrice:    "32000",
		keyLocation: "Britam Tower",
	})

	sessions := new(MockSessionRepository)
	sessions.On("Get", ctx, buyer).Return(sess, nil).Once()

	creator := new(MockOrderCreator)
	creator.On("Handle", ctx, mock.Anything).Return(errors.New("db down")).Once()

	e := newTestEngine(sessions, creator, new(MockPaymentConfirmer))
	reply := e.HandleIncoming(ctx, buyer, "confirm")

	assert.Equal(t, errorText(), reply)
	assert.Equal(t, session.Payment, sess.Step(), "failed order must not advance the session")
}
