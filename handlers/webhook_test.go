package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/calltechcare/backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDecodeMetaValid(t *testing.T) {
	items, ok := decodeMeta[[]models.CartItem]("items",
		`[{"serviceSlug":"pc-tune-up","price":79,"quantity":2}]`)

	assert.True(t, ok)
	assert.Len(t, items, 1)
	assert.Equal(t, "pc-tune-up", items[0].ServiceSlug)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestDecodeMetaEmptyAndBroken(t *testing.T) {
	contact, ok := decodeMeta[models.Contact]("contact", "")
	assert.False(t, ok)
	assert.Equal(t, models.Contact{}, contact)

	contact, ok = decodeMeta[models.Contact]("contact", "null")
	assert.False(t, ok)
	assert.Equal(t, models.Contact{}, contact)

	// Broken JSON defaults to empty rather than failing the event.
	contact, ok = decodeMeta[models.Contact]("contact", `{"email": nope}`)
	assert.False(t, ok)
	assert.Equal(t, models.Contact{}, contact)
}

func TestOrderSubtotal(t *testing.T) {
	items := []models.CartItem{
		{Price: 79, Quantity: 2},
		{Price: 104, Quantity: 1},
	}
	assert.Equal(t, 262.0, orderSubtotal(items))
	assert.Equal(t, 0.0, orderSubtotal(nil))
}

func TestClearsCartByMode(t *testing.T) {
	payment := orderFromSession(&stripe.CheckoutSession{
		ID:       "cs_once",
		Mode:     stripe.CheckoutSessionModePayment,
		Metadata: map[string]string{"sessionId": "visitor-1"},
	})
	subscription := orderFromSession(&stripe.CheckoutSession{
		ID:       "cs_monthly",
		Mode:     stripe.CheckoutSessionModeSubscription,
		Metadata: map[string]string{"sessionId": "visitor-1"},
	})

	// One-time purchases empty the cart; subscriptions leave it alone.
	assert.True(t, clearsCart(payment, "visitor-1"))
	assert.False(t, clearsCart(subscription, "visitor-1"))

	// Without a cart session there is nothing to clear.
	assert.False(t, clearsCart(payment, ""))
}

func TestOrderInsertOutcome(t *testing.T) {
	created, err := orderInsertOutcome(nil)
	assert.True(t, created)
	assert.NoError(t, err)

	// A redelivered event hits the unique checkout-session index; the order
	// from the first delivery stands and the replay is swallowed.
	duplicate := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	created, err = orderInsertOutcome(duplicate)
	assert.False(t, created)
	assert.NoError(t, err)

	created, err = orderInsertOutcome(errors.New("connection reset"))
	assert.False(t, created)
	assert.Error(t, err)
}

func metaJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return string(b)
}

func TestOrderFromSession(t *testing.T) {
	items := []models.CartItem{{ServiceSlug: "pc-tune-up", Title: "PC Tune-Up", Price: 79, Quantity: 2}}
	contact := models.Contact{Name: "Pat", Email: "pat@example.com", Phone: "555-0100"}
	schedule := models.Schedule{Date: "2026-09-15", TimeSlot: "morning"}

	sess := &stripe.CheckoutSession{
		ID:   "cs_test_123",
		Mode: stripe.CheckoutSessionModePayment,
		Metadata: map[string]string{
			"sessionId": "visitor-1",
			"items":     metaJSON(t, items),
			"contact":   metaJSON(t, contact),
			"schedule":  metaJSON(t, schedule),
		},
		AmountTotal: 15800,
	}

	order := orderFromSession(sess)

	assert.Equal(t, "cs_test_123", order.CheckoutSessionID)
	assert.Equal(t, models.ModePayment, order.Mode)
	assert.Equal(t, "pat@example.com", order.UserEmail)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, 158.0, order.Subtotal)
	assert.Equal(t, 158.0, order.Total)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, &contact, order.Contact)
	assert.Equal(t, &schedule, order.Schedule)
	assert.Nil(t, order.Address)
}

func TestOrderFromSessionBrokenMetadataDefaultsEmpty(t *testing.T) {
	sess := &stripe.CheckoutSession{
		ID:   "cs_test_456",
		Mode: stripe.CheckoutSessionModeSubscription,
		Metadata: map[string]string{
			"items":   "{{not json",
			"contact": "also broken",
		},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "member@example.com"},
	}

	order := orderFromSession(sess)

	assert.Equal(t, models.ModeSubscription, order.Mode)
	assert.Empty(t, order.Items)
	assert.Nil(t, order.Contact)
	assert.Equal(t, "member@example.com", order.UserEmail)
	assert.Equal(t, 0.0, order.Total)
}

func TestOrderFromSessionPrefersProcessorEmail(t *testing.T) {
	contact := models.Contact{Email: "form@example.com"}
	sess := &stripe.CheckoutSession{
		ID:              "cs_test_789",
		Mode:            stripe.CheckoutSessionModePayment,
		Metadata:        map[string]string{"contact": metaJSON(t, contact)},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{Email: "paid@example.com"},
	}

	order := orderFromSession(sess)
	assert.Equal(t, "paid@example.com", order.UserEmail)
}
