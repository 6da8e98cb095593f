package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/customer"
	"github.com/stripe/stripe-go/v80/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// StripeWebhook verifies and dispatches payment-processor events.
func StripeWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to read payload"})
	}

	event, err := webhook.ConstructEvent(payload, c.Request().Header.Get("Stripe-Signature"), config.C.StripeWebhookSecret)
	if err != nil {
		logger.Log.Warn("Webhook signature verification failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid webhook"})
	}

	logger.Log.Info("Processing webhook event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case "checkout.session.completed":
		err = handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		err = handleSubscriptionDeleted(ctx, event)
	default:
		logger.Log.Info("Unhandled webhook event type", zap.String("event_type", string(event.Type)))
	}

	if err != nil {
		logger.Log.Error("Webhook handling failed", zap.String("event_id", event.ID), zap.Error(err))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "received"})
}

func handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("unmarshal checkout session: %w", err)
	}

	order := orderFromSession(&sess)

	_, insertErr := database.DB.Collection("orders").InsertOne(ctx, order)
	created, err := orderInsertOutcome(insertErr)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	if !created {
		// Redelivered event; the order already exists.
		logger.Log.Info("Skipping duplicate checkout webhook",
			zap.String("checkout_session_id", sess.ID))
		return nil
	}

	cartSession := sess.Metadata["sessionId"]
	if clearsCart(order, cartSession) {
		if _, err := database.DB.Collection("carts").UpdateOne(
			ctx,
			bson.M{"sessionId": cartSession},
			bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
		); err != nil {
			logger.Log.Error("Failed to clear cart after checkout", zap.String("session_id", cartSession), zap.Error(err))
		}
	}

	if order.UserEmail != "" {
		createNotification(ctx, order.UserEmail, models.NotificationOrder,
			"Booking confirmed",
			fmt.Sprintf("Your booking for $%.2f is confirmed. We'll see you soon.", order.Total))

		if err := mail.SendSimple(order.UserEmail,
			"CallTechCare booking confirmation",
			fmt.Sprintf("Thanks for booking with CallTechCare! Your order total is $%.2f.", order.Total),
		); err != nil {
			logger.Log.Warn("Failed to send confirmation email", zap.String("email", order.UserEmail), zap.Error(err))
		}
	}

	return nil
}

// orderFromSession rebuilds the order snapshot from session metadata. Each
// metadata blob is decoded independently; a parse failure is logged and
// defaults to empty.
func orderFromSession(sess *stripe.CheckoutSession) *models.Order {
	items, _ := decodeMeta[[]models.CartItem]("items", sess.Metadata["items"])
	contact, hasContact := decodeMeta[models.Contact]("contact", sess.Metadata["contact"])
	address, hasAddress := decodeMeta[models.Address]("address", sess.Metadata["address"])
	schedule, hasSchedule := decodeMeta[models.Schedule]("schedule", sess.Metadata["schedule"])

	subtotal := orderSubtotal(items)

	email := ""
	if sess.CustomerDetails != nil {
		email = sess.CustomerDetails.Email
	}
	if email == "" && hasContact {
		email = contact.Email
	}

	order := &models.Order{
		ID:                primitive.NewObjectID(),
		CheckoutSessionID: sess.ID,
		Mode:              models.CheckoutMode(sess.Mode),
		UserEmail:         email,
		Items:             items,
		Subtotal:          subtotal,
		Total:             subtotal,
		Status:            models.OrderStatusPaid,
		CreatedAt:         time.Now(),
	}
	if sess.AmountTotal > 0 {
		order.Total = float64(sess.AmountTotal) / 100
	}
	if hasContact {
		order.Contact = &contact
	}
	if hasAddress {
		order.Address = &address
	}
	if hasSchedule {
		order.Schedule = &schedule
	}
	return order
}

func handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("unmarshal subscription: %w", err)
	}
	if sub.Customer == nil {
		return fmt.Errorf("subscription %s has no customer", sub.ID)
	}

	cust, err := customer.Get(sub.Customer.ID, nil)
	if err != nil {
		return fmt.Errorf("resolve customer %s: %w", sub.Customer.ID, err)
	}
	if cust.Email == "" {
		logger.Log.Warn("Subscription customer has no email", zap.String("customer_id", cust.ID))
		return nil
	}

	createNotification(ctx, cust.Email, models.NotificationWarning,
		"Subscription cancelled",
		"Your CallTechCare membership has been cancelled. You can resubscribe any time.")
	return nil
}

// decodeMeta unmarshals one checkout metadata blob. Empty or broken blobs
// yield the zero value; the failure is logged, not propagated.
func decodeMeta[T any](field, raw string) (T, bool) {
	var out T
	if raw == "" || raw == "null" {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logger.Log.Warn("Failed to decode checkout metadata", zap.String("field", field), zap.Error(err))
		var zero T
		return zero, false
	}
	return out, true
}

// orderInsertOutcome maps an order insert error to webhook semantics: a
// duplicate checkout session id is a redelivered event, not a failure, so
// exactly one order exists per checkout session.
func orderInsertOutcome(err error) (created bool, fatal error) {
	if err == nil {
		return true, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	return false, err
}

// clearsCart reports whether a completed checkout should empty the
// visitor's cart. Subscriptions keep it; one-time purchases clear it.
func clearsCart(order *models.Order, cartSession string) bool {
	return order.Mode == models.ModePayment && cartSession != ""
}

func orderSubtotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// createNotification writes a feed entry; failures are logged, never fatal
// to the surrounding operation.
func createNotification(ctx context.Context, email string, kind models.NotificationType, title, message string) {
	_, err := database.DB.Collection("notifications").InsertOne(ctx, models.Notification{
		ID:        primitive.NewObjectID(),
		UserEmail: email,
		Type:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		logger.Log.Error("Failed to create notification", zap.String("email", email), zap.Error(err))
	}
}
