package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"go.uber.org/zap"
)

// CreateCheckoutSession turns the session's cart into a hosted payment page.
// The cart contents and wizard sub-documents travel in session metadata so
// the webhook can rebuild the order without trusting the client.
func CreateCheckoutSession(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sid := sessionID(c)
	cart, err := loadCart(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}
	if len(cart.Items) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cart is empty"})
	}

	mode := models.ModePayment
	for _, item := range cart.Items {
		if item.Subscription {
			mode = models.ModeSubscription
			break
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(config.C.CheckoutSuccessURL),
		CancelURL:  stripe.String(config.C.CheckoutCancelURL),
		LineItems:  checkoutLineItems(cart.Items, mode),
	}
	if cart.Contact != nil && cart.Contact.Email != "" {
		params.CustomerEmail = stripe.String(cart.Contact.Email)
	}

	params.AddMetadata("sessionId", sid)
	for key, value := range map[string]interface{}{
		"items":    cart.Items,
		"contact":  cart.Contact,
		"address":  cart.Address,
		"schedule": cart.Schedule,
	} {
		encoded, err := json.Marshal(value)
		if err != nil {
			logger.Log.Warn("Failed to encode checkout metadata", zap.String("field", key), zap.Error(err))
			continue
		}
		params.AddMetadata(key, string(encoded))
	}

	s, err := session.New(params)
	if err != nil {
		logger.Log.Error("Failed to create checkout session", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create checkout session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": s.URL, "id": s.ID})
}

func checkoutLineItems(items []models.CartItem, mode models.CheckoutMode) []*stripe.CheckoutSessionLineItemParams {
	out := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String("usd"),
			UnitAmount: stripe.Int64(int64(item.Price * 100)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name: stripe.String(item.Title),
			},
		}
		if mode == models.ModeSubscription && item.Subscription {
			priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String("month"),
			}
		}
		out = append(out, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(int64(item.Quantity)),
		})
	}
	return out
}
