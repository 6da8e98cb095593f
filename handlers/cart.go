package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartCookieName scopes an anonymous visitor's cart.
const CartCookieName = "ctc_session"

const cartCookieMaxAge = 180 * 24 * 60 * 60

// sessionID returns the visitor's cart session identifier, minting a new
// cookie when none is present.
func sessionID(c echo.Context) string {
	cookie, err := c.Cookie(CartCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     CartCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   cartCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// loadCart returns the cart for the session, lazily creating it.
func loadCart(ctx context.Context, sid string) (*models.Cart, error) {
	now := time.Now()
	result := database.DB.Collection("carts").FindOneAndUpdate(
		ctx,
		bson.M{"sessionId": sid},
		bson.M{"$setOnInsert": bson.M{
			"sessionId": sid,
			"items":     []models.CartItem{},
			"createdAt": now,
			"updatedAt": now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	)

	var cart models.Cart
	if err := result.Decode(&cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCart retrieves (or lazily creates) the session's cart.
func GetCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := loadCart(ctx, sessionID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}
	return c.JSON(http.StatusOK, cart)
}

type addItemRequest struct {
	ServiceSlug string              `json:"serviceSlug" validate:"required"`
	Options     []models.ItemOption `json:"options"`
	Quantity    int                 `json:"quantity"`
}

// AddCartItem adds a line item, merging by slug when the selected options
// match the existing entry exactly. The same slug with differing options is
// appended as another entry; callers see both.
func AddCartItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	service, err := lookupService(ctx, req.ServiceSlug)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Unknown service"})
	}

	item := models.CartItem{
		ServiceSlug:  service.Slug,
		Title:        service.Title,
		BasePrice:    service.BasePrice,
		Options:      req.Options,
		Quantity:     req.Quantity,
		Subscription: service.Subscription,
	}
	item.Price = itemPrice(item.BasePrice, item.Options)

	sid := sessionID(c)
	cart, err := loadCart(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}

	cart.Items = mergeItem(cart.Items, item)
	if err := saveItems(ctx, sid, cart.Items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
	}

	return c.JSON(http.StatusOK, cart)
}

type updateItemRequest struct {
	Quantity *int                 `json:"quantity"`
	Options  *[]models.ItemOption `json:"options"`
}

// UpdateCartItem patches an arbitrary subset of the first line item with the
// given slug and recomputes its price.
func UpdateCartItem(c echo.Context) error {
	var req updateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sid := sessionID(c)
	cart, err := loadCart(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}

	slug := c.Param("slug")
	updated := false
	for i := range cart.Items {
		if cart.Items[i].ServiceSlug != slug {
			continue
		}
		if req.Quantity != nil {
			cart.Items[i].Quantity = *req.Quantity
		}
		if req.Options != nil {
			cart.Items[i].Options = *req.Options
		}
		cart.Items[i].Price = itemPrice(cart.Items[i].BasePrice, cart.Items[i].Options)
		updated = true
		break
	}

	if !updated {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	if err := saveItems(ctx, sid, cart.Items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveCartItem removes every line item carrying the slug.
func RemoveCartItem(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sid := sessionID(c)
	cart, err := loadCart(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}

	items, removed := removeItem(cart.Items, c.Param("slug"))
	if !removed {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found in cart"})
	}

	if err := saveItems(ctx, sid, items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

// ClearCart empties the session's cart.
func ClearCart(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := saveItems(ctx, sessionID(c), []models.CartItem{}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear cart"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// SetCartContact, SetCartAddress and SetCartSchedule store the booking
// wizard's step sub-documents.
func SetCartContact(c echo.Context) error {
	var contact models.Contact
	if err := c.Bind(&contact); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	return setCartField(c, "contact", contact)
}

func SetCartAddress(c echo.Context) error {
	var address models.Address
	if err := c.Bind(&address); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	return setCartField(c, "address", address)
}

func SetCartSchedule(c echo.Context) error {
	var schedule models.Schedule
	if err := c.Bind(&schedule); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	return setCartField(c, "schedule", schedule)
}

func setCartField(c echo.Context, field string, value interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sid := sessionID(c)
	if _, err := loadCart(ctx, sid); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load cart"})
	}

	_, err := database.DB.Collection("carts").UpdateOne(
		ctx,
		bson.M{"sessionId": sid},
		bson.M{"$set": bson.M{field: value, "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update cart"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart updated"})
}

func saveItems(ctx context.Context, sid string, items []models.CartItem) error {
	_, err := database.DB.Collection("carts").UpdateOne(
		ctx,
		bson.M{"sessionId": sid},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
	)
	return err
}

// mergeItem folds item into items: an existing entry with the same slug and
// identical options absorbs the quantity; anything else is appended.
func mergeItem(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ServiceSlug == item.ServiceSlug && sameOptions(items[i].Options, item.Options) {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

// removeItem drops every entry with the slug, reporting whether any matched.
func removeItem(items []models.CartItem, slug string) ([]models.CartItem, bool) {
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.ServiceSlug != slug {
			kept = append(kept, item)
		}
	}
	return kept, len(kept) != len(items)
}

func sameOptions(a, b []models.ItemOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// itemPrice is the base price plus every selected add-on.
func itemPrice(base float64, options []models.ItemOption) float64 {
	price := base
	for _, opt := range options {
		price += opt.Price
	}
	return price
}

// lookupService prefers the Mongo snapshot and falls through to the CMS.
func lookupService(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	err := database.DB.Collection("services").FindOne(ctx, bson.M{"slug": slug, "active": true}).Decode(&service)
	if err == nil {
		return &service, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	doc, err := cmsClient.GetService(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &models.Service{
		Slug:         doc.Slug,
		Title:        doc.Title,
		Description:  doc.Description,
		Category:     doc.Category,
		BasePrice:    doc.BasePrice,
		Subscription: doc.Subscription,
		Active:       doc.Active,
	}, nil
}
