package routes

import (
	"github.com/calltechcare/backend-go/handlers"
	customMiddleware "github.com/calltechcare/backend-go/middleware"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(e *echo.Echo) {
	authLimit := customMiddleware.RateLimit(1, 5)

	// NextAuth routes (public)
	e.POST("/api/auth/signup", handlers.SignUp, authLimit)
	e.POST("/api/auth/signin", handlers.NextAuthSignIn, authLimit)
	e.GET("/api/auth/csrf", handlers.NextAuthCSRF)
	e.GET("/api/auth/session", handlers.NextAuthSession, customMiddleware.AuthMiddleware())

	// Custom cookie-token flow
	e.POST("/api/auth/token", handlers.SignInToken, authLimit)
	e.POST("/api/auth/signout", handlers.SignOut)
	e.POST("/api/auth/forgot-password", handlers.ForgotPassword, authLimit)
	e.POST("/api/auth/reset-password", handlers.ResetPassword, authLimit)

	// Cart + booking wizard (session cookie, no account required)
	e.GET("/api/cart", handlers.GetCart)
	e.POST("/api/cart/items", handlers.AddCartItem)
	e.PATCH("/api/cart/items/:slug", handlers.UpdateCartItem)
	e.DELETE("/api/cart/items/:slug", handlers.RemoveCartItem)
	e.DELETE("/api/cart", handlers.ClearCart)
	e.PUT("/api/cart/contact", handlers.SetCartContact)
	e.PUT("/api/cart/address", handlers.SetCartAddress)
	e.PUT("/api/cart/schedule", handlers.SetCartSchedule)

	// Checkout + payment webhook
	e.POST("/api/checkout", handlers.CreateCheckoutSession)
	e.POST("/api/webhooks/stripe", handlers.StripeWebhook)

	// Catalog + content proxies
	e.GET("/api/services", handlers.GetServices)
	e.GET("/api/services/:slug", handlers.GetService)
	e.GET("/api/content/posts", handlers.GetPosts)
	e.GET("/api/content/posts/:slug", handlers.GetPost)

	// Reviews
	e.POST("/api/reviews", handlers.SubmitReview, customMiddleware.RateLimit(1, 3))
	e.GET("/api/reviews/:slug", handlers.GetServiceReviews)

	// Promo codes
	e.POST("/api/promo/claim", handlers.ClaimPromo, customMiddleware.RateLimit(1, 3))
	e.POST("/api/promo/validate", handlers.ValidatePromo)

	// Assessment quiz
	e.POST("/api/assessments", handlers.SubmitAssessment, customMiddleware.RateLimit(1, 3))
	e.GET("/api/assessments/stats", handlers.GetAssessmentStats)
	e.GET("/api/assessments/:shareId", handlers.GetAssessment)

	// Consent preferences
	e.GET("/api/consent", handlers.GetConsent)
	e.POST("/api/consent", handlers.SetConsent)

	// Operational sync endpoints (shared-secret guarded)
	e.POST("/api/sync/pricing", handlers.SyncPricing)
	e.POST("/api/sync/mailing-list", handlers.SyncMailingList)

	// SEO feeds
	e.GET("/sitemap.xml", handlers.Sitemap)
	e.GET("/rss.xml", handlers.RSS)

	// Protected account routes
	api := e.Group("/api", customMiddleware.AuthMiddleware())
	api.GET("/users/me", handlers.GetUserProfile)
	api.PUT("/users/me", handlers.UpdateUserProfile)
	api.GET("/users/me/orders", handlers.GetUserOrders)
	api.GET("/notifications", handlers.GetNotifications)
	api.POST("/notifications/:id/read", handlers.MarkNotificationRead)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}
