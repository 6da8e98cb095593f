package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/middleware"
	"github.com/calltechcare/backend-go/models"
	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignUpRequest represents the expected request body for signup
type SignUpRequest struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone"`
	Subscribe bool   `json:"subscribe"`
}

// SignUp handles user registration. The mailing-list subscribe is
// best-effort and never fails the sign-up.
func SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Check if user already exists
	var existingUser models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&existingUser)
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Email already registered"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process password"})
	}

	newUser := models.User{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Email:       req.Email,
		Password:    string(hashedPassword),
		PhoneNumber: req.Phone,
		Provider:    "credentials",
		Subscribed:  req.Subscribe,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	_, err = database.DB.Collection("users").InsertOne(ctx, newUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
	}

	if req.Subscribe {
		if err := listClient.Subscribe(ctx, req.Email, req.Name); err != nil {
			logger.Log.Warn("Mailing-list subscribe failed during sign-up", zap.String("email", req.Email), zap.Error(err))
		}
	}

	token, err := utils.GenerateJWT(newUser.ID.Hex(), newUser.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	newUser.Password = ""
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"user":  newUser,
		"token": token,
	})
}

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInToken is the cookie-based credential flow: it validates the
// email/password pair and sets a signed token in an HttpOnly cookie.
func SignInToken(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	user.Password = ""
	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// SignOut clears the session cookie.
func SignOut(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "Signed out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword mints a reset token and mails a link. The response is 200
// whether or not the account exists.
func ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	response := map[string]string{"message": "If that account exists, a reset link has been sent"}

	var user models.User
	if err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		return c.JSON(http.StatusOK, response)
	}

	token := utils.GenerateResetToken()
	_, err := database.DB.Collection("password_reset_tokens").InsertOne(ctx, models.PasswordResetToken{
		ID:        primitive.NewObjectID(),
		Email:     user.Email,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create reset token"})
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", config.C.SiteBaseURL, token)
	if err := mail.SendSimple(user.Email, "Reset your CallTechCare password",
		"Use this link within one hour to reset your password: "+link); err != nil {
		logger.Log.Warn("Failed to send reset email", zap.String("email", user.Email), zap.Error(err))
	}

	return c.JSON(http.StatusOK, response)
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPassword consumes a reset token and stores the new hash.
func ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reset models.PasswordResetToken
	err := database.DB.Collection("password_reset_tokens").FindOneAndDelete(ctx, bson.M{"token": req.Token}).Decode(&reset)
	if err != nil || time.Now().After(reset.ExpiresAt) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid or expired reset token"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to process password"})
	}

	_, err = database.DB.Collection("users").UpdateOne(
		ctx,
		bson.M{"email": reset.Email},
		bson.M{"$set": bson.M{"password": string(hashedPassword), "updatedAt": time.Now()}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update password"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}
