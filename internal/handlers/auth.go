package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinXCVI/mern-auth-system/internal/config"
	"github.com/MartinXCVI/mern-auth-system/internal/email"
	"github.com/MartinXCVI/mern-auth-system/internal/middleware"
	"github.com/MartinXCVI/mern-auth-system/internal/models"
	"github.com/MartinXCVI/mern-auth-system/internal/utils"
)

// OTP validity windows. The reset window must match the figure promised in
// the reset email template.
const (
	VerifyOtpTTL = 24 * time.Hour
	ResetOtpTTL  = 15 * time.Minute
)

type AuthHandler struct {
	DB     *gorm.DB
	Cfg    config.Config
	Mailer email.Mailer
}

func NewAuthHandler(db *gorm.DB, cfg config.Config, mailer email.Mailer) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Mailer: mailer}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyEmailRequest struct {
	OTP string `json:"otp" binding:"required,len=6"`
}

type sendResetOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Name, email and password are required, and the email must be valid"})
		return
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := h.DB.Where("email = ?", normalizedEmail).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email is already registered"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password, h.Cfg.SaltRounds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to register user"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        normalizedEmail,
		PasswordHash: passwordHash,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// The pre-check above races with concurrent registrations; the unique
		// index is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to register user"})
		return
	}

	if err := h.issueSessionCookies(c, user.ID.String()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to register user"})
		return
	}

	// Best effort: the account exists either way.
	if err := h.Mailer.SendWelcome(user.Email, user.Name); err != nil {
		log.Printf("welcome mail send error: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User " + user.Name + " successfully created",
		"user":    user.Public(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	accessToken, err := h.issueSessionCookiesToken(c, user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "User " + user.Name + " successfully logged in",
		"accessToken": accessToken,
	})
}

// Logout is deliberately not behind the session guard: it must keep working
// for a client holding only a refresh cookie or an expired access token, and
// a repeat logout reports "no session" rather than 401.
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken, accessErr := c.Cookie(middleware.AccessTokenCookie)
	refreshToken, refreshErr := c.Cookie(middleware.RefreshTokenCookie)
	if (accessErr != nil || accessToken == "") && (refreshErr != nil || refreshToken == "") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No session found to log out"})
		return
	}

	h.setCookieAttributes(c)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", h.Cfg.IsProduction(), true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", h.Cfg.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User successfully logged out. All cookies were cleared"})
}

// Refresh mints a fresh access token from a valid refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: login again"})
		return
	}

	userID, err := utils.ParseSessionToken(refreshToken, h.Cfg.JwtRefreshSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: login again"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: login again"})
		return
	}

	accessToken, err := utils.GenerateSessionToken(userID, h.Cfg.JwtSecret, utils.AccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to refresh session"})
		return
	}

	h.setCookieAttributes(c)
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", h.Cfg.IsProduction(), true)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Access token successfully refreshed", "accessToken": accessToken})
}

func (h *AuthHandler) SendVerifyOtp(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.IsAccountVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account is already verified"})
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send verification OTP"})
		return
	}

	// A re-send overwrites any pending code; only the latest one validates.
	user.VerifyOtp = code
	user.VerifyOtpExpireAt = time.Now().Add(VerifyOtpTTL).UnixMilli()
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send verification OTP"})
		return
	}

	if err := h.Mailer.SendVerifyOtp(user.Email, code); err != nil {
		log.Printf("verify otp mail send error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send verification OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification OTP successfully sent"})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP is required"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if user.IsAccountVerified {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Account is already verified"})
		return
	}

	if !utils.CheckOTP(user.VerifyOtp, req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
		return
	}
	if time.Now().UnixMilli() > user.VerifyOtpExpireAt {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired"})
		return
	}

	user.IsAccountVerified = true
	user.VerifyOtp = ""
	user.VerifyOtpExpireAt = 0
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email successfully verified"})
}

func (h *AuthHandler) IsAuthenticated(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User is authenticated",
		"user":    user.Public(),
	})
}

func (h *AuthHandler) SendResetOtp(c *gin.Context) {
	var req sendResetOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid email is required"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found or does not exist"})
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send reset OTP"})
		return
	}

	user.ResetOtp = code
	user.ResetOtpExpireAt = time.Now().Add(ResetOtpTTL).UnixMilli()
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send reset OTP"})
		return
	}

	if err := h.Mailer.SendResetOtp(user.Email, code); err != nil {
		log.Printf("reset otp mail send error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to send reset OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset OTP successfully sent"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email, OTP and new password are required"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found or does not exist"})
		return
	}

	if !utils.CheckOTP(user.ResetOtp, req.OTP) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid OTP"})
		return
	}
	if time.Now().UnixMilli() > user.ResetOtpExpireAt {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "OTP expired"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword, h.Cfg.SaltRounds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to reset password"})
		return
	}

	user.PasswordHash = newHash
	user.ResetOtp = ""
	user.ResetOtpExpireAt = 0
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error while attempting to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password successfully reset"})
}

// currentUser resolves the guard-attached user id to a stored User. On
// failure it writes the response itself and reports ok=false.
func (h *AuthHandler) currentUser(c *gin.Context) (models.User, bool) {
	userID, ok := c.Get(middleware.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized: missing user ID from session"})
		return models.User{}, false
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID.(string)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found or does not exist"})
		return models.User{}, false
	}
	return user, true
}

func (h *AuthHandler) issueSessionCookies(c *gin.Context, userID string) error {
	_, err := h.issueSessionCookiesToken(c, userID)
	return err
}

// issueSessionCookiesToken sets both session cookies and returns the access
// token for responses that expose it in the body as well.
func (h *AuthHandler) issueSessionCookiesToken(c *gin.Context, userID string) (string, error) {
	accessToken, err := utils.GenerateSessionToken(userID, h.Cfg.JwtSecret, utils.AccessTokenTTL)
	if err != nil {
		return "", err
	}
	refreshToken, err := utils.GenerateSessionToken(userID, h.Cfg.JwtRefreshSecret, utils.RefreshTokenTTL)
	if err != nil {
		return "", err
	}

	h.setCookieAttributes(c)
	secure := h.Cfg.IsProduction()
	c.SetCookie(middleware.AccessTokenCookie, accessToken, int(utils.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, refreshToken, int(utils.RefreshTokenTTL.Seconds()), "/", "", secure, true)

	return accessToken, nil
}

// Cross-site cookies are only possible over HTTPS, so SameSite=None rides
// with Secure in production; local plaintext development relaxes to Lax.
func (h *AuthHandler) setCookieAttributes(c *gin.Context) {
	if h.Cfg.IsProduction() {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
}
