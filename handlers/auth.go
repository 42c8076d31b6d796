package handlers

import (
	"crypto/subtle"
	"net/http"

	"restaurant-site-api/config"
	"restaurant-site-api/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler manages the password-based admin console session.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type adminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the admin password and sets the session cookie (7 days).
func (h *AuthHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if !h.passwordMatches(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}

	token, err := middleware.GenerateAdminToken(h.cfg.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.AdminCookieName, token, int(config.AdminSessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status reports whether the caller holds a valid admin session.
func (h *AuthHandler) Status(c *gin.Context) {
	cookie, err := c.Cookie(config.AdminCookieName)
	authenticated := err == nil && cookie != ""
	c.JSON(http.StatusOK, gin.H{"success": true, "authenticated": authenticated})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(config.AdminCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) passwordMatches(password string) bool {
	if h.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(h.cfg.AdminPassword)) == 1
}
