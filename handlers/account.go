package handlers

import (
	"net/http"
	"net/url"

	"restaurant-site-api/config"
	"restaurant-site-api/middleware"
	"restaurant-site-api/models"
	"restaurant-site-api/services"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the passwordless login flow and the user-scoped
// collaborators: likes, notification preferences, unsubscribe.
type AccountHandler struct {
	accounts *services.AccountService
	cfg      *config.Config
}

func NewAccountHandler(accounts *services.AccountService, cfg *config.Config) *AccountHandler {
	return &AccountHandler{accounts: accounts, cfg: cfg}
}

type magicLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// RequestMagicLink emails (or logs) a short-lived login link.
func (h *AccountHandler) RequestMagicLink(c *gin.Context) {
	var req magicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	token, err := middleware.GenerateMagicLinkToken(h.cfg.JWTSecret, req.Email, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create login link"})
		return
	}
	link := h.cfg.BaseURL + "/api/account/verify?token=" + url.QueryEscape(token)
	if err := h.accounts.SendMagicLink(req.Email, link); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// Verify exchanges a magic-link token for a user session cookie and upserts
// the profile.
func (h *AccountHandler) Verify(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		badRequest(c, "Token required")
		return
	}
	claims, err := middleware.ParseMagicLinkToken(h.cfg.JWTSecret, tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired login link"})
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.accounts.UpsertUser(ctx, claims.Email, claims.Name)
	if err != nil {
		fail(c, err)
		return
	}

	session, err := middleware.GenerateUserToken(h.cfg.JWTSecret, user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create session"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.UserCookieName, session, int(config.UserSessionTTL.Seconds()), "/", "", false, true)
	ok(c, gin.H{"id": user.ID, "email": user.Email, "name": user.Name})
}

// GetLikes is public: like counts per item, plus the likes of ?userId= when
// given.
func (h *AccountHandler) GetLikes(c *gin.Context) {
	ctx, cancel := requestCtx(c)
	defer cancel()

	counts, userLikes, err := h.accounts.LikeCounts(ctx, c.Query("itemId"), c.Query("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"counts": counts, "userLikes": userLikes})
}

type toggleLikeRequest struct {
	ItemID     string `json:"itemId" binding:"required"`
	CategoryID string `json:"categoryId" binding:"required"`
}

// ToggleLike adds or removes the session user's like on a menu item.
func (h *AccountHandler) ToggleLike(c *gin.Context) {
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Item ID and Category ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	liked, err := h.accounts.ToggleLike(ctx, middleware.GetUserID(c), middleware.GetUserEmail(c), req.ItemID, req.CategoryID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"liked": liked})
}

func (h *AccountHandler) GetPreferences(c *gin.Context) {
	ctx, cancel := requestCtx(c)
	defer cancel()

	prefs, err := h.accounts.GetPreferences(ctx, middleware.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, prefs)
}

func (h *AccountHandler) UpdatePreferences(c *gin.Context) {
	var prefs models.NotificationPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.accounts.UpdatePreferences(ctx, middleware.GetUserID(c), prefs); err != nil {
		fail(c, err)
		return
	}
	ok(c, prefs)
}

// UnsubscribeLookup shows who an unsubscribe token belongs to before they
// confirm.
func (h *AccountHandler) UnsubscribeLookup(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		badRequest(c, "Token required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	user, err := h.accounts.LookupByUnsubscribeToken(ctx, token)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"email": user.Email, "preferences": user.Preferences})
}

type unsubscribeRequest struct {
	Token string `json:"token" binding:"required"`
}

// Unsubscribe turns every notification preference off for the token's owner.
func (h *AccountHandler) Unsubscribe(c *gin.Context) {
	var req unsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Token required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.accounts.Unsubscribe(ctx, req.Token); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
