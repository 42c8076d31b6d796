package routes

import (
	"restaurant-site-api/config"
	"restaurant-site-api/handlers"
	"restaurant-site-api/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes wires into the engine.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Menu     *handlers.MenuHandler
	Specials *handlers.SpecialsHandler
	Gallery  *handlers.GalleryHandler
	Feedback *handlers.FeedbackHandler
	Account  *handlers.AccountHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, cfg *config.Config) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Admin session
		public.POST("/auth/login", h.Auth.Login)
		public.GET("/auth/status", h.Auth.Status)
		public.POST("/auth/logout", h.Auth.Logout)

		// Site content (no auth needed)
		public.GET("/menu", h.Menu.GetMenu)
		public.GET("/menu/specials", h.Specials.List)
		public.GET("/gallery", h.Gallery.List)
		public.POST("/feedback", h.Feedback.Submit)

		// Passwordless accounts
		public.POST("/account/magic-link", h.Account.RequestMagicLink)
		public.GET("/account/verify", h.Account.Verify)
		public.GET("/likes", h.Account.GetLikes)
		public.GET("/unsubscribe", h.Account.UnsubscribeLookup)
		public.POST("/unsubscribe", h.Account.Unsubscribe)
	}

	// ── Signed-in user routes ──────────────────────────────────────
	user := r.Group("/api")
	user.Use(middleware.UserRequired(cfg.JWTSecret))
	{
		user.POST("/likes", h.Account.ToggleLike)
		user.GET("/user/preferences", h.Account.GetPreferences)
		user.PUT("/user/preferences", h.Account.UpdatePreferences)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AdminRequired(cfg.JWTSecret))
	{
		// Menu management
		admin.PUT("/menu", h.Menu.UpdateMenu)
		admin.POST("/menu/categories", h.Menu.AddCategory)
		admin.PUT("/menu/categories", h.Menu.UpdateCategory)
		admin.DELETE("/menu/categories", h.Menu.DeleteCategory)
		admin.POST("/menu/items", h.Menu.AddItem)
		admin.PUT("/menu/items", h.Menu.UpdateItem)
		admin.DELETE("/menu/items", h.Menu.DeleteItem)

		// Bulk import
		admin.POST("/menu/import", h.Menu.ImportMenu)
		admin.GET("/menu/import", h.Menu.DownloadTemplate)

		// Daily specials
		admin.POST("/menu/specials", h.Specials.Add)
		admin.PUT("/menu/specials", h.Specials.Update)
		admin.DELETE("/menu/specials", h.Specials.Delete)

		// Gallery management
		admin.POST("/gallery", h.Gallery.Upload)
		admin.PUT("/gallery", h.Gallery.Update)
		admin.DELETE("/gallery", h.Gallery.Delete)
		admin.POST("/gallery/rotate", h.Gallery.Rotate)

		// Feedback inbox
		admin.GET("/feedback", h.Feedback.List)
		admin.PUT("/feedback", h.Feedback.Update)
		admin.DELETE("/feedback", h.Feedback.Delete)
	}
}
