package handlers

import (
	"context"
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/services"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 15 * time.Second

// MenuHandler serves the menu document and its category/item CRUD.
type MenuHandler struct {
	menu *services.MenuService
}

func NewMenuHandler(menu *services.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

func requestCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// GetMenu returns the whole menu, seeding on first read. ?view=public hides
// unavailable items and inactive specials.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	ctx, cancel := requestCtx(c)
	defer cancel()

	menu, err := h.menu.GetMenu(ctx, c.Query("view") == "public")
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, menu)
}

// UpdateMenu replaces the whole document (category reordering).
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	var menu models.MenuData
	if err := c.ShouldBindJSON(&menu); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	updated, err := h.menu.ReplaceMenu(ctx, &menu)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, updated)
}

type addCategoryRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (h *MenuHandler) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat, err := h.menu.AddCategory(ctx, models.MenuCategory{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cat)
}

type updateCategoryRequest struct {
	CategoryID string                  `json:"categoryId" binding:"required"`
	Updates    services.CategoryUpdate `json:"updates"`
}

func (h *MenuHandler) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	cat, err := h.menu.UpdateCategory(ctx, req.CategoryID, req.Updates)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, cat)
}

func (h *MenuHandler) DeleteCategory(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "Category ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.menu.DeleteCategory(ctx, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type addItemRequest struct {
	CategoryID string          `json:"categoryId" binding:"required"`
	Item       models.MenuItem `json:"item" binding:"required"`
}

func (h *MenuHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Item.Name == "" {
		badRequest(c, "Item name required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	item, err := h.menu.AddItem(ctx, req.CategoryID, req.Item)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

type updateItemRequest struct {
	CategoryID string              `json:"categoryId" binding:"required"`
	ItemID     string              `json:"itemId" binding:"required"`
	Updates    services.ItemUpdate `json:"updates"`
}

func (h *MenuHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	item, err := h.menu.UpdateItem(ctx, req.CategoryID, req.ItemID, req.Updates)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

func (h *MenuHandler) DeleteItem(c *gin.Context) {
	categoryID := c.Query("categoryId")
	itemID := c.Query("itemId")
	if categoryID == "" || itemID == "" {
		badRequest(c, "Category ID and Item ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.menu.DeleteItem(ctx, categoryID, itemID); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
