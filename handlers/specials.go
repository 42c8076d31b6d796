package handlers

import (
	"time"

	"restaurant-site-api/models"
	"restaurant-site-api/services"

	"github.com/gin-gonic/gin"
)

// SpecialsHandler serves the day-keyed daily specials.
type SpecialsHandler struct {
	specials *services.SpecialsService
}

func NewSpecialsHandler(specials *services.SpecialsService) *SpecialsHandler {
	return &SpecialsHandler{specials: specials}
}

// List returns all specials; ?today=true additionally reports which entry is
// today's (index 0 when no weekday matches).
func (h *SpecialsHandler) List(c *gin.Context) {
	ctx, cancel := requestCtx(c)
	defer cancel()

	specials, err := h.specials.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	if c.Query("today") == "true" {
		c.JSON(200, gin.H{
			"success": true,
			"data":    specials,
			"today":   services.ResolveToday(specials, time.Now()),
		})
		return
	}
	ok(c, specials)
}

type addSpecialRequest struct {
	Day         string   `json:"day" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Active      *bool    `json:"active"`
}

func (h *SpecialsHandler) Add(c *gin.Context) {
	var req addSpecialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing required fields: day, name, price")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	sp, err := h.specials.Add(ctx, models.DailySpecial{
		Day:         req.Day,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Active:      req.Active,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sp)
}

type updateSpecialRequest struct {
	Day     string                 `json:"day" binding:"required"`
	Updates services.SpecialUpdate `json:"updates"`
}

func (h *SpecialsHandler) Update(c *gin.Context) {
	var req updateSpecialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Day is required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	sp, err := h.specials.Update(ctx, req.Day, req.Updates)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, sp)
}

func (h *SpecialsHandler) Delete(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		badRequest(c, "Day is required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.specials.Delete(ctx, day); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
