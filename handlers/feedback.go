package handlers

import (
	"restaurant-site-api/models"
	"restaurant-site-api/services"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler serves the customer feedback inbox.
type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// List is the admin inbox view. Archived entries are hidden unless
// ?archived= is passed explicitly.
func (h *FeedbackHandler) List(c *gin.Context) {
	filters := services.FeedbackFilters{
		Type: models.FeedbackType(c.Query("type")),
	}
	if v, present := c.GetQuery("archived"); present {
		b := v == "true"
		filters.Archived = &b
	}
	if v, present := c.GetQuery("read"); present {
		b := v == "true"
		filters.Read = &b
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.feedback.List(ctx, filters)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, items)
}

type submitFeedbackRequest struct {
	Name      string              `json:"name" binding:"required"`
	Email     string              `json:"email" binding:"required,email"`
	Phone     string              `json:"phone"`
	Type      models.FeedbackType `json:"type"`
	Message   string              `json:"message" binding:"required"`
	Rating    int                 `json:"rating" binding:"omitempty,min=1,max=5"`
	VisitDate string              `json:"visitDate"`
}

// Submit is the public feedback form endpoint.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req submitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	id, err := h.feedback.Submit(ctx, models.Feedback{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Type:      req.Type,
		Message:   req.Message,
		Rating:    req.Rating,
		VisitDate: req.VisitDate,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": id})
}

type updateFeedbackRequest struct {
	ID           string `json:"id" binding:"required"`
	Read         *bool  `json:"read"`
	Archived     *bool  `json:"archived"`
	ReplyMessage string `json:"replyMessage"`
}

// Update handles the inbox actions: mark read, reply, archive. A reply
// message always wins over the flags.
func (h *FeedbackHandler) Update(c *gin.Context) {
	var req updateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Feedback ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	var (
		item models.Feedback
		err  error
	)
	switch {
	case req.ReplyMessage != "":
		item, err = h.feedback.Reply(ctx, req.ID, req.ReplyMessage)
	case req.Archived != nil && *req.Archived:
		item, err = h.feedback.Archive(ctx, req.ID)
	case req.Read != nil && *req.Read:
		item, err = h.feedback.MarkRead(ctx, req.ID)
	default:
		badRequest(c, "Nothing to update")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, item)
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		badRequest(c, "Feedback ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.feedback.Delete(ctx, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
