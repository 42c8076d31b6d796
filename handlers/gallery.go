package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"restaurant-site-api/models"
	"restaurant-site-api/services"

	"github.com/gin-gonic/gin"
)

// GalleryHandler serves gallery image metadata and uploads.
type GalleryHandler struct {
	gallery *services.GalleryService
}

func NewGalleryHandler(gallery *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

func (h *GalleryHandler) List(c *gin.Context) {
	ctx, cancel := requestCtx(c)
	defer cancel()

	images, err := h.gallery.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, images)
}

// Upload accepts a single "file" field or a batch under "files" (with
// matching "alts"). The whole batch is validated before any byte moves.
func (h *GalleryHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, "Invalid upload form")
		return
	}

	var headers []*multipart.FileHeader
	var alts []string
	if single := form.File["file"]; len(single) > 0 {
		headers = append(headers, single[0])
		alts = append(alts, c.PostForm("alt"))
	}
	batchAlts := form.Value["alts"]
	for i, fh := range form.File["files"] {
		headers = append(headers, fh)
		if i < len(batchAlts) {
			alts = append(alts, batchAlts[i])
		} else {
			alts = append(alts, "")
		}
	}

	if len(headers) == 0 {
		badRequest(c, "No files provided")
		return
	}

	uploads := make([]services.GalleryUpload, 0, len(headers))
	for i, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			badRequest(c, "Could not read "+fh.Filename)
			return
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			badRequest(c, "Could not read "+fh.Filename)
			return
		}
		uploads = append(uploads, services.GalleryUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     content,
			Alt:         alts[i],
		})
	}

	category := models.GalleryCategory(c.PostForm("category"))

	ctx, cancel := requestCtx(c)
	defer cancel()

	added, err := h.gallery.Upload(ctx, uploads, category)
	if err != nil {
		fail(c, err)
		return
	}

	var data any = added
	if len(added) == 1 {
		data = added[0]
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": len(added)})
}

type updateImageRequest struct {
	ID       string                  `json:"id" binding:"required"`
	Alt      *string                 `json:"alt"`
	Category *models.GalleryCategory `json:"category"`
	Order    *float64                `json:"order"`
}

func (h *GalleryHandler) Update(c *gin.Context) {
	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Image ID required")
		return
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	img, err := h.gallery.Update(ctx, req.ID, services.GalleryImageUpdate{
		Alt:      req.Alt,
		Category: req.Category,
		Order:    req.Order,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, img)
}

// Delete accepts a single id as a query parameter or {"ids": [...]} in the
// body for batch deletion.
func (h *GalleryHandler) Delete(c *gin.Context) {
	var ids []string
	if id := c.Query("id"); id != "" {
		ids = []string{id}
	} else {
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			ids = body.IDs
		}
	}
	if len(ids) == 0 {
		badRequest(c, "Image ID(s) required")
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	deleted, err := h.gallery.Delete(ctx, ids)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deletedCount": deleted})
}

// Rotate replaces an image's underlying file with the client-rotated bytes.
func (h *GalleryHandler) Rotate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file provided")
		return
	}
	imageID := c.PostForm("imageId")
	if imageID == "" {
		badRequest(c, "Image ID required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		badRequest(c, "Could not read uploaded file")
		return
	}

	ctx, cancel := requestCtx(c)
	defer cancel()

	img, err := h.gallery.Rotate(ctx, imageID, services.GalleryUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     content,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, img)
}
