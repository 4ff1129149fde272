package image

import (
	"net/http"
	"net/url"
	"strings"

	"LandokProject/logger"
	imagemodel "LandokProject/module/image/model"
	"LandokProject/service/storage/cloudinary"

	"github.com/gin-gonic/gin"
)

// Handler serves the gallery: uploads go to Cloudinary, the returned URL
// and public ID are persisted locally.
type Handler struct {
	uploader *cloudinary.Uploader
}

func NewHandler(uploader *cloudinary.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// HandlerList handles GET /upload, newest first.
func (h *Handler) HandlerList(c *gin.Context) {
	m := &imagemodel.Image{}
	out, err := m.List(c.Request.Context())
	if err != nil {
		logger.Errorf("[image] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, out)
}

// HandlerUpload handles POST /upload with a single multipart "photo" file.
func (h *Handler) HandlerUpload(c *gin.Context) {
	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No photo uploaded"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		logger.Errorf("[image] open upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	res, err := h.uploader.Upload(ctx, f, fh.Filename)
	if err != nil {
		logger.Errorf("[image] upload failed name=%s: %v", fh.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload failed"})
		return
	}

	doc := &imagemodel.Image{URL: res.URL, PublicID: res.PublicID}
	m := &imagemodel.Image{}
	if err := m.Insert(ctx, doc); err != nil {
		logger.Errorf("[image] persist failed public_id=%s: %v", res.PublicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	logger.Infof("[image] uploaded public_id=%s", res.PublicID)
	c.JSON(http.StatusCreated, doc)
}

// HandlerDelete handles DELETE /upload/*public_id. Public IDs carry the
// folder prefix and so contain a slash; the catch-all route plus an
// unescape keeps encoded IDs working too.
func (h *Handler) HandlerDelete(c *gin.Context) {
	raw := strings.TrimPrefix(c.Param("public_id"), "/")
	publicID, err := url.PathUnescape(raw)
	if err != nil || publicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid public id"})
		return
	}

	if h.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	ctx := c.Request.Context()
	if err := h.uploader.Destroy(ctx, publicID); err != nil {
		logger.Errorf("[image] provider delete failed public_id=%s: %v", publicID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to delete image"})
		return
	}

	m := &imagemodel.Image{}
	deleted, err := m.DeleteByPublicID(ctx, publicID)
	if err != nil {
		logger.Errorf("[image] record delete failed public_id=%s: %v", publicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterRoutes mounts the image surface under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.HandlerList)
	rg.POST("", h.HandlerUpload)
	rg.DELETE("/*public_id", h.HandlerDelete)
}
