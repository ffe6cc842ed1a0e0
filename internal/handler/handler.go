package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LongVanNgo/CAPTCHA-solver/internal/domain"
	"github.com/LongVanNgo/CAPTCHA-solver/internal/service"
	"github.com/LongVanNgo/CAPTCHA-solver/pkg/resample"
)

type Handler struct {
	service service.ImageService
	log     *zap.Logger
}

func NewHandler(service service.ImageService, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// Register mounts the routes on router.
func (h *Handler) Register(router gin.IRouter) {
	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/filters", h.ListFilters)
		api.POST("/resize", h.ResizeImages)
		api.GET("/images", h.ListImages)
		api.POST("/publish", h.PublishImages)
		api.GET("/published", h.ListPublished)
	}
}

func (h *Handler) ResizeImages(c *gin.Context) {
	report, err := h.service.ResizeImages(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to resize images", zap.Error(err))
		body := gin.H{"error": err.Error()}
		if report != nil {
			body["report"] = report
		}
		c.JSON(statusFor(err), body)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images resized successfully",
		"report":  report,
	})
}

func (h *Handler) ListImages(c *gin.Context) {
	images, err := h.service.ListImages(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list images", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

func (h *Handler) PublishImages(c *gin.Context) {
	objects, err := h.service.PublishImages(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to publish images", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Images published successfully",
		"objects": objects,
	})
}

func (h *Handler) ListPublished(c *gin.Context) {
	keys, err := h.service.ListPublished(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list published images", zap.Error(err))
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

func (h *Handler) ListFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"filters": resample.Names(),
		"default": resample.DefaultFilter,
	})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func statusFor(err error) int {
	var (
		pathErr   *domain.PathError
		decodeErr *domain.DecodeError
	)
	switch {
	case errors.As(err, &pathErr):
		return http.StatusBadRequest
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPublishDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
