package event

import (
	"errors"
	"net/http"

	"github.com/Devansh2835/EventSpark/internal/httpmw"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public reads and the admin-gated writes.
// requireAdmin is attached per route; it performs the full session check
// itself and does not rely on any other gate running first.
func (h *Handler) RegisterRoutes(r gin.IRouter, requireAdmin gin.HandlerFunc) {
	grp := r.Group("/api/events")

	grp.GET("", h.List)
	grp.GET("/:id", h.Get)

	grp.POST("", requireAdmin, h.Create)
	grp.PUT("/:id", requireAdmin, h.Update)
	grp.DELETE("/:id", requireAdmin, h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list events"})
		return
	}
	if events == nil {
		events = []Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) Get(c *gin.Context) {
	e, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *Handler) Create(c *gin.Context) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	createdBy := c.GetString(httpmw.CtxUserID)

	e, err := h.service.Create(c.Request.Context(), d, createdBy)
	if err != nil {
		if errors.Is(err, ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": e})
}

func (h *Handler) Update(c *gin.Context) {
	var d Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	e, err := h.service.Update(c.Request.Context(), c.Param("id"), d)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, ErrInvalidEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"event": e})
}

func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
