package registration

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

func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth, requireAdmin gin.HandlerFunc) {
	grp := r.Group("/api/registrations")

	grp.POST("/:eventID", requireAuth, h.Register)
	grp.DELETE("/:eventID", requireAuth, h.Cancel)
	grp.GET("/check/:eventID", requireAuth, h.Check)
	grp.GET("/mine", requireAuth, h.Mine)

	grp.GET("/event/:eventID", requireAdmin, h.ListForEvent)
}

func (h *Handler) Register(c *gin.Context) {
	userID := c.GetString(httpmw.CtxUserID)

	reg, err := h.service.Register(c.Request.Context(), c.Param("eventID"), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, ErrEventFull):
			c.JSON(http.StatusConflict, gin.H{"error": "event is full"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"registration": reg})
}

func (h *Handler) Cancel(c *gin.Context) {
	userID := c.GetString(httpmw.CtxUserID)

	err := h.service.Cancel(c.Request.Context(), c.Param("eventID"), userID)
	if err != nil {
		if errors.Is(err, ErrNotRegistered) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cancellation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (h *Handler) Check(c *gin.Context) {
	userID := c.GetString(httpmw.CtxUserID)

	registered, err := h.service.IsRegistered(c.Request.Context(), c.Param("eventID"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isRegistered": registered})
}

func (h *Handler) Mine(c *gin.Context) {
	userID := c.GetString(httpmw.CtxUserID)

	regs, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list registrations"})
		return
	}
	if regs == nil {
		regs = []Registration{}
	}

	c.JSON(http.StatusOK, gin.H{"registrations": regs})
}

func (h *Handler) ListForEvent(c *gin.Context) {
	attendees, err := h.service.ListForEvent(c.Request.Context(), c.Param("eventID"))
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list attendees"})
		return
	}
	if attendees == nil {
		attendees = []Attendee{}
	}

	c.JSON(http.StatusOK, gin.H{"attendees": attendees})
}
