package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/Devansh2835/EventSpark/internal/httpmw"
	"github.com/Devansh2835/EventSpark/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service    *Service
	cookieOpts session.CookieOptions
}

func NewHandler(service *Service, cookieOpts session.CookieOptions) *Handler {
	return &Handler{
		service:    service,
		cookieOpts: cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter, requireAuth gin.HandlerFunc) {
	grp := r.Group("/api/auth")

	grp.POST("/register", h.Register)
	grp.POST("/verify-otp", h.VerifyOTP)
	grp.POST("/resend-otp", h.ResendOTP)
	grp.POST("/login", h.Login)
	grp.POST("/logout", h.Logout)

	grp.GET("/me", requireAuth, h.Me)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "otp_sent"})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (h *Handler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, sess, err := h.service.VerifyOTP(c.Request.Context(), req.Email, req.Code, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidOTP), errors.Is(err, ErrOTPExpired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, ErrTooManyOTPAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
		}
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"status": "verified",
		"user":   userJSON(u),
	})
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

func (h *Handler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.service.ResendOTP(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"error": "account already verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not resend otp"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "otp_sent"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, sess, err := h.service.Login(c.Request.Context(), req.Email, req.Password, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "email not verified"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"status": "logged_in",
		"user":   userJSON(u),
	})
}

func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Request.Cookie(session.CookieName); err == nil {
		_ = h.service.Logout(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, h.cookieOpts)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(httpmw.CtxUserID)

	u, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(*u)})
}

func userJSON(u User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}
