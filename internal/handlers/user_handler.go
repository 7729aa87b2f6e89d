package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

type UserHandler struct {
	users  services.UserService
	resets services.PasswordResetService
}

func NewUserHandler(users services.UserService, resets services.PasswordResetService) *UserHandler {
	return &UserHandler{users: users, resets: resets}
}

// @Summary      Register a new account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Profile
// @Failure      409  {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.Register(c.Request.Context(), &req)
	if err != nil {
		log.Printf("[user][register][err] email=%q: %v", req.Email, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[user][register][ok] id=%d email=%q", profile.ID, profile.Email)
	c.JSON(http.StatusCreated, profile)
}

// GET /profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := getViewerID(c)

	profile, err := h.users.GetByID(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("[user][profile][err] id=%d: %v", viewerID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	viewerID := getViewerID(c)

	var req struct {
		FullName       *string `json:"full_name"`
		AvatarURL      *string `json:"avatar_url"`
		NotifyTelegram *bool   `json:"notify_telegram"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), viewerID, req.FullName, req.AvatarURL, req.NotifyTelegram)
	if err != nil {
		log.Printf("[user][profile][update][err] id=%d: %v", viewerID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[user][profile][update][ok] id=%d", viewerID)
	c.JSON(http.StatusOK, profile)
}

// POST /password-reset/request
// Always answers 200 so the endpoint can't be used to probe for accounts.
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resets.RequestReset(c.Request.Context(), req.Email); err != nil {
		log.Printf("[user][resetRequest][err] email=%q: %v", req.Email, err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "if the account exists, a reset email has been sent"})
}

// POST /password-reset/confirm
func (h *UserHandler) ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.resets.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		log.Printf("[user][resetConfirm][err] %v", err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[user][resetConfirm][ok]")
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
