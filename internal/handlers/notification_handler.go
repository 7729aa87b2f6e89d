package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

type NotificationHandler struct {
	notifications services.NotificationService
}

func NewNotificationHandler(notifications services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// @Summary      Recent notifications
// @Description  Newest first, capped at the feed size
// @Tags         Notifications
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	viewerID := getViewerID(c)

	items, err := h.notifications.List(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("[notif][list][err] user=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve notifications"})
		return
	}

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items, "unread": unread})
}

// POST /notifications/:id/read — idempotent
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(c.Request.Context(), viewerID, id); err != nil {
		log.Printf("[notif][read][err] id=%d user=%d: %v", id, viewerID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	viewerID := getViewerID(c)

	if err := h.notifications.MarkAllRead(c.Request.Context(), viewerID); err != nil {
		log.Printf("[notif][readAll][err] user=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all marked as read"})
}

// @Summary      Invite a user to a task
// @Description  Creates a pending invitation; access is granted only after accept
// @Tags         Invitations
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.TaskInvitation
// @Router       /tasks/{id}/invitations [post]
func (h *NotificationHandler) Invite(c *gin.Context) {
	viewerID := getViewerID(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Email      string                 `json:"email" binding:"required"`
		Permission models.SharePermission `json:"permission"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Permission == "" {
		req.Permission = models.PermissionView
	}

	inv, err := h.notifications.Invite(c.Request.Context(), viewerID, taskID, req.Email, req.Permission)
	if err != nil {
		log.Printf("[invite][create][err] task=%d by=%d to=%q: %v", taskID, viewerID, req.Email, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[invite][create][ok] id=%d task=%d invitee=%d", inv.ID, inv.TaskID, inv.InviteeID)
	c.JSON(http.StatusCreated, inv)
}

// POST /invitations/:id/accept
func (h *NotificationHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

// POST /invitations/:id/reject
func (h *NotificationHandler) Reject(c *gin.Context) {
	h.respond(c, false)
}

func (h *NotificationHandler) respond(c *gin.Context, accept bool) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	inv, err := h.notifications.RespondInvitation(c.Request.Context(), viewerID, id, accept)
	if err != nil {
		log.Printf("[invite][respond][err] id=%d user=%d accept=%t: %v", id, viewerID, accept, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[invite][respond][ok] id=%d status=%s", inv.ID, inv.Status)
	c.JSON(http.StatusOK, inv)
}
