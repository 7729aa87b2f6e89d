package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
	"taskboard/internal/services"
)

type ShareHandler struct {
	shares   services.ShareService
	tasks    services.TaskService
	users    repositories.UserRepository
	email    services.EmailService
	telegram *services.TelegramService // nil когда бот выключен
}

func NewShareHandler(shares services.ShareService, tasks services.TaskService, users repositories.UserRepository, email services.EmailService, telegram *services.TelegramService) *ShareHandler {
	return &ShareHandler{shares: shares, tasks: tasks, users: users, email: email, telegram: telegram}
}

// @Summary      Share a task with another account
// @Tags         Shares
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.TaskShare
// @Failure      404  {object}  map[string]string  "recipient not found"
// @Failure      409  {object}  map[string]string  "already shared"
// @Router       /tasks/{id}/shares [post]
func (h *ShareHandler) ShareTask(c *gin.Context) {
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

	share, err := h.shares.ShareTask(c.Request.Context(), viewerID, taskID, req.Email, req.Permission)
	if err != nil {
		log.Printf("[share][create][err] task=%d by=%d to=%q: %v", taskID, viewerID, req.Email, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[share][create][ok] id=%d task=%d to=%d perm=%s", share.ID, share.TaskID, share.SharedWithUserID, share.Permission)

	go h.notifyRecipient(context.Background(), share)

	c.JSON(http.StatusCreated, share)
}

// Почта и телеграм — best effort, ответ клиенту не ждёт.
func (h *ShareHandler) notifyRecipient(ctx context.Context, share *models.TaskShare) {
	view, err := h.tasks.ResolveView(ctx, share.SharedByUserID, share.TaskID)
	if err != nil {
		log.Printf("[share][notify][err] resolve task=%d: %v", share.TaskID, err)
		return
	}
	sharer, err := h.users.GetByID(ctx, share.SharedByUserID)
	if err != nil || sharer == nil {
		log.Printf("[share][notify][err] sharer=%d: %v", share.SharedByUserID, err)
		return
	}
	recipient, err := h.users.GetByID(ctx, share.SharedWithUserID)
	if err != nil || recipient == nil {
		log.Printf("[share][notify][err] recipient=%d: %v", share.SharedWithUserID, err)
		return
	}

	if h.email != nil {
		if err := h.email.SendTaskSharedEmail(recipient.Email, view.Title, sharer.Email, string(share.Permission)); err != nil {
			log.Printf("[share][notify][email][err] to=%q: %v", recipient.Email, err)
		}
	}

	chatID, notify, err := h.users.GetTelegramSettings(ctx, share.SharedWithUserID)
	if err != nil {
		log.Printf("[share][notify][tg][err] settings user=%d: %v", share.SharedWithUserID, err)
		return
	}
	if notify {
		if err := h.telegram.NotifyTaskShared(chatID, &view.Task, sharer.Email, share.Permission); err != nil {
			log.Printf("[share][notify][tg][err] chat=%d: %v", chatID, err)
		}
	}
}

// GET /tasks/:id/shares — owner-only listing with recipient info
func (h *ShareHandler) ListShares(c *gin.Context) {
	viewerID := getViewerID(c)
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}

	shares, err := h.shares.ListShares(c.Request.Context(), viewerID, taskID)
	if err != nil {
		log.Printf("[share][list][err] task=%d by=%d: %v", taskID, viewerID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shares": shares, "total": len(shares)})
}

// PUT /shares/:id { "permission": "edit" }
func (h *ShareHandler) UpdatePermission(c *gin.Context) {
	viewerID := getViewerID(c)
	shareID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Permission models.SharePermission `json:"permission" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	share, err := h.shares.UpdatePermission(c.Request.Context(), viewerID, shareID, req.Permission)
	if err != nil {
		log.Printf("[share][permission][err] id=%d by=%d: %v", shareID, viewerID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[share][permission][ok] id=%d perm=%s", shareID, share.Permission)
	c.JSON(http.StatusOK, share)
}

// DELETE /shares/:id
func (h *ShareHandler) RevokeShare(c *gin.Context) {
	viewerID := getViewerID(c)
	shareID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.shares.RevokeShare(c.Request.Context(), viewerID, shareID); err != nil {
		log.Printf("[share][revoke][err] id=%d by=%d: %v", shareID, viewerID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[share][revoke][ok] id=%d", shareID)
	c.Status(http.StatusNoContent)
}
