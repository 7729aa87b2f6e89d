package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	viewerID := getViewerID(c)

	var req struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		DueDate     string              `json:"due_date"` // RFC3339
		Priority    models.TaskPriority `json:"priority"` // low|medium|high
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var due *time.Time
	if req.DueDate != "" {
		t, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			log.Printf("[task][create][err] invalid due_date=%q: %v", req.DueDate, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date (RFC3339)"})
			return
		}
		due = &t
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Priority:    req.Priority,
	}
	created, err := h.service.Create(c.Request.Context(), viewerID, task)
	if err != nil {
		log.Printf("[task][create][err] viewer=%d: %v", viewerID, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d owner=%d title=%q", created.ID, created.OwnerID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// @Summary      List visible tasks
// @Description  Owned and shared tasks merged, with sidebar counters and list shaping
// @Tags         Tasks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	viewerID := getViewerID(c)
	log.Printf("[task][list] call by viewer=%d q=%v", viewerID, c.Request.URL.RawQuery)

	tasks, err := h.service.VisibleTasks(c.Request.Context(), viewerID)
	if err != nil {
		log.Printf("[task][list][err] viewer=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}

	loc := viewerLocation(c)
	now := time.Now()
	counts := services.CountTasks(tasks, now, loc)

	q := services.ListQuery{
		Search:   c.Query("search"),
		Status:   models.TaskStatus(c.Query("status")),
		Priority: models.TaskPriority(c.Query("priority")),
		Quick:    c.Query("filter"),
		SortBy:   c.DefaultQuery("sort_by", "due_date"),
	}
	filtered := services.FilterTasks(tasks, q, now, loc)
	services.SortTasks(filtered, q.SortBy)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(services.DefaultPageSize)))
	pageTasks, total := services.PaginateTasks(filtered, page, perPage)

	log.Printf("[task][list][ok] viewer=%d visible=%d filtered=%d", viewerID, len(tasks), total)
	c.JSON(http.StatusOK, gin.H{
		"tasks":    pageTasks,
		"total":    total,
		"page":     page,
		"per_page": perPage,
		"counts":   counts,
	})
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.service.ResolveView(c.Request.Context(), viewerID, id)
	if err != nil {
		log.Printf("[task][getByID][err] viewer=%d id=%d: %v", viewerID, id, err)
		respondServiceError(c, err)
		return
	}
	// suggested quick-cycle target; presentation hint only
	c.JSON(http.StatusOK, gin.H{
		"task":        view,
		"next_status": services.NextStatus(view.Status),
	})
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		DueDate     *string              `json:"due_date"` // RFC3339, "" clears
		Priority    *models.TaskPriority `json:"priority"`
		Status      *models.TaskStatus   `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := &models.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			patch.ClearDue = true
		} else {
			t, err := time.Parse(time.RFC3339, *req.DueDate)
			if err != nil {
				log.Printf("[task][update][err] invalid due_date=%q: %v", *req.DueDate, err)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date"})
				return
			}
			patch.DueDate = &t
		}
	}

	updated, err := h.service.Update(c.Request.Context(), viewerID, id, patch)
	if err != nil {
		log.Printf("[task][update][err] viewer=%d id=%d: %v", viewerID, id, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, updated)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), viewerID, id); err != nil {
		log.Printf("[task][delete][err] viewer=%d id=%d: %v", viewerID, id, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/status { "to": "in_progress" }
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		To models.TaskStatus `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Printf("[task][status][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateStatus(c.Request.Context(), viewerID, id, body.To)
	if err != nil {
		log.Printf("[task][status][err] viewer=%d id=%d to=%q: %v", viewerID, id, body.To, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, body.To)
	c.JSON(http.StatusOK, updated)
}

// POST /tasks/:id/toggle — complete/reopen shortcut
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	viewerID := getViewerID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	updated, err := h.service.ToggleComplete(c.Request.Context(), viewerID, id)
	if err != nil {
		log.Printf("[task][toggle][err] viewer=%d id=%d: %v", viewerID, id, err)
		respondServiceError(c, err)
		return
	}
	log.Printf("[task][toggle][ok] id=%d new=%q", id, updated.Status)
	c.JSON(http.StatusOK, updated)
}
