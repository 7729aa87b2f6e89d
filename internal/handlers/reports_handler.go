package handlers

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"taskboard/internal/repositories"
	"taskboard/internal/services"
)

type ReportsHandler struct {
	reports *services.ReportService
	users   repositories.UserRepository
}

func NewReportsHandler(reports *services.ReportService, users repositories.UserRepository) *ReportsHandler {
	return &ReportsHandler{reports: reports, users: users}
}

// @Summary      Task summary for the viewer
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.Summary
// @Router       /reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	viewerID := getViewerID(c)

	sum, err := h.reports.GetSummary(c.Request.Context(), viewerID, viewerLocation(c))
	if err != nil {
		log.Printf("[report][summary][err] viewer=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// @Summary      Export visible tasks as PDF
// @Tags         Reports
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /reports/export [get]
func (h *ReportsHandler) Export(c *gin.Context) {
	viewerID := getViewerID(c)

	profile, err := h.users.GetByID(c.Request.Context(), viewerID)
	if err != nil || profile == nil {
		log.Printf("[report][export][err] profile viewer=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
		return
	}

	path, err := h.reports.ExportPDF(c.Request.Context(), viewerID, profile.Email, viewerLocation(c))
	if err != nil {
		log.Printf("[report][export][err] viewer=%d: %v", viewerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export"})
		return
	}

	log.Printf("[report][export][ok] viewer=%d file=%s", viewerID, path)
	c.FileAttachment(path, filepath.Base(path))
}
