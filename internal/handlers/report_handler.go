package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// ReportHandler handles report snapshot requests.
type ReportHandler struct {
	reportService services.ReportServicer
	auditService  services.AuditServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, auditService services.AuditServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService, auditService: auditService}
}

// CreateReportRequest represents the request payload for generating a report.
// Dates are RFC3339 or YYYY-MM-DD; a bare end date covers that whole day.
type CreateReportRequest struct {
	Title     string `json:"title" binding:"required,not_blank" example:"March 2024"`
	StartDate string `json:"startDate" binding:"required" example:"2024-03-01"`
	EndDate   string `json:"endDate" binding:"required" example:"2024-03-31"`
}

// UpdateReportRequest represents the metadata a report update may change.
type UpdateReportRequest struct {
	Title     *string `json:"title" binding:"omitempty,not_blank"`
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// CreateReport handles generating a report snapshot.
// @Summary     Generate a report
// @Description Snapshot the owner's transactions dated within [startDate, endDate]
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateReportRequest true "Report range"
// @Success     201 {object} models.Report "Report created"
// @Failure     400 {object} ErrorResponse "Invalid input or date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	start, err := parseFlexibleTime(req.StartDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	end, err := parseRangeEnd(req.EndDate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), userID, req.Title, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionGenerate, services.AuditResourceReport, report.ID, c.ClientIP(),
		map[string]interface{}{"title": report.Title, "details": len(report.Details)})

	c.JSON(http.StatusCreated, report)
}

// ListReports handles listing the owner's reports.
// @Summary     List reports
// @Description List reports with their details, newest first
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Report "Reports"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, reports)
}

// GetReport handles retrieving one report.
// @Summary     Get report by ID
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Report ID"
// @Success     200 {object} models.Report "Report"
// @Failure     400 {object} ErrorResponse "Invalid report ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Report not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reportID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.reportService.GetReport(c.Request.Context(), userID, reportID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// UpdateReport handles editing report metadata.
// @Summary     Update report
// @Description Change the title or date range. Details are not regenerated.
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string              true "Report ID"
// @Param       request body UpdateReportRequest true "Fields to change"
// @Success     200 {object} models.Report "Updated report"
// @Failure     400 {object} ErrorResponse "Empty update or invalid range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Report not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{id} [put]
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reportID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	patch := services.ReportPatch{Title: req.Title}
	changes := make(map[string]interface{})
	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.StartDate != nil {
		start, err := parseFlexibleTime(*req.StartDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		patch.StartDate = &start
		changes["startDate"] = start.Format(time.RFC3339Nano)
	}
	if req.EndDate != nil {
		end, err := parseRangeEnd(*req.EndDate)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		patch.EndDate = &end
		changes["endDate"] = end.Format(time.RFC3339Nano)
	}

	report, err := h.reportService.UpdateReport(c.Request.Context(), userID, reportID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionUpdate, services.AuditResourceReport, reportID, c.ClientIP(), changes)

	c.JSON(http.StatusOK, report)
}

// DeleteReport handles deleting a report.
// @Summary     Delete report
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Report ID"
// @Success     200 {object} MessageResponse "Report deleted"
// @Failure     400 {object} ErrorResponse "Invalid report ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Report not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{id} [delete]
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reportID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.reportService.DeleteReport(c.Request.Context(), userID, reportID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionDelete, services.AuditResourceReport, reportID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}

// GetReportChart renders a report as a pie chart.
// @Summary     Report chart
// @Description PNG pie chart of detail amounts grouped by category
// @Tags        reports
// @Produce     png
// @Security    BearerAuth
// @Param       id path string true "Report ID"
// @Success     200 {file}   binary "PNG image"
// @Failure     400 {object} ErrorResponse "Invalid report ID or empty report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Report not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/{id}/chart [get]
func (h *ReportHandler) GetReportChart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	reportID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	img, err := h.reportService.ReportChart(c.Request.Context(), userID, reportID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}
