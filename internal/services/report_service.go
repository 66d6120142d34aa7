package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spendwise/internal/charts"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/events"
	"spendwise/internal/models"
)

// reportService generates and manages report snapshots.
type reportService struct {
	db        *gorm.DB
	publisher events.Publisher
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, publisher events.Publisher) ReportServicer {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &reportService{db: db, publisher: publisher}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}
	return nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Start date and end date are required")
	}
	if start.After(end) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

// CreateReport snapshots the owner's transactions dated within [start, end].
func (s *reportService) CreateReport(ctx context.Context, userID, title string, start, end time.Time) (*models.Report, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	start, end = start.UTC(), end.UTC()

	db := s.db.WithContext(ctx)

	var txs []models.Transaction
	if err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("created_at ASC, id ASC").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	labels, err := s.categoryLabels(db, txs)
	if err != nil {
		return nil, err
	}

	details := make([]models.ReportDetail, len(txs))
	for i, tx := range txs {
		label := models.OtherCategoryLabel
		if tx.CategoryID != nil {
			if name, ok := labels[*tx.CategoryID]; ok {
				label = name
			}
		}
		details[i] = models.ReportDetail{
			Position: i,
			Category: label,
			Amount:   tx.Amount.Abs(),
			Type:     tx.Type,
			Note:     tx.Note,
			Date:     tx.Date,
		}
	}

	report := &models.Report{
		UserID:    userID,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Details:   details,
	}
	// The report row and its details are inserted in one transaction.
	if err := db.Create(report).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.ReportGenerated, userID, report.ID))
	return report, nil
}

// categoryLabels resolves every referenced category in a single lookup.
// Categories that are missing or deleted are absent from the result.
func (s *reportService) categoryLabels(db *gorm.DB, txs []models.Transaction) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, tx := range txs {
		if tx.CategoryID == nil {
			continue
		}
		if _, ok := seen[*tx.CategoryID]; !ok {
			seen[*tx.CategoryID] = struct{}{}
			ids = append(ids, *tx.CategoryID)
		}
	}

	labels := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return labels, nil
	}

	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, c := range categories {
		labels[c.ID] = c.Name
	}
	return labels, nil
}

func orderedDetails(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// ListReports returns the owner's reports, newest first.
func (s *reportService) ListReports(ctx context.Context, userID string) ([]models.Report, error) {
	reports := []models.Report{}
	if err := s.db.WithContext(ctx).
		Preload("Details", orderedDetails).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return reports, nil
}

// GetReport returns a report with its details if it belongs to the owner.
func (s *reportService) GetReport(ctx context.Context, userID, reportID string) (*models.Report, error) {
	var report models.Report
	if err := s.db.WithContext(ctx).
		Preload("Details", orderedDetails).
		Where("id = ? AND user_id = ?", reportID, userID).
		First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &report, nil
}

// UpdateReport edits the title and range. Details keep the snapshot taken at
// generation time.
func (s *reportService) UpdateReport(ctx context.Context, userID, reportID string, patch ReportPatch) (*models.Report, error) {
	if patch.IsEmpty() {
		return nil, apperrors.ErrEmptyUpdate
	}
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}

	report, err := s.GetReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	start, end := report.StartDate, report.EndDate
	if patch.StartDate != nil {
		start = patch.StartDate.UTC()
	}
	if patch.EndDate != nil {
		end = patch.EndDate.UTC()
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.StartDate != nil {
		updates["start_date"] = start
	}
	if patch.EndDate != nil {
		updates["end_date"] = end
	}

	if err := s.db.WithContext(ctx).Model(report).Omit(clause.Associations).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.ReportUpdated, userID, report.ID))
	return report, nil
}

// DeleteReport soft-deletes a report and removes its details.
func (s *reportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	var report models.Report
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", reportID, userID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrReportNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.WithContext(ctx).Select("Details").Delete(&report).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	events.PublishQuietly(ctx, s.publisher, events.NewEvent(events.ReportDeleted, userID, report.ID))
	return nil
}

// ReportChart renders the report's details as a PNG pie chart by category.
func (s *reportService) ReportChart(ctx context.Context, userID, reportID string) ([]byte, error) {
	report, err := s.GetReport(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	img, err := charts.CategoryPie(report)
	if err != nil {
		if errors.Is(err, charts.ErrNoData) {
			return nil, apperrors.ErrReportEmpty
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return img, nil
}
