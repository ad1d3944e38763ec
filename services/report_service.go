package services

import (
	"fmt"
	"strings"

	"fleetportal-backend/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GenerateCustomerReport derives the customer-facing summary from the
// inspection's responses. It is invoked on both submit and approve and is
// idempotent: re-invocation overwrites the previous summary in place.
func GenerateCustomerReport(tx *gorm.DB, inspection *models.Inspection) (*models.CustomerReport, error) {
	var responses []models.InspectionItemResponse
	err := tx.Preload("ChecklistItem").
		Where("inspection_id = ?", inspection.ID).
		Order("id").
		Find(&responses).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	summary, actions := buildReportText(responses)

	var report models.CustomerReport
	err = tx.Where("inspection_id = ?", inspection.ID).First(&report).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(err)
		}
		report = models.CustomerReport{InspectionID: inspection.ID}
	}
	report.Summary = summary
	report.RecommendedActions = actions
	if err := tx.Save(&report).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return &report, nil
}

func buildReportText(responses []models.InspectionItemResponse) (string, string) {
	var failed []models.InspectionItemResponse
	for _, response := range responses {
		if response.Result == models.ResultFail {
			failed = append(failed, response)
		}
	}

	if len(failed) == 0 {
		return fmt.Sprintf("No critical issues identified across %d checklist items.", len(responses)),
			"Vehicle is cleared for continued operation."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d critical issue(s) identified:\n", len(failed))
	for _, response := range failed {
		fmt.Fprintf(&sb, "- %s (severity %d/5)", response.ChecklistItem.Title, response.Severity)
		if response.Notes != "" {
			fmt.Fprintf(&sb, ": %s", response.Notes)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n"),
		"Schedule corrective maintenance for the flagged items before returning the vehicle to service."
}
