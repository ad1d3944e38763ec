package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"mime/multipart"
	"os/exec"
	"strconv"
	"time"

	"fleetportal-backend/models"
	"fleetportal-backend/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InspectionController exposes the inspection workflow: scoped reads,
// create/update through the normalization pipeline, the submit/approve
// transitions, and the customer-facing report renderings.
type InspectionController struct {
	DB      *gorm.DB
	Service *services.InspectionService
	Log     *zap.Logger
}

// NewInspectionController creates a new InspectionController instance
func NewInspectionController(db *gorm.DB, service *services.InspectionService, log *zap.Logger) *InspectionController {
	if log == nil {
		log = zap.NewNop()
	}
	return &InspectionController{DB: db, Service: service, Log: log}
}

// InspectionListEntry is the trimmed list representation
type InspectionListEntry struct {
	ID                 uint       `json:"id"`
	Reference          string     `json:"reference"`
	Vehicle            uint       `json:"vehicle"`
	VehicleVIN         string     `json:"vehicle_vin"`
	Customer           uint       `json:"customer"`
	CustomerName       string     `json:"customer_name"`
	Inspector          uint       `json:"inspector"`
	Status             string     `json:"status"`
	StartedAt          *time.Time `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	OdometerReading    int        `json:"odometer_reading"`
	CriticalIssueCount int        `json:"critical_issue_count"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ListInspections returns the inspections visible to the caller
func (ic *InspectionController) ListInspections(c *fiber.Ctx) error {
	profile := currentProfile(c, ic.DB)

	query := services.ScopeInspections(ic.DB, ic.DB.
		Preload("Vehicle").
		Preload("Customer").
		Preload("ItemResponses"), profile)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var inspections []models.Inspection
	if err := query.Order("id DESC").Find(&inspections).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inspections"})
	}

	entries := make([]InspectionListEntry, 0, len(inspections))
	for _, inspection := range inspections {
		critical := 0
		for _, response := range inspection.ItemResponses {
			if response.Result == models.ResultFail {
				critical++
			}
		}
		entries = append(entries, InspectionListEntry{
			ID:                 inspection.ID,
			Reference:          inspection.Reference,
			Vehicle:            inspection.VehicleID,
			VehicleVIN:         inspection.Vehicle.VIN,
			Customer:           inspection.CustomerID,
			CustomerName:       inspection.Customer.LegalName,
			Inspector:          inspection.InspectorID,
			Status:             inspection.Status,
			StartedAt:          inspection.StartedAt,
			CompletedAt:        inspection.CompletedAt,
			OdometerReading:    inspection.OdometerReading,
			CriticalIssueCount: critical,
			CreatedAt:          inspection.CreatedAt,
		})
	}
	return c.JSON(entries)
}

// GetInspection returns the full aggregate when visible to the caller
func (ic *InspectionController) GetInspection(c *fiber.Ctx) error {
	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}
	full, err := ic.Service.Get(inspection.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inspection"})
	}
	return c.JSON(full)
}

// CreateInspection normalizes the request body and runs the creation pipeline
func (ic *InspectionController) CreateInspection(c *fiber.Ctx) error {
	profile := requireInspectorOrAdmin(c, ic.DB)
	if profile == nil {
		return forbidden(c)
	}

	payload, uploads, err := ic.decodePayload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	inspection, err := ic.Service.Create(profile, payload, uploads)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(inspection)
}

// UpdateInspection normalizes the request body and fully replaces the response set
func (ic *InspectionController) UpdateInspection(c *fiber.Ctx) error {
	profile := requireInspectorOrAdmin(c, ic.DB)
	if profile == nil {
		return forbidden(c)
	}

	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}

	payload, uploads, err := ic.decodePayload(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := ic.Service.Update(inspection, payload, uploads)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(updated)
}

// SubmitInspection finalizes the inspection for customer review
func (ic *InspectionController) SubmitInspection(c *fiber.Ctx) error {
	if requireInspectorOrAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}

	if err := ic.Service.Submit(inspection); err != nil {
		return fail(c, err)
	}
	full, err := ic.Service.Get(inspection.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load inspection"})
	}
	return c.JSON(full)
}

// ApproveInspection publishes the report; admin only
func (ic *InspectionController) ApproveInspection(c *fiber.Ctx) error {
	if requireAdmin(c, ic.DB) == nil {
		return forbidden(c)
	}

	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}

	report, err := ic.Service.Approve(inspection)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": models.InspectionStatusApproved, "report": report})
}

// GetReportHTML renders the customer report as a printable HTML page
func (ic *InspectionController) GetReportHTML(c *fiber.Ctx) error {
	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}

	html, err := ic.renderReport(inspection.ID)
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.SendString(html)
}

// GetReportPDF converts the rendered report to PDF via wkhtmltopdf. When the
// converter binary is not installed the endpoint answers 503 so clients can
// fall back to the HTML rendering.
func (ic *InspectionController) GetReportPDF(c *fiber.Ctx) error {
	inspection, errResp := ic.loadScoped(c)
	if inspection == nil {
		return errResp
	}

	binary, err := exec.LookPath("wkhtmltopdf")
	if err != nil {
		return c.Status(503).JSON(fiber.Map{
			"error": "PDF rendering is unavailable: wkhtmltopdf is not installed. Use the HTML report instead.",
		})
	}

	html, err := ic.renderReport(inspection.ID)
	if err != nil {
		return fail(c, err)
	}

	cmd := exec.Command(binary, "-q", "-", "-")
	cmd.Stdin = bytes.NewBufferString(html)
	var pdf bytes.Buffer
	cmd.Stdout = &pdf
	if err := cmd.Run(); err != nil {
		ic.Log.Error("wkhtmltopdf failed", zap.Uint("inspection_id", inspection.ID), zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render PDF"})
	}

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="report_`+inspection.Reference+`.pdf"`)
	return c.Send(pdf.Bytes())
}

// loadScoped resolves the :id parameter within the caller's visibility. The
// returned error value is the already-written fiber response.
func (ic *InspectionController) loadScoped(c *fiber.Ctx) (*models.Inspection, error) {
	profile := currentProfile(c, ic.DB)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return nil, c.Status(400).JSON(fiber.Map{"error": "Invalid inspection ID"})
	}

	var inspection models.Inspection
	query := services.ScopeInspections(ic.DB, ic.DB, profile)
	if err := query.First(&inspection, id).Error; err != nil {
		return nil, c.Status(404).JSON(fiber.Map{"error": "Inspection not found"})
	}
	return &inspection, nil
}

// decodePayload normalizes either wire shape into the canonical payload map
func (ic *InspectionController) decodePayload(c *fiber.Ctx) (map[string]interface{}, []*multipart.FileHeader, error) {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		return services.NormalizeMultipartPayload(form), services.SpareUploads(form), nil
	}

	var body map[string]interface{}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return nil, nil, err
	}
	return services.NormalizeJSONPayload(body), nil, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Inspection Report {{.Inspection.Reference}}</title>
<style>
body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
h1 { border-bottom: 2px solid #444; padding-bottom: 8px; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
.fail { color: #b00020; font-weight: bold; }
.summary { white-space: pre-line; margin: 16px 0; }
</style>
</head>
<body>
<h1>Inspection Report {{.Inspection.Reference}}</h1>
<p><strong>Vehicle:</strong> {{.Inspection.Vehicle.VIN}} ({{.Inspection.Vehicle.LicensePlate}})</p>
<p><strong>Customer:</strong> {{.Inspection.Customer.LegalName}}</p>
<p><strong>Status:</strong> {{.Inspection.Status}}</p>
{{if .Report}}
<div class="summary">{{.Report.Summary}}</div>
<p><strong>Recommended actions:</strong> {{.Report.RecommendedActions}}</p>
{{end}}
<table>
<tr><th>Item</th><th>Result</th><th>Severity</th><th>Notes</th></tr>
{{range .Inspection.ItemResponses}}
<tr>
<td>{{.ChecklistItem.Title}}</td>
<td{{if eq .Result "fail"}} class="fail"{{end}}>{{.Result}}</td>
<td>{{.Severity}}/5</td>
<td>{{.Notes}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`))

func (ic *InspectionController) renderReport(inspectionID uint) (string, error) {
	inspection, err := ic.Service.Get(inspectionID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = reportTemplate.Execute(&buf, map[string]interface{}{
		"Inspection": inspection,
		"Report":     inspection.CustomerReport,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
