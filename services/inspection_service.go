package services

import (
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fleetportal-backend/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InspectionOptions tunes the validation pipeline.
// StrictResponses rejects the whole request when a nested item response is
// malformed; the default mirrors the lenient legacy behavior of skipping it.
type InspectionOptions struct {
	UploadDir       string
	StrictResponses bool
}

// InspectionService runs the validation and transition pipeline for the
// inspection aggregate. Every create/update commits in one transaction.
type InspectionService struct {
	db   *gorm.DB
	log  *zap.Logger
	opts InspectionOptions
}

// NewInspectionService creates the service
func NewInspectionService(db *gorm.DB, log *zap.Logger, opts InspectionOptions) *InspectionService {
	if opts.UploadDir == "" {
		opts.UploadDir = "uploads/inspections"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &InspectionService{db: db, log: log, opts: opts}
}

// preparedResponse is a fully validated item response awaiting persistence
type preparedResponse struct {
	item     models.ChecklistItem
	result   string
	severity int
	notes    string
	photos   []map[string]interface{}
}

// Create validates a normalized payload and persists the aggregate.
// The customer is always derived from the vehicle, never taken from the caller.
func (s *InspectionService) Create(caller *models.PortalUser, payload map[string]interface{}, uploads []*multipart.FileHeader) (*models.Inspection, error) {
	vehicle, err := s.resolveVehicle(payload["vehicle"])
	if err != nil {
		return nil, err
	}

	inspector, err := s.resolveInspector(caller, payload["inspector"])
	if err != nil {
		return nil, err
	}

	assignment, err := s.resolveAssignment(payload["assignment"])
	if err != nil {
		return nil, err
	}
	if err := checkAssignmentConsistency(assignment, vehicle.ID, inspector.ID); err != nil {
		return nil, err
	}

	status, err := normalizeStatus(payload["status"], models.InspectionStatusDraft)
	if err != nil {
		return nil, err
	}

	prepared, err := s.prepareResponses(payload["item_responses"])
	if err != nil {
		return nil, err
	}

	inspection := &models.Inspection{
		VehicleID:       vehicle.ID,
		CustomerID:      vehicle.CustomerID,
		InspectorID:     inspector.ID,
		Status:          status,
		StartedAt:       parseTimeValue(payload["started_at"]),
		OdometerReading: clampOdometer(payload["odometer_reading"]),
		GeneralNotes:    stringValue(payload["general_notes"]),
	}
	if assignment != nil {
		inspection.AssignmentID = &assignment.ID
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(inspection).Error; err != nil {
			return errors.WithStack(err)
		}
		return s.persistResponses(tx, inspection.ID, prepared, uploads)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(inspection.ID)
}

// Update applies a normalized payload to an existing inspection. The response
// set is deleted and replaced as a whole; there is no per-response patching.
func (s *InspectionService) Update(inspection *models.Inspection, payload map[string]interface{}, uploads []*multipart.FileHeader) (*models.Inspection, error) {
	vehicleID := inspection.VehicleID
	customerID := inspection.CustomerID
	if _, ok := payload["vehicle"]; ok {
		vehicle, err := s.resolveVehicle(payload["vehicle"])
		if err != nil {
			return nil, err
		}
		vehicleID = vehicle.ID
		customerID = vehicle.CustomerID
	}

	inspectorID := inspection.InspectorID
	if _, ok := payload["inspector"]; ok {
		inspector, err := s.resolveInspector(nil, payload["inspector"])
		if err != nil {
			return nil, err
		}
		inspectorID = inspector.ID
	}

	assignmentID := inspection.AssignmentID
	if _, ok := payload["assignment"]; ok {
		assignment, err := s.resolveAssignment(payload["assignment"])
		if err != nil {
			return nil, err
		}
		if assignment == nil {
			assignmentID = nil
		} else {
			assignmentID = &assignment.ID
		}
	}
	if assignmentID != nil {
		var assignment models.VehicleAssignment
		if err := s.db.First(&assignment, *assignmentID).Error; err != nil {
			return nil, NewValidationError("assignment", "Invalid assignment ID")
		}
		if err := checkAssignmentConsistency(&assignment, vehicleID, inspectorID); err != nil {
			return nil, err
		}
	}

	status := inspection.Status
	if _, ok := payload["status"]; ok {
		next, err := normalizeStatus(payload["status"], inspection.Status)
		if err != nil {
			return nil, err
		}
		status = next
	}

	prepared, err := s.prepareResponses(payload["item_responses"])
	if err != nil {
		return nil, err
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		inspection.VehicleID = vehicleID
		inspection.CustomerID = customerID
		inspection.InspectorID = inspectorID
		inspection.AssignmentID = assignmentID
		inspection.Status = status
		if _, ok := payload["started_at"]; ok {
			inspection.StartedAt = parseTimeValue(payload["started_at"])
		}
		if _, ok := payload["odometer_reading"]; ok {
			inspection.OdometerReading = clampOdometer(payload["odometer_reading"])
		}
		if _, ok := payload["general_notes"]; ok {
			inspection.GeneralNotes = stringValue(payload["general_notes"])
		}
		if err := tx.Save(inspection).Error; err != nil {
			return errors.WithStack(err)
		}

		// Full replace: drop the old response set (and photos) before writing
		// the new one. Rolls back together with the parent on any failure.
		var oldIDs []uint
		if err := tx.Model(&models.InspectionItemResponse{}).Where("inspection_id = ?", inspection.ID).Pluck("id", &oldIDs).Error; err != nil {
			return errors.WithStack(err)
		}
		if len(oldIDs) > 0 {
			if err := tx.Where("response_id IN ?", oldIDs).Delete(&models.InspectionPhoto{}).Error; err != nil {
				return errors.WithStack(err)
			}
			if err := tx.Where("inspection_id = ?", inspection.ID).Delete(&models.InspectionItemResponse{}).Error; err != nil {
				return errors.WithStack(err)
			}
		}
		return s.persistResponses(tx, inspection.ID, prepared, uploads)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.Get(inspection.ID)
}

// Submit moves a draft/in-progress inspection to submitted, stamps the
// completion time, cascade-completes the linked assignment, and generates
// the customer report.
func (s *InspectionService) Submit(inspection *models.Inspection) error {
	if inspection.Status != models.InspectionStatusDraft && inspection.Status != models.InspectionStatusInProgress {
		return NewValidationError("status", fmt.Sprintf("Cannot submit an inspection in status '%s'.", inspection.Status))
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		inspection.Status = models.InspectionStatusSubmitted
		if inspection.CompletedAt == nil {
			now := time.Now()
			inspection.CompletedAt = &now
		}
		if err := tx.Save(inspection).Error; err != nil {
			return errors.WithStack(err)
		}
		if inspection.AssignmentID != nil {
			err := tx.Model(&models.VehicleAssignment{}).
				Where("id = ?", *inspection.AssignmentID).
				Updates(map[string]interface{}{"status": models.AssignmentStatusCompleted, "updated_at": time.Now()}).Error
			if err != nil {
				return errors.WithStack(err)
			}
		}
		_, err := GenerateCustomerReport(tx, inspection)
		return err
	})
}

// Approve moves a submitted inspection to approved and finalizes the report.
func (s *InspectionService) Approve(inspection *models.Inspection) (*models.CustomerReport, error) {
	if inspection.Status != models.InspectionStatusSubmitted {
		return nil, NewValidationError("status", fmt.Sprintf("Cannot approve an inspection in status '%s'.", inspection.Status))
	}
	var report *models.CustomerReport
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		inspection.Status = models.InspectionStatusApproved
		if err := tx.Save(inspection).Error; err != nil {
			return errors.WithStack(err)
		}
		generated, err := GenerateCustomerReport(tx, inspection)
		if err != nil {
			return err
		}
		now := time.Now()
		generated.PublishedAt = &now
		if err := tx.Save(generated).Error; err != nil {
			return errors.WithStack(err)
		}
		report = generated
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return report, nil
}

// Get loads the full aggregate
func (s *InspectionService) Get(id uint) (*models.Inspection, error) {
	var inspection models.Inspection
	err := s.db.
		Preload("Vehicle").
		Preload("Vehicle.Customer").
		Preload("Customer").
		Preload("Inspector").
		Preload("Assignment").
		Preload("ItemResponses").
		Preload("ItemResponses.ChecklistItem").
		Preload("ItemResponses.Photos").
		Preload("CustomerReport").
		First(&inspection, id).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &inspection, nil
}

func (s *InspectionService) resolveVehicle(value interface{}) (*models.Vehicle, error) {
	id := uintValue(value)
	if id == 0 {
		if value == nil {
			return nil, NewValidationError("vehicle", "Vehicle is required.")
		}
		return nil, NewValidationError("vehicle", "Invalid vehicle ID")
	}
	var vehicle models.Vehicle
	if err := s.db.First(&vehicle, id).Error; err != nil {
		return nil, NewValidationError("vehicle", "Invalid vehicle ID")
	}
	return &vehicle, nil
}

// resolveInspector prefers the caller's own inspector profile so that field
// submissions are always attributed to the authenticated inspector; admins
// creating on someone's behalf pass the inspector reference explicitly.
func (s *InspectionService) resolveInspector(caller *models.PortalUser, value interface{}) (*models.InspectorProfile, error) {
	if caller != nil {
		if own := caller.InspectorProfileFor(s.db); own != nil {
			return own, nil
		}
	}
	if id := uintValue(value); id != 0 {
		var inspector models.InspectorProfile
		if err := s.db.Where("is_active = ?", true).First(&inspector, id).Error; err == nil {
			return &inspector, nil
		}
	}
	return nil, NewValidationError("inspector", "Inspector is required.")
}

func (s *InspectionService) resolveAssignment(value interface{}) (*models.VehicleAssignment, error) {
	if value == nil {
		return nil, nil
	}
	if raw, ok := value.(string); ok && raw == "" {
		return nil, nil
	}
	id := uintValue(value)
	if id == 0 {
		return nil, NewValidationError("assignment", "Invalid assignment ID")
	}
	var assignment models.VehicleAssignment
	if err := s.db.First(&assignment, id).Error; err != nil {
		return nil, NewValidationError("assignment", "Invalid assignment ID")
	}
	return &assignment, nil
}

func checkAssignmentConsistency(assignment *models.VehicleAssignment, vehicleID, inspectorID uint) error {
	if assignment == nil {
		return nil
	}
	if assignment.VehicleID != vehicleID {
		return NewValidationError("assignment", "Assignment vehicle does not match the selected vehicle.").
			Add("vehicle", fmt.Sprintf("Expected vehicle %d, but got %d.", assignment.VehicleID, vehicleID))
	}
	if assignment.InspectorID != inspectorID {
		return NewValidationError("assignment", "Assignment inspector does not match the selected inspector.").
			Add("inspector", fmt.Sprintf("Expected inspector %d, but got %d.", assignment.InspectorID, inspectorID))
	}
	return nil
}

// prepareResponses validates every nested response before anything is written.
// A response referencing a missing checklist item is skipped in lenient mode
// and rejects the request in strict mode. The photo-requirement rule always
// rejects the whole request.
func (s *InspectionService) prepareResponses(raw interface{}) ([]preparedResponse, error) {
	entries, _ := raw.([]interface{})
	prepared := make([]preparedResponse, 0, len(entries))

	for position, rawEntry := range entries {
		entry, ok := rawEntry.(map[string]interface{})
		if !ok {
			continue
		}

		itemID := uintValue(entry["checklist_item"])
		var item models.ChecklistItem
		if itemID == 0 || s.db.First(&item, itemID).Error != nil {
			if s.opts.StrictResponses {
				return nil, NewValidationError("item_responses", fmt.Sprintf("Invalid checklist item ID in response %d.", position))
			}
			s.log.Warn("skipping item response with invalid checklist item",
				zap.Int("position", position),
				zap.Any("checklist_item", entry["checklist_item"]))
			continue
		}

		result := normalizeResult(entry["result"])
		photos := photoEntries(entry["photos"])

		if result == models.ResultFail && item.RequiresPhoto && len(photos) == 0 {
			return nil, NewValidationError("item_responses", "Photo evidence is required for failed items that require a photo.")
		}

		prepared = append(prepared, preparedResponse{
			item:     item,
			result:   result,
			severity: clampSeverity(entry["severity"]),
			notes:    stringValue(entry["notes"]),
			photos:   photos,
		})
	}
	return prepared, nil
}

// persistResponses writes each response with its photos as one unit. A failed
// photo decode is logged and skipped rather than retried; it never aborts the
// surrounding transaction.
func (s *InspectionService) persistResponses(tx *gorm.DB, inspectionID uint, prepared []preparedResponse, uploads []*multipart.FileHeader) error {
	fileIndex := 0
	for _, response := range prepared {
		record := models.InspectionItemResponse{
			InspectionID:    inspectionID,
			ChecklistItemID: response.item.ID,
			Result:          response.result,
			Severity:        response.severity,
			Notes:           response.notes,
		}
		if err := tx.Create(&record).Error; err != nil {
			return errors.WithStack(err)
		}

		for _, photo := range response.photos {
			image := photo["image"]
			if image == nil && truthy(photo["is_local_file"]) && fileIndex < len(uploads) {
				// Positional match against the aggregated upload pool for
				// clients that send files under a shared field name.
				image = uploads[fileIndex]
				fileIndex++
			}

			storedPath, err := s.storeImage(image)
			if err != nil {
				s.log.Error("failed to store inspection photo",
					zap.Uint("response_id", record.ID),
					zap.Error(err))
				continue
			}
			if storedPath == "" {
				continue
			}

			photoRecord := models.InspectionPhoto{
				ResponseID: record.ID,
				Image:      storedPath,
				Caption:    stringValue(photo["caption"]),
			}
			if err := tx.Create(&photoRecord).Error; err != nil {
				return errors.WithStack(err)
			}
		}
	}
	return nil
}

// storeImage normalizes the three accepted photo shapes: an uploaded file, a
// data-URI string, or a plain path/URL string kept verbatim.
func (s *InspectionService) storeImage(image interface{}) (string, error) {
	switch img := image.(type) {
	case *multipart.FileHeader:
		return s.saveUpload(img)
	case string:
		if strings.HasPrefix(img, "data:") {
			return s.saveDataURI(img)
		}
		return img, nil
	}
	return "", nil
}

func (s *InspectionService) saveUpload(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.opts.UploadDir, 0755); err != nil {
		return "", errors.Wrap(err, "create upload directory")
	}
	name := fmt.Sprintf("photo_%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	path := filepath.Join(s.opts.UploadDir, name)
	if err := fasthttp.SaveMultipartFile(file, path); err != nil {
		return "", errors.Wrap(err, "save uploaded photo")
	}
	return path, nil
}

func (s *InspectionService) saveDataURI(dataURI string) (string, error) {
	meta, encoded, found := strings.Cut(dataURI, ";base64,")
	if !found {
		return "", errors.Errorf("unsupported data URI")
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", errors.Wrap(err, "decode data URI photo")
	}
	ext := "bin"
	if slash := strings.LastIndex(meta, "/"); slash != -1 {
		ext = meta[slash+1:]
	}
	if err := os.MkdirAll(s.opts.UploadDir, 0755); err != nil {
		return "", errors.Wrap(err, "create upload directory")
	}
	name := fmt.Sprintf("photo_%s.%s", uuid.NewString(), ext)
	path := filepath.Join(s.opts.UploadDir, name)
	if err := os.WriteFile(path, decoded, 0644); err != nil {
		return "", errors.Wrap(err, "write decoded photo")
	}
	return path, nil
}

func photoEntries(raw interface{}) []map[string]interface{} {
	list, _ := raw.([]interface{})
	photos := make([]map[string]interface{}, 0, len(list))
	for _, item := range list {
		if photo, ok := item.(map[string]interface{}); ok {
			photos = append(photos, photo)
		}
	}
	return photos
}

func normalizeStatus(value interface{}, fallback string) (string, error) {
	status := stringValue(value)
	if status == "" {
		return fallback, nil
	}
	switch status {
	case models.InspectionStatusDraft, models.InspectionStatusInProgress,
		models.InspectionStatusSubmitted, models.InspectionStatusApproved:
		return status, nil
	}
	return "", NewValidationError("status", fmt.Sprintf("'%s' is not a valid status.", status))
}

// normalizeResult defaults anything outside the known result set to "pass"
func normalizeResult(value interface{}) string {
	switch stringValue(value) {
	case models.ResultFail:
		return models.ResultFail
	case models.ResultNA:
		return models.ResultNA
	default:
		return models.ResultPass
	}
}

// clampSeverity clamps into [1,5]; unparseable input falls back to 1
func clampSeverity(value interface{}) int {
	severity, ok := intValue(value)
	if !ok {
		return 1
	}
	if severity < 1 {
		return 1
	}
	if severity > 5 {
		return 5
	}
	return severity
}

// clampOdometer never rejects: unparseable or negative readings become 0
func clampOdometer(value interface{}) int {
	reading, ok := intValue(value)
	if !ok || reading < 0 {
		return 0
	}
	return reading
}

func parseTimeValue(value interface{}) *time.Time {
	raw := stringValue(value)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}

func stringValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func intValue(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func uintValue(value interface{}) uint {
	parsed, ok := intValue(value)
	if !ok || parsed <= 0 {
		return 0
	}
	return uint(parsed)
}
