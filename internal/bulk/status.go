package bulk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/models"
	"gorm.io/gorm"
)

// ErrInvalidStatus rejects the whole request before any target is touched.
var ErrInvalidStatus = errors.New("invalid status")

// EnrollmentStore is the capability interface over campus enrollments used
// by the bulk status change.
type EnrollmentStore interface {
	FindForCampus(ctx context.Context, enrollmentID, campusID uuid.UUID) (*models.CampusStudent, error)
	UpdateStatus(ctx context.Context, enrollmentID uuid.UUID, status string) error
}

// StatusChangeResult is one target's terminal state, in request order.
type StatusChangeResult struct {
	StudentID uuid.UUID `json:"student_id"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
}

type StatusReport struct {
	UpdatedCount int                  `json:"updated_count"`
	FailedCount  int                  `json:"failed_count"`
	Details      []StatusChangeResult `json:"details"`
}

// StatusService applies one status value to many enrollment records with the
// same per-item isolation as the provisioning pipeline: each target is
// validated and updated independently, and one bad id never aborts the rest.
type StatusService struct {
	store EnrollmentStore
	audit AuditRecorder
}

func NewStatusService(store EnrollmentStore, audit AuditRecorder) *StatusService {
	return &StatusService{store: store, audit: audit}
}

// Run validates the status once (a whole-request precondition), then updates
// each target independently. Ownership is checked per target: ids outside
// the requester's campus fail individually instead of failing the request.
func (s *StatusService) Run(ctx context.Context, requester Requester, campusID uuid.UUID, targetIDs []uuid.UUID, status string) (*StatusReport, error) {
	if !models.ValidStudentStatus(status) {
		return nil, ErrInvalidStatus
	}

	report := &StatusReport{Details: make([]StatusChangeResult, 0, len(targetIDs))}
	for _, id := range targetIDs {
		if _, err := s.store.FindForCampus(ctx, id, campusID); err != nil {
			report.FailedCount++
			reason := err.Error()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				reason = "student not found in this campus"
			}
			report.Details = append(report.Details, StatusChangeResult{
				StudentID: id, Status: StatusFailed, Reason: reason,
			})
			continue
		}
		if err := s.store.UpdateStatus(ctx, id, status); err != nil {
			report.FailedCount++
			report.Details = append(report.Details, StatusChangeResult{
				StudentID: id, Status: StatusFailed, Reason: err.Error(),
			})
			continue
		}
		report.UpdatedCount++
		report.Details = append(report.Details, StatusChangeResult{
			StudentID: id, Status: StatusSuccess,
		})
	}

	notes := fmt.Sprintf("Bulk status change to %s: %d updated, %d failed",
		status, report.UpdatedCount, report.FailedCount)
	if err := s.audit.Record(ctx, requester.ID, models.ActionBulkStatus, campusID.String(), notes); err != nil {
		slog.Error("failed to record bulk status audit entry",
			"error", err,
			"actor_id", requester.ID.String(),
			"action", models.ActionBulkStatus)
	}

	return report, nil
}

// GormEnrollments is the production EnrollmentStore.
type GormEnrollments struct {
	db *gorm.DB
}

func NewGormEnrollments(db *gorm.DB) *GormEnrollments {
	return &GormEnrollments{db: db}
}

func (s *GormEnrollments) FindForCampus(ctx context.Context, enrollmentID, campusID uuid.UUID) (*models.CampusStudent, error) {
	var student models.CampusStudent
	if err := s.db.WithContext(ctx).Where("id = ? AND campus_id = ?", enrollmentID, campusID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *GormEnrollments) UpdateStatus(ctx context.Context, enrollmentID uuid.UUID, status string) error {
	return s.db.WithContext(ctx).Model(&models.CampusStudent{}).
		Where("id = ?", enrollmentID).
		Update("status", status).Error
}
