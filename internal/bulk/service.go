package bulk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/studenthunter/backend/internal/authz"
	"github.com/studenthunter/backend/internal/models"
)

// ProvisionResult is one row's terminal state, in input order.
type ProvisionResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// BatchReport aggregates one batch: every decoded row contributes exactly
// one entry to Details, so SuccessCount+FailedCount equals the row count.
type BatchReport struct {
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	Details      []ProvisionResult `json:"details"`
}

func (r *BatchReport) succeed(email string) {
	r.SuccessCount++
	r.Details = append(r.Details, ProvisionResult{Email: email, Status: StatusSuccess})
}

func (r *BatchReport) fail(email, reason string) {
	r.FailedCount++
	r.Details = append(r.Details, ProvisionResult{Email: email, Status: StatusFailed, Reason: reason})
}

// Service drives decode -> validate -> execute over a whole upload.
type Service struct {
	validator *Validator
	executor  *Executor
	audit     AuditRecorder
}

func NewService(store AccountStore, scopes *authz.Scopes, audit AuditRecorder) *Service {
	return &Service{
		validator: NewValidator(scopes, store),
		executor:  NewExecutor(store),
		audit:     audit,
	}
}

// Run processes one uploaded file. Decoder failures (unsupported format,
// empty table, missing columns) are the only errors returned; everything at
// the row level is converted into a ProvisionResult and the batch continues.
// Rows run strictly sequentially so each row's duplicate-email check
// observes accounts created by the rows before it.
func (s *Service) Run(ctx context.Context, requester Requester, filename string, data []byte) (*BatchReport, error) {
	rows, err := Decode(filename, data)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Details: make([]ProvisionResult, 0, len(rows))}
	for _, row := range rows {
		outcome := s.validator.Validate(ctx, row, requester)
		if !outcome.Accepted() {
			report.fail(outcome.Email, outcome.Reason)
			continue
		}
		if err := s.executor.Execute(ctx, outcome.Row); err != nil {
			report.fail(outcome.Row.Email, err.Error())
			continue
		}
		report.succeed(outcome.Row.Email)
	}

	// One audit entry per batch. A failed audit write must not change the
	// report the caller already earned.
	notes := fmt.Sprintf("Bulk user upload: %d succeeded, %d failed. File: %s",
		report.SuccessCount, report.FailedCount, filename)
	if err := s.audit.Record(ctx, requester.ID, models.ActionBulkUserUpload, requester.ID.String(), notes); err != nil {
		slog.Error("failed to record bulk upload audit entry",
			"error", err,
			"actor_id", requester.ID.String(),
			"action", models.ActionBulkUserUpload,
			"file", filename)
	}

	return report, nil
}
