package bulk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/studenthunter/backend/internal/bulk"
	"github.com/studenthunter/backend/internal/models"
)

type fakeEnrollments struct {
	byID      map[uuid.UUID]uuid.UUID // enrollment id -> campus id
	statuses  map[uuid.UUID]string
	updateErr map[uuid.UUID]error
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{
		byID:     make(map[uuid.UUID]uuid.UUID),
		statuses: make(map[uuid.UUID]string),
	}
}

func (f *fakeEnrollments) enroll(campusID uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.byID[id] = campusID
	f.statuses[id] = models.StudentStatusActive
	return id
}

func (f *fakeEnrollments) FindForCampus(_ context.Context, enrollmentID, campusID uuid.UUID) (*models.CampusStudent, error) {
	owner, ok := f.byID[enrollmentID]
	if !ok || owner != campusID {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.CampusStudent{ID: enrollmentID, CampusID: campusID, Status: f.statuses[enrollmentID]}, nil
}

func (f *fakeEnrollments) UpdateStatus(_ context.Context, enrollmentID uuid.UUID, status string) error {
	if err := f.updateErr[enrollmentID]; err != nil {
		return err
	}
	f.statuses[enrollmentID] = status
	return nil
}

func TestStatusChangeInvalidStatusShortCircuits(t *testing.T) {
	t.Parallel()

	store := newFakeEnrollments()
	campusID := uuid.New()
	target := store.enroll(campusID)

	svc := bulk.NewStatusService(store, &fakeAudit{})
	_, err := svc.Run(context.Background(), campusRequester(), campusID, []uuid.UUID{target}, "expelled")

	assert.ErrorIs(t, err, bulk.ErrInvalidStatus)
	assert.Equal(t, models.StudentStatusActive, store.statuses[target], "no target may be touched")
}

func TestStatusChangePerItemIsolation(t *testing.T) {
	t.Parallel()

	store := newFakeEnrollments()
	campusID := uuid.New()
	otherCampus := uuid.New()

	mine := store.enroll(campusID)
	foreign := store.enroll(otherCampus)
	broken := store.enroll(campusID)
	store.updateErr = map[uuid.UUID]error{broken: errors.New("storage fault")}
	alsoMine := store.enroll(campusID)

	svc := bulk.NewStatusService(store, &fakeAudit{})
	report, err := svc.Run(context.Background(), campusRequester(), campusID,
		[]uuid.UUID{mine, foreign, broken, alsoMine}, models.StudentStatusGraduated)
	require.NoError(t, err)

	assert.Equal(t, 2, report.UpdatedCount)
	assert.Equal(t, 2, report.FailedCount)
	require.Len(t, report.Details, 4)

	assert.Equal(t, bulk.StatusSuccess, report.Details[0].Status)
	assert.Equal(t, "student not found in this campus", report.Details[1].Reason)
	assert.Equal(t, "storage fault", report.Details[2].Reason)
	// The item after a failure still ran.
	assert.Equal(t, bulk.StatusSuccess, report.Details[3].Status)

	assert.Equal(t, models.StudentStatusGraduated, store.statuses[mine])
	assert.Equal(t, models.StudentStatusActive, store.statuses[foreign])
	assert.Equal(t, models.StudentStatusGraduated, store.statuses[alsoMine])
}

func TestStatusChangeWritesOneAuditEntry(t *testing.T) {
	t.Parallel()

	store := newFakeEnrollments()
	campusID := uuid.New()
	target := store.enroll(campusID)

	audit := &fakeAudit{}
	svc := bulk.NewStatusService(store, audit)
	_, err := svc.Run(context.Background(), campusRequester(), campusID,
		[]uuid.UUID{target}, models.StudentStatusSuspended)
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "bulk_status_change: Bulk status change to suspended: 1 updated, 0 failed", audit.entries[0])
}

func TestStatusChangeAuditFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	store := newFakeEnrollments()
	campusID := uuid.New()
	target := store.enroll(campusID)

	svc := bulk.NewStatusService(store, &fakeAudit{err: errors.New("audit down")})
	report, err := svc.Run(context.Background(), campusRequester(), campusID,
		[]uuid.UUID{target}, models.StudentStatusWithdrawn)

	require.NoError(t, err)
	assert.Equal(t, 1, report.UpdatedCount)
}

func TestStatusChangeEmptyTargets(t *testing.T) {
	t.Parallel()

	svc := bulk.NewStatusService(newFakeEnrollments(), &fakeAudit{})
	report, err := svc.Run(context.Background(), campusRequester(), uuid.New(), nil, models.StudentStatusActive)

	require.NoError(t, err)
	assert.Equal(t, 0, report.UpdatedCount)
	assert.Equal(t, 0, report.FailedCount)
	assert.Empty(t, report.Details)
}
