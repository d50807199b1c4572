package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studenthunter/backend/internal/dto"
	"github.com/studenthunter/backend/internal/models"
	"github.com/studenthunter/backend/internal/services"
)

func newCampus(t *testing.T, svc *services.CampusService, name string) *models.Campus {
	t.Helper()
	campus, err := svc.Create(uuid.New(), &dto.CreateCampusRequest{Name: name})
	require.NoError(t, err)
	return campus
}

func TestBulkRegisterStudentsPerEntryIsolation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := services.NewCampusService(db)
	campus := newCampus(t, svc, "North Campus")

	resp := svc.BulkRegisterStudents(campus.ID, []dto.RegisterStudentRequest{
		{UserID: uuid.New(), StudentNumber: "S-1001"},
		{UserID: uuid.New(), StudentNumber: "S-1001"}, // duplicate of the first
		{UserID: uuid.New()},                          // no student number
		{UserID: uuid.New(), StudentNumber: "S-1002", EnrollmentDate: "not-a-date"},
		{UserID: uuid.New(), StudentNumber: "S-1003"},
	})

	require.Len(t, resp.Created, 2)
	assert.Equal(t, "S-1001", resp.Created[0].StudentNumber)
	assert.Equal(t, "S-1003", resp.Created[1].StudentNumber)

	require.Len(t, resp.Errors, 3)
	assert.Equal(t, "S-1001", resp.Errors[0].StudentNumber)
	assert.Equal(t, services.ErrStudentNumberUsed.Error(), resp.Errors[0].Reason)
	assert.Equal(t, "student_id is required", resp.Errors[1].Reason)
	assert.Equal(t, "enrollment_date must be YYYY-MM-DD", resp.Errors[2].Reason)

	var count int64
	db.Model(&models.CampusStudent{}).Where("campus_id = ?", campus.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestBulkRegisterStudentsNumberScopedToCampus(t *testing.T) {
	t.Parallel()
	svc := services.NewCampusService(newTestDB(t))
	north := newCampus(t, svc, "North Campus")
	south := newCampus(t, svc, "South Campus")

	first := svc.BulkRegisterStudents(north.ID, []dto.RegisterStudentRequest{
		{UserID: uuid.New(), StudentNumber: "S-2001"},
	})
	require.Empty(t, first.Errors)

	second := svc.BulkRegisterStudents(south.ID, []dto.RegisterStudentRequest{
		{UserID: uuid.New(), StudentNumber: "S-2001"},
	})
	assert.Len(t, second.Created, 1)
	assert.Empty(t, second.Errors)
}

func TestBulkRegisterStudentsEmpty(t *testing.T) {
	t.Parallel()
	svc := services.NewCampusService(newTestDB(t))
	campus := newCampus(t, svc, "North Campus")

	resp := svc.BulkRegisterStudents(campus.ID, nil)
	assert.Empty(t, resp.Created)
	assert.Empty(t, resp.Errors)
}

func TestChangeStatusEnforcesCampusOwnership(t *testing.T) {
	t.Parallel()
	svc := services.NewCampusService(newTestDB(t))
	north := newCampus(t, svc, "North Campus")
	south := newCampus(t, svc, "South Campus")

	student, err := svc.RegisterStudent(north.ID, &dto.RegisterStudentRequest{
		UserID:        uuid.New(),
		StudentNumber: "S-3001",
	})
	require.NoError(t, err)

	_, err = svc.ChangeStatus(south.ID, student.ID, models.StudentStatusSuspended)
	assert.ErrorIs(t, err, services.ErrStudentNotFound)

	updated, err := svc.ChangeStatus(north.ID, student.ID, models.StudentStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.StudentStatusSuspended, updated.Status)
}
