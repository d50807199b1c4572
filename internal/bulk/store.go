package bulk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/studenthunter/backend/internal/models"
	"gorm.io/gorm"
)

// NewAccount carries everything needed to create one account. The plaintext
// password never reaches the store; the executor hashes it first.
type NewAccount struct {
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Phone        string
	Active       bool
}

// ProfileFields holds the role-dependent optional fields from the upload.
// Which subset applies is decided by the account's role.
type ProfileFields struct {
	University  string
	Department  string
	Position    string
	CompanyName string
}

// AccountStore is the pipeline's capability interface over the account and
// profile tables. Transaction semantics are the store's concern.
type AccountStore interface {
	Exists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, acct NewAccount) (*models.User, error)
	CreateProfile(ctx context.Context, user *models.User, fields ProfileFields) error
}

// AuditRecorder records one audit entry per batch. Fire-and-forget from the
// pipeline's perspective.
type AuditRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action, subjectID, notes string) error
}

// GormStore is the production AccountStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existing account: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) CreateAccount(ctx context.Context, acct NewAccount) (*models.User, error) {
	user := models.User{
		ID:       uuid.New(),
		Email:    acct.Email,
		Password: acct.PasswordHash,
		Name:     acct.Name,
		Role:     acct.Role,
		Phone:    acct.Phone,
		IsActive: acct.Active,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// CreateProfile creates the single profile variant matching the account's
// role. Adding a role means adding one case here.
func (s *GormStore) CreateProfile(ctx context.Context, user *models.User, fields ProfileFields) error {
	switch user.Role {
	case models.RoleStudent:
		profile := models.StudentProfile{
			ID:         uuid.New(),
			UserID:     user.ID,
			University: fields.University,
		}
		return s.db.WithContext(ctx).Create(&profile).Error
	case models.RoleEmployer:
		profile := models.EmployerProfile{
			ID:          uuid.New(),
			UserID:      user.ID,
			CompanyName: fields.CompanyName,
		}
		return s.db.WithContext(ctx).Create(&profile).Error
	case models.RoleCampus:
		profile := models.CampusProfile{
			ID:         uuid.New(),
			UserID:     user.ID,
			University: fields.University,
			Department: fields.Department,
			Position:   fields.Position,
		}
		return s.db.WithContext(ctx).Create(&profile).Error
	}
	// Admin accounts carry no profile.
	return nil
}

// GormAudit writes audit entries to the moderation log.
type GormAudit struct {
	db *gorm.DB
}

func NewGormAudit(db *gorm.DB) *GormAudit {
	return &GormAudit{db: db}
}

func (a *GormAudit) Record(ctx context.Context, actorID uuid.UUID, action, subjectID, notes string) error {
	entry := models.ModerationLog{
		ID:          uuid.New(),
		AdminID:     actorID,
		Action:      action,
		SubjectType: "user",
		SubjectID:   subjectID,
		Notes:       notes,
	}
	return a.db.WithContext(ctx).Create(&entry).Error
}
