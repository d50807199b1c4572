package bulk_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthunter/backend/internal/authz"
	"github.com/studenthunter/backend/internal/bulk"
	"github.com/studenthunter/backend/internal/models"
)

// fakeStore is an in-memory AccountStore keyed by email.
type fakeStore struct {
	accounts map[string]*models.User
	profiles map[string]string // email -> role of the profile created

	failCreateFor  map[string]error
	failProfileFor map[string]error
	existsErr      error
}

func newFakeStore(existing ...string) *fakeStore {
	s := &fakeStore{
		accounts: make(map[string]*models.User),
		profiles: make(map[string]string),
	}
	for _, email := range existing {
		s.accounts[email] = &models.User{ID: uuid.New(), Email: email}
	}
	return s
}

func (s *fakeStore) Exists(_ context.Context, email string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.accounts[email]
	return ok, nil
}

func (s *fakeStore) CreateAccount(_ context.Context, acct bulk.NewAccount) (*models.User, error) {
	if err := s.failCreateFor[acct.Email]; err != nil {
		return nil, err
	}
	if _, ok := s.accounts[acct.Email]; ok {
		return nil, fmt.Errorf("duplicate key value violates unique constraint on email %s", acct.Email)
	}
	user := &models.User{
		ID:       uuid.New(),
		Email:    acct.Email,
		Password: acct.PasswordHash,
		Name:     acct.Name,
		Role:     acct.Role,
		Phone:    acct.Phone,
		IsActive: acct.Active,
	}
	s.accounts[acct.Email] = user
	return user, nil
}

func (s *fakeStore) CreateProfile(_ context.Context, user *models.User, _ bulk.ProfileFields) error {
	if err := s.failProfileFor[user.Email]; err != nil {
		return err
	}
	// Mirror GormStore.CreateProfile: admin accounts carry no profile.
	if user.Role == models.RoleAdmin {
		return nil
	}
	s.profiles[user.Email] = user.Role
	return nil
}

func adminRequester() bulk.Requester {
	return bulk.Requester{ID: uuid.New(), Category: models.RoleAdmin}
}

func campusRequester() bulk.Requester {
	return bulk.Requester{ID: uuid.New(), Category: models.RoleCampus}
}

func TestValidateMissingEmailOrPassword(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore())

	cases := []struct {
		name string
		row  bulk.Row
	}{
		{"no email", bulk.Row{"email": "", "password": "p1", "role": "student"}},
		{"no password", bulk.Row{"email": "a@x.com", "password": "", "role": "student"}},
		{"neither", bulk.Row{"email": "", "password": "", "role": "student"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := v.Validate(context.Background(), tc.row, adminRequester())
			require.False(t, outcome.Accepted())
			assert.Equal(t, "Missing email or password", outcome.Reason)
			assert.Equal(t, tc.row["email"], outcome.Email)
		})
	}
}

func TestValidateScopeRestriction(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore())

	row := bulk.Row{"email": "e@x.com", "password": "p1", "role": "Employer"}
	outcome := v.Validate(context.Background(), row, campusRequester())
	require.False(t, outcome.Accepted())
	assert.Equal(t, "Campus users can only register students, attempted role: employer", outcome.Reason)

	// A student row from the same requester passes.
	row = bulk.Row{"email": "s@x.com", "password": "p1", "role": "student"}
	outcome = v.Validate(context.Background(), row, campusRequester())
	assert.True(t, outcome.Accepted())
}

func TestValidateScopeCheckedBeforeRoleEnum(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore())

	// A role outside the enumeration still fails the scope rule first for a
	// restricted requester.
	row := bulk.Row{"email": "x@x.com", "password": "p1", "role": "wizard"}
	outcome := v.Validate(context.Background(), row, campusRequester())
	require.False(t, outcome.Accepted())
	assert.Contains(t, outcome.Reason, "can only register")
}

func TestValidateInvalidRole(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore())

	row := bulk.Row{"email": "x@x.com", "password": "p1", "role": "wizard"}
	outcome := v.Validate(context.Background(), row, adminRequester())
	require.False(t, outcome.Accepted())
	assert.Equal(t, "Invalid role specified: wizard", outcome.Reason)
}

func TestValidateDuplicateEmail(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore("a@x.com"))

	row := bulk.Row{"email": "a@x.com", "password": "p1", "role": "student"}
	outcome := v.Validate(context.Background(), row, adminRequester())
	require.False(t, outcome.Accepted())
	assert.Equal(t, "User with this email already exists", outcome.Reason)
}

func TestValidateStoreLookupFailure(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.existsErr = errors.New("connection refused")
	v := bulk.NewValidator(authz.Default(), store)

	row := bulk.Row{"email": "a@x.com", "password": "p1", "role": "student"}
	outcome := v.Validate(context.Background(), row, adminRequester())
	require.False(t, outcome.Accepted())
	assert.Equal(t, "connection refused", outcome.Reason)
}

func TestValidateNormalizesRole(t *testing.T) {
	t.Parallel()

	v := bulk.NewValidator(authz.Default(), newFakeStore())

	row := bulk.Row{
		"email":    "a@x.com",
		"password": "p1",
		"name":     "Alice",
		"role":     "  STUDENT ",
		"phone":    "555-0100",
	}
	outcome := v.Validate(context.Background(), row, adminRequester())
	require.True(t, outcome.Accepted())
	assert.Equal(t, "student", outcome.Row.Role)
	assert.Equal(t, "Alice", outcome.Row.Name)
	assert.Equal(t, "555-0100", outcome.Row.Phone)
}

func TestValidateFirstFailingRuleWins(t *testing.T) {
	t.Parallel()

	// Missing password and a bad role: the missing-field rule must win and
	// the store must never be consulted.
	store := newFakeStore()
	store.existsErr = errors.New("store must not be called")
	v := bulk.NewValidator(authz.Default(), store)

	row := bulk.Row{"email": "a@x.com", "password": "", "role": "wizard"}
	outcome := v.Validate(context.Background(), row, adminRequester())
	require.False(t, outcome.Accepted())
	assert.Equal(t, "Missing email or password", outcome.Reason)
}
