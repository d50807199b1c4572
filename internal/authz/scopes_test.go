package authz_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthunter/backend/internal/authz"
)

func TestDefaultScopes(t *testing.T) {
	t.Parallel()

	s := authz.Default()

	roles, restricted := s.AllowedRoles("campus")
	assert.True(t, restricted)
	assert.Equal(t, []string{"student"}, roles)

	_, restricted = s.AllowedRoles("admin")
	assert.False(t, restricted)

	assert.True(t, s.Permits("campus", "student"))
	assert.False(t, s.Permits("campus", "employer"))
	assert.True(t, s.Permits("admin", "employer"))
}

func TestLoadScopesFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scopes.json")
	content := `{"scopes":[
		{"category":"campus","roles":["student"]},
		{"category":"employer","roles":["student","employer"]}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	s, err := authz.LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, s.Permits("employer", "employer"))
	assert.False(t, s.Permits("employer", "campus"))
	assert.False(t, s.Permits("campus", "admin"))
	assert.True(t, s.Permits("admin", "admin"))
}

func TestLoadScopesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := authz.LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadScopesBadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scopes.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := authz.LoadFromFile(path)
	assert.Error(t, err)
}
