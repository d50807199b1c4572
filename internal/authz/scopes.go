package authz

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/studenthunter/backend/internal/models"
)

// ScopeConfig maps one requester category to the roles it may provision.
// Categories absent from the registry are unrestricted.
type ScopeConfig struct {
	Category string   `json:"category"`
	Roles    []string `json:"roles"`
}

type scopesFile struct {
	Scopes []ScopeConfig `json:"scopes"`
}

// Scopes is the provisioning-scope registry. Adding a requester category is
// configuration, not a new code path.
type Scopes struct {
	mu      sync.RWMutex
	allowed map[string][]string
}

func NewScopes() *Scopes {
	return &Scopes{allowed: make(map[string][]string)}
}

// Default returns the built-in registry: campus requesters may only provision
// students; everything else is unrestricted.
func Default() *Scopes {
	s := NewScopes()
	s.Register(ScopeConfig{Category: models.RoleCampus, Roles: []string{models.RoleStudent}})
	return s
}

// LoadFromFile reads the scope registry from a JSON config file.
func LoadFromFile(path string) (*Scopes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scopes config: %w", err)
	}

	var file scopesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scopes config: %w", err)
	}

	s := NewScopes()
	for _, cfg := range file.Scopes {
		s.Register(cfg)
	}
	return s, nil
}

func (s *Scopes) Register(cfg ScopeConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allowed[cfg.Category] = cfg.Roles
}

// AllowedRoles returns the roles the category may provision. restricted is
// false when the category has no entry, meaning no restriction applies.
func (s *Scopes) AllowedRoles(category string) (roles []string, restricted bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	roles, restricted = s.allowed[category]
	return roles, restricted
}

// Permits reports whether the category may provision the given role.
func (s *Scopes) Permits(category, role string) bool {
	roles, restricted := s.AllowedRoles(category)
	if !restricted {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
