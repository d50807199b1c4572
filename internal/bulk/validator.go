package bulk

import (
	"context"
	"fmt"
	"strings"

	"github.com/studenthunter/backend/internal/authz"
	"github.com/studenthunter/backend/internal/models"
)

// Validator applies the per-row acceptance rules in order; the first failing
// rule wins and later rules do not run. The duplicate-email rule consults the
// store per row so accounts created earlier in the same batch are observed.
type Validator struct {
	scopes *authz.Scopes
	store  AccountStore
}

func NewValidator(scopes *authz.Scopes, store AccountStore) *Validator {
	return &Validator{scopes: scopes, store: store}
}

func (v *Validator) Validate(ctx context.Context, row Row, requester Requester) Outcome {
	email := row["email"]
	password := row["password"]

	if email == "" || password == "" {
		return rejected(email, "Missing email or password")
	}

	role := strings.ToLower(strings.TrimSpace(row["role"]))

	if allowed, restricted := v.scopes.AllowedRoles(requester.Category); restricted && !v.scopes.Permits(requester.Category, role) {
		return rejected(email, scopeReason(requester.Category, allowed, role))
	}

	if !models.ValidRole(role) {
		return rejected(email, fmt.Sprintf("Invalid role specified: %s", role))
	}

	exists, err := v.store.Exists(ctx, email)
	if err != nil {
		return rejected(email, err.Error())
	}
	if exists {
		return rejected(email, "User with this email already exists")
	}

	return Outcome{Row: &AccountRow{
		Email:       email,
		Password:    password,
		Name:        row["name"],
		Role:        role,
		Phone:       row["phone"],
		University:  row["university"],
		Department:  row["department"],
		Position:    row["position"],
		CompanyName: row["company_name"],
	}}
}

func scopeReason(category string, allowed []string, role string) string {
	plural := make([]string, len(allowed))
	for i, r := range allowed {
		plural[i] = r + "s"
	}
	return fmt.Sprintf("%s users can only register %s, attempted role: %s",
		capitalize(category), strings.Join(plural, ", "), role)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
