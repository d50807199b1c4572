package bulk

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Executor materializes one accepted row into an account plus its profile.
// Failures stay within the row; nothing here aborts sibling rows.
type Executor struct {
	store AccountStore
}

func NewExecutor(store AccountStore) *Executor {
	return &Executor{store: store}
}

func (e *Executor) Execute(ctx context.Context, row *AccountRow) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(row.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Bulk-created accounts are active immediately, matching the single
	// create endpoint's default.
	account, err := e.store.CreateAccount(ctx, NewAccount{
		Email:        row.Email,
		PasswordHash: string(hash),
		Name:         row.Name,
		Role:         row.Role,
		Phone:        row.Phone,
		Active:       true,
	})
	if err != nil {
		return err
	}

	return e.store.CreateProfile(ctx, account, ProfileFields{
		University:  row.University,
		Department:  row.Department,
		Position:    row.Position,
		CompanyName: row.CompanyName,
	})
}
