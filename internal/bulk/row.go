package bulk

import "github.com/google/uuid"

// Row is one decoded record: normalized column name to raw cell value.
// Absent cells are present in the map with an empty value.
type Row map[string]string

// Requester identifies who is running the batch and which requester
// category their provisioning scope is resolved under.
type Requester struct {
	ID       uuid.UUID
	Category string
}

// AccountRow is a validated, normalized row ready for the executor.
type AccountRow struct {
	Email    string
	Password string
	Name     string
	Role     string
	Phone    string

	// Role-dependent optional fields.
	University  string
	Department  string
	Position    string
	CompanyName string
}

// Outcome is the validator's tagged result: Row is non-nil when the row was
// accepted, otherwise Email and Reason describe the rejection.
type Outcome struct {
	Row    *AccountRow
	Email  string
	Reason string
}

func (o Outcome) Accepted() bool { return o.Row != nil }

func rejected(email, reason string) Outcome {
	return Outcome{Email: email, Reason: reason}
}
