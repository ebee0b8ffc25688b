package bib

import "context"

// Role is the contribution type of a contributor, as stored by the source.
type Role string

// Contributor roles.
const (
	RoleAuthor Role = "DocumentAuthor"
	RoleEditor Role = "DocumentEditor"
)

// Contributor is a person credited on a record.
type Contributor struct {
	LastName   string `json:"last_name"`
	FirstNames string `json:"first_names,omitempty"`
}

// Name formats the contributor as "Last, First" for biblatex name lists.
func (c Contributor) Name() string {
	if c.FirstNames == "" {
		return c.LastName
	}
	return c.LastName + ", " + c.FirstNames
}

// Resolver looks up the child collections of a record on demand.
// Every list is returned in the source's native order.
type Resolver interface {
	Contributors(ctx context.Context, recordID int64, role Role) ([]Contributor, error)
	Tags(ctx context.Context, recordID int64) ([]string, error)
	Keywords(ctx context.Context, recordID int64) ([]string, error)
	URLs(ctx context.Context, recordID int64) ([]string, error)
}

// KeyWriter persists a generated citation key back to the source.
type KeyWriter interface {
	SetCitationKey(ctx context.Context, recordID int64, key string) error
}
