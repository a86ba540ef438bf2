package repository

import (
	"context"

	directory "go-hrdesk/internal/pkg/directory/application/domain"
)

// ProfileRepository is the read side of the user directory.
// Missing profiles are not errors: GetByID returns (nil, nil) and GetByIDs skips them.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*directory.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]directory.Profile, error)
	ListByRole(ctx context.Context, role directory.Role) ([]directory.Profile, error)
	List(ctx context.Context) ([]directory.Profile, error)
}
