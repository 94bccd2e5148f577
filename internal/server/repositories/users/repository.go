package users

import (
	"context"

	"github.com/getcareer/portal/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent inserts the user unless the username is already taken.
	// It returns false (and leaves the table untouched) on a duplicate.
	// The check and the insert are a single atomic operation.
	CreateIfAbsent(ctx context.Context, user *models.User) (bool, error)

	// FindByCredentials looks up a row by exact (username, digest) match.
	// Unknown username and wrong digest both return common.ErrorNotFound.
	FindByCredentials(ctx context.Context, username, digest string) (*models.User, error)

	// List returns all rows in storage order, password hashes excluded.
	List(ctx context.Context) ([]models.User, error)

	// CountByRole returns the number of rows per role.
	CountByRole(ctx context.Context) (map[models.Role]int64, error)
}
