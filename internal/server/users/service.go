// Package users contains the account service: registration, credential
// verification, the default-admin bootstrap, and the admin user listing.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/getcareer/portal/internal/common"
	"github.com/getcareer/portal/internal/cryptox"
	"github.com/getcareer/portal/internal/dbx"
	"github.com/getcareer/portal/internal/server/models"
	"github.com/getcareer/portal/internal/server/repositories/repomanager"
)

const (
	// MinPasswordLen is the minimum accepted password length at registration.
	MinPasswordLen = 4

	// DefaultAdminUsername and DefaultAdminPassword seed the bootstrap
	// account. The password digest is what older deployments stored.
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin"
)

// Listing is the admin view of the user table: all rows plus derived counts.
type Listing struct {
	Users  []models.User
	Total  int64
	ByRole map[models.Role]int64
}

// Service implements the credential-store operations on top of the
// repository layer. The repository is the only side-effecting dependency;
// validation never touches it.
type Service struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewService constructs a Service. db may be nil when the repository
// manager is not database-backed (in-memory runs and tests).
func NewService(db *sql.DB, m repomanager.RepositoryManager) *Service {
	return &Service{db: db, repomanager: m, now: time.Now}
}

// Register validates the new-account fields and creates a seeker record.
//
// The validation order is fixed: password match, then length, then
// uniqueness. Each step short-circuits before the next; only the
// uniqueness check costs a store round trip.
func (s *Service) Register(ctx context.Context, username, password, confirm string) error {
	if password != confirm {
		return common.ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen {
		return common.ErrPasswordTooShort
	}

	user := &models.User{
		Username:     username,
		PasswordHash: cryptox.HashPassword(password),
		Role:         models.RoleSeeker,
		JoinDate:     s.now().Format(models.JoinDateLayout),
	}

	repo := s.repomanager.Users(s.db)
	inserted, err := repo.CreateIfAbsent(ctx, user)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}
	if !inserted {
		return common.ErrUsernameTaken
	}

	return nil
}

// Login verifies the presented credentials and returns the stored record.
// Unknown usernames and wrong passwords are both reported as
// common.ErrInvalidCredentials, with no way to tell them apart.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByCredentials(ctx, username, cryptox.HashPassword(password))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return user, nil
}

// Bootstrap ensures the default admin record exists. It is idempotent and
// safe under concurrent process starts: the insert-if-absent is atomic,
// and losing the race is not an error.
func (s *Service) Bootstrap(ctx context.Context) error {
	admin := &models.User{
		Username:     DefaultAdminUsername,
		PasswordHash: cryptox.HashPassword(DefaultAdminPassword),
		Role:         models.RoleAdmin,
		JoinDate:     s.now().Format(models.JoinDateLayout),
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.CreateIfAbsent(ctx, admin); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return nil
}

// UserListing returns the full user table with totals for the admin view.
// With a database behind it, rows and counts are read inside one read-only
// transaction so they agree with each other.
func (s *Service) UserListing(ctx context.Context) (*Listing, error) {
	var rows []models.User
	var counts map[models.Role]int64

	collect := func(ctx context.Context, db dbx.DBTX) error {
		repo := s.repomanager.Users(db)
		var err error
		if rows, err = repo.List(ctx); err != nil {
			return err
		}
		counts, err = repo.CountByRole(ctx)
		return err
	}

	var err error
	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, collect)
	} else {
		err = collect(ctx, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return &Listing{Users: rows, Total: int64(len(rows)), ByRole: counts}, nil
}
