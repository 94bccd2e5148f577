package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/getcareer/portal/internal/common"
	"github.com/getcareer/portal/internal/cryptox"
	"github.com/getcareer/portal/internal/dbx"
	"github.com/getcareer/portal/internal/server/models"
	usersrepo "github.com/getcareer/portal/internal/server/repositories/users"
)

// --- helpers ---

type fakeUsersRepo struct {
	createCalls int
	createOut   bool
	createErr   error

	findOut *models.User
	findErr error

	listOut []models.User
	listErr error

	countOut map[models.Role]int64
	countErr error
}

func (f *fakeUsersRepo) CreateIfAbsent(ctx context.Context, u *models.User) (bool, error) {
	f.createCalls++
	if f.createErr != nil {
		return false, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) FindByCredentials(ctx context.Context, username, digest string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.countOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }

func newServiceWithFake(u *fakeUsersRepo) *Service {
	return NewService(nil, &fakeRepoManager{u: u})
}

// --- Register ---

func TestRegister_PasswordMismatch_SkipsStore(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newServiceWithFake(repo)

	err := s.Register(context.Background(), "bob", "pass1", "pass2")
	if !errors.Is(err, common.ErrPasswordMismatch) {
		t.Fatalf("want ErrPasswordMismatch, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store must not be touched on mismatch, got %d calls", repo.createCalls)
	}
}

func TestRegister_PasswordTooShort_SkipsStore(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newServiceWithFake(repo)

	err := s.Register(context.Background(), "bob", "ab", "ab")
	if !errors.Is(err, common.ErrPasswordTooShort) {
		t.Fatalf("want ErrPasswordTooShort, got %v", err)
	}
	if repo.createCalls != 0 {
		t.Fatalf("store must not be touched on short password, got %d calls", repo.createCalls)
	}
}

func TestRegister_MismatchCheckedBeforeLength(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newServiceWithFake(repo)

	// "ab" is both too short and mismatched; mismatch wins.
	err := s.Register(context.Background(), "bob", "ab", "ba")
	if !errors.Is(err, common.ErrPasswordMismatch) {
		t.Fatalf("want ErrPasswordMismatch first, got %v", err)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	repo := &fakeUsersRepo{createOut: false}
	s := newServiceWithFake(repo)

	err := s.Register(context.Background(), "bob", "pass1", "pass1")
	if !errors.Is(err, common.ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected a single store round trip, got %d", repo.createCalls)
	}
}

func TestRegister_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{createErr: errors.New("db down")}
	s := newServiceWithFake(repo)

	err := s.Register(context.Background(), "bob", "pass1", "pass1")
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestRegister_Success_CreatesSeekerWithDigest(t *testing.T) {
	mem := usersrepo.NewInMemoryRepository()
	s := NewService(nil, &memManager{mem})

	if err := s.Register(context.Background(), "bob", "pass1", "pass1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got, err := mem.FindByCredentials(context.Background(), "bob", cryptox.HashPassword("pass1"))
	if err != nil {
		t.Fatalf("stored record not verifiable: %v", err)
	}
	if got.Role != models.RoleSeeker {
		t.Fatalf("new accounts must be seekers, got %q", got.Role)
	}
	if got.JoinDate == "" {
		t.Fatalf("join date must be set at creation")
	}
}

type memManager struct {
	u *usersrepo.InMemoryRepository
}

func (m *memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }

// --- Login ---

func TestLogin_UnknownUserAndWrongPassword_SameError(t *testing.T) {
	mem := usersrepo.NewInMemoryRepository()
	s := NewService(nil, &memManager{mem})
	ctx := context.Background()

	if err := s.Register(ctx, "bob", "pass1", "pass1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, unknownErr := s.Login(ctx, "ghost", "pass1")
	_, wrongErr := s.Login(ctx, "bob", "wrong")

	if !errors.Is(unknownErr, common.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("outward signals differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestLogin_Success_ReturnsRecord(t *testing.T) {
	mem := usersrepo.NewInMemoryRepository()
	s := NewService(nil, &memManager{mem})
	ctx := context.Background()

	if err := s.Register(ctx, "bob", "pass1", "pass1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	got, err := s.Login(ctx, "bob", "pass1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if got.Username != "bob" || got.Role != models.RoleSeeker {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLogin_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{findErr: errors.New("db down")}
	s := newServiceWithFake(repo)

	_, err := s.Login(context.Background(), "bob", "pass1")
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

// --- Bootstrap ---

func TestBootstrap_Idempotent(t *testing.T) {
	mem := usersrepo.NewInMemoryRepository()
	s := NewService(nil, &memManager{mem})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Bootstrap(ctx); err != nil {
			t.Fatalf("Bootstrap run %d: %v", i, err)
		}
	}

	list, err := mem.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	admins := 0
	for _, u := range list {
		if u.Username == DefaultAdminUsername {
			admins++
			if u.Role != models.RoleAdmin {
				t.Fatalf("bootstrap record has role %q", u.Role)
			}
		}
	}
	if admins != 1 {
		t.Fatalf("expected exactly one admin record, got %d", admins)
	}
}

func TestBootstrap_AdminCanLogin(t *testing.T) {
	mem := usersrepo.NewInMemoryRepository()
	s := NewService(nil, &memManager{mem})
	ctx := context.Background()

	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}

	got, err := s.Login(ctx, "admin", "admin")
	if err != nil {
		t.Fatalf("admin login error: %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Fatalf("want admin role, got %q", got.Role)
	}
}

// --- UserListing ---

func TestUserListing_WithFakeRepo(t *testing.T) {
	repo := &fakeUsersRepo{
		listOut: []models.User{
			{Username: "admin", Role: models.RoleAdmin, JoinDate: "2024-01-01 00:00:00"},
			{Username: "bob", Role: models.RoleSeeker, JoinDate: "2024-05-01 10:00:00"},
		},
		countOut: map[models.Role]int64{models.RoleAdmin: 1, models.RoleSeeker: 1},
	}
	s := newServiceWithFake(repo)

	listing, err := s.UserListing(context.Background())
	if err != nil {
		t.Fatalf("UserListing error: %v", err)
	}
	if listing.Total != 2 || listing.ByRole[models.RoleSeeker] != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
}

func TestUserListing_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{listErr: errors.New("db down")}
	s := newServiceWithFake(repo)

	_, err := s.UserListing(context.Background())
	if !errors.Is(err, common.ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestUserListing_UsesReadOnlyTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeUsersRepo{
		listOut:  []models.User{{Username: "admin", Role: models.RoleAdmin}},
		countOut: map[models.Role]int64{models.RoleAdmin: 1},
	}
	s := NewService(db, &fakeRepoManager{u: repo})

	listing, err := s.UserListing(context.Background())
	if err != nil {
		t.Fatalf("UserListing error: %v", err)
	}
	if listing.Total != 1 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}
}
