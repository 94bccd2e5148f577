package users

import (
	"context"
	"sync"

	"github.com/getcareer/portal/internal/common"
	"github.com/getcareer/portal/internal/server/models"
)

// InMemoryRepository keeps the user table in a map, serialized by a mutex.
// It backs tests and local development without a database.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User
	order []string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) CreateIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return false, nil
	}

	r.users[user.Username] = *user
	r.order = append(r.order, user.Username)
	return true, nil
}

func (r *InMemoryRepository) FindByCredentials(ctx context.Context, username, digest string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, exists := r.users[username]
	if !exists || u.PasswordHash != digest {
		return nil, common.ErrorNotFound
	}

	found := u
	return &found, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.order))
	for _, username := range r.order {
		u := r.users[username]
		u.PasswordHash = ""
		users = append(users, u)
	}
	return users, nil
}

func (r *InMemoryRepository) CountByRole(ctx context.Context) (map[models.Role]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[models.Role]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}
