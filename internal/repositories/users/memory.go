package users

import (
	"context"
	"sync"
	"time"

	"github.com/edu2job/edu2job-server/internal/models"
)

// MemoryRepository keeps users in a map. Used for tests and local runs
// with STORE_DRIVER=memory.
type MemoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byEmail: make(map[string]models.User)}
}

// FindByEmail returns the user registered under email.
func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// Insert stores user unless the email is taken.
func (r *MemoryRepository) Insert(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrEmailTaken
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.byEmail[user.Email] = user
	return nil
}

// Len returns the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byEmail)
}

var _ Repository = (*MemoryRepository)(nil)
