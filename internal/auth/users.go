// Package auth holds the user-repository abstraction, password hashing, and
// the JWT token service.
package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an account allowed to upload and analyze data.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// UserRepository abstracts user lookup so the HTTP layer never touches a
// concrete store. A missing user is (nil, nil), not an error.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a candidate password against a stored hash.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// MemoryRepository is the in-process UserRepository used when no database is
// configured. Reads vastly outnumber writes; a plain RWMutex suffices.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]User
	names map[string]string
}

// NewMemoryRepository builds a repository seeded with the given users.
func NewMemoryRepository(users ...User) *MemoryRepository {
	repo := &MemoryRepository{
		byID:  make(map[string]User, len(users)),
		names: make(map[string]string, len(users)),
	}
	for _, u := range users {
		if u.ID == "" {
			u.ID = uuid.NewString()
		}
		repo.byID[u.ID] = u
		repo.names[u.Username] = u.ID
	}
	return repo
}

// SeedAdmin creates a single-admin repository from a plaintext password.
func SeedAdmin(username, password string) (*MemoryRepository, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return NewMemoryRepository(User{Username: username, PasswordHash: hash}), nil
}

// FindByUsername implements UserRepository.
func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[username]
	if !ok {
		return nil, nil
	}
	u := r.byID[id]
	return &u, nil
}

// FindByID implements UserRepository.
func (r *MemoryRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
