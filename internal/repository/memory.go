package repository

import (
	"context"
	"sync"

	"github.com/atinyakov/GophForms/internal/models"
)

// MemoryCredentialRepository keeps credentials in process memory.
// Records are held in insertion order and live as long as the process.
type MemoryCredentialRepository struct {
	mu      sync.RWMutex
	records []models.Credential
	index   map[string]int // email -> position in records
}

// NewMemoryCredentialRepository creates a store holding seed in the given order.
// Later duplicates of an email in seed are ignored.
func NewMemoryCredentialRepository(seed ...models.Credential) *MemoryCredentialRepository {
	r := &MemoryCredentialRepository{
		records: make([]models.Credential, 0, len(seed)),
		index:   make(map[string]int, len(seed)),
	}
	for _, c := range seed {
		if _, ok := r.index[c.Email]; ok {
			continue
		}
		r.index[c.Email] = len(r.records)
		r.records = append(r.records, c)
	}
	return r
}

// FindByEmail returns the record whose email equals email exactly.
// It returns models.ErrNotFound when there is none.
func (r *MemoryCredentialRepository) FindByEmail(ctx context.Context, email string) (models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return models.Credential{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[email]
	if !ok {
		return models.Credential{}, models.ErrNotFound
	}
	return r.records[i], nil
}

// Insert appends cred unless its email is already stored, in which case
// models.ErrAlreadyExists is returned and nothing changes. The check and the
// append happen under one lock.
func (r *MemoryCredentialRepository) Insert(ctx context.Context, cred models.Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[cred.Email]; ok {
		return models.ErrAlreadyExists
	}
	r.index[cred.Email] = len(r.records)
	r.records = append(r.records, cred)
	return nil
}

// Len returns the number of stored credentials.
func (r *MemoryCredentialRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
