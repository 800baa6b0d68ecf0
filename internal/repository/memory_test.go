package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/atinyakov/GophForms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SeededRecordsInOrder(t *testing.T) {
	repo := NewMemoryCredentialRepository(models.SeedCredentials()...)

	require.Equal(t, 3, repo.Len())
	assert.Equal(t, models.SeedCredentials(), repo.records)

	for _, c := range models.SeedCredentials() {
		got, err := repo.FindByEmail(context.Background(), c.Email)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestMemory_SeedSkipsDuplicates(t *testing.T) {
	repo := NewMemoryCredentialRepository(
		models.Credential{Email: "a@b.c", Password: "First#123"},
		models.Credential{Email: "a@b.c", Password: "Second#123"},
	)

	require.Equal(t, 1, repo.Len())
	got, err := repo.FindByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "First#123", got.Password)
}

func TestMemory_FindByEmailIsExact(t *testing.T) {
	repo := NewMemoryCredentialRepository(models.SeedCredentials()...)

	for _, email := range []string{"TEST@example.com", " test@example.com", "test@example.com ", "nobody@x.com"} {
		_, err := repo.FindByEmail(context.Background(), email)
		assert.ErrorIs(t, err, models.ErrNotFound, email)
	}
}

func TestMemory_InsertAppends(t *testing.T) {
	repo := NewMemoryCredentialRepository(models.SeedCredentials()...)
	cred := models.Credential{Email: "new@site.com", Password: "New$Pass1"}

	require.NoError(t, repo.Insert(context.Background(), cred))
	require.Equal(t, 4, repo.Len())
	assert.Equal(t, cred, repo.records[3])

	got, err := repo.FindByEmail(context.Background(), cred.Email)
	require.NoError(t, err)
	assert.Equal(t, cred, got)
}

func TestMemory_InsertDuplicateLeavesStoreUnchanged(t *testing.T) {
	repo := NewMemoryCredentialRepository(models.SeedCredentials()...)

	err := repo.Insert(context.Background(), models.Credential{Email: "admin@demo.com", Password: "Other#2024"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
	assert.Equal(t, 3, repo.Len())

	got, err := repo.FindByEmail(context.Background(), "admin@demo.com")
	require.NoError(t, err)
	assert.Equal(t, "Admin#2024", got.Password)
}

func TestMemory_CanceledContext(t *testing.T) {
	repo := NewMemoryCredentialRepository(models.SeedCredentials()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindByEmail(ctx, "test@example.com")
	assert.ErrorIs(t, err, context.Canceled)

	err = repo.Insert(ctx, models.Credential{Email: "x@y.z", Password: "Xyz#12345"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, repo.Len())
}

func TestMemory_ConcurrentInsertSameEmail(t *testing.T) {
	repo := NewMemoryCredentialRepository()
	const workers = 32

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Insert(context.Background(), models.Credential{
				Email:    "race@site.com",
				Password: fmt.Sprintf("Race#%04d", i),
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 1, repo.Len())
}
