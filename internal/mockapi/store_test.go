package mockapi

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UserRecordIsSnapshot(t *testing.T) {
	s := newStore()
	s.addUser("testuser", "user@example.com", "hash", false)

	rec, ok := s.userByID(1)
	require.True(t, ok)
	require.True(t, rec.IsActive)

	inactive := false
	_, found := s.updateUser(1, &inactive, nil)
	require.True(t, found)

	// Ранее выданная запись — снимок; обновление её не трогает.
	assert.True(t, rec.IsActive)

	fresh, ok := s.userByEmail("user@example.com")
	require.True(t, ok)
	assert.False(t, fresh.IsActive)
	assert.Equal(t, "hash", fresh.PasswordHash)
}

func TestStore_ConcurrentUserReadsAndUpdates(t *testing.T) {
	s := newStore()
	s.addUser("testuser", "user@example.com", "hash", false)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if rec, ok := s.userByEmail("user@example.com"); ok {
				_ = rec.IsActive
				_ = rec.PasswordHash
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if rec, ok := s.userByID(1); ok {
				_ = rec.IsSuperuser
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			active := i%2 == 0
			s.updateUser(1, &active, nil)
		}
	}()
	wg.Wait()

	rec, ok := s.userByID(1)
	require.True(t, ok)
	assert.Equal(t, "testuser", rec.Username)
}
