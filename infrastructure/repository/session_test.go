package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
)

func TestSessionRepository_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	session := &domain.SessionState{
		ID:            "abc123",
		User:          "admin",
		Authenticated: true,
		Upload:        &domain.UploadedFile{Name: "orders.csv", Content: []byte("Order Date\n")},
		Selection:     domain.FilterSelection{Regions: []string{"West"}},
	}
	require.NoError(t, repo.Save(ctx, session))

	session.Selection.Regions[0] = "East"
	session.Upload.Name = "other.csv"

	stored, err := repo.Get(ctx, "abc123")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"West"}, stored.Selection.Regions)
	assert.Equal(t, "orders.csv", stored.Upload.Name)

	stored.Selection.Regions[0] = "South"
	again, err := repo.Get(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, []string{"West"}, again.Selection.Regions)

	require.NoError(t, repo.Delete(ctx, "abc123"))
	missing, err := repo.Get(ctx, "abc123")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepository_DeleteIdleSince(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()
	now := time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, &domain.SessionState{ID: "old", LastSeenAt: now.Add(-3 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, &domain.SessionState{ID: "recent", LastSeenAt: now.Add(-time.Minute)}))

	removed, err := repo.DeleteIdleSince(ctx, now.Add(-2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	recent, err := repo.Get(ctx, "recent")
	require.NoError(t, err)
	assert.NotNil(t, recent)
}

func TestSessionRepository_Concurrency(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = repo.Save(ctx, &domain.SessionState{ID: id, LastSeenAt: time.Now()})
			_, _ = repo.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, count)
}
