package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/plumbing-backend/internal/catalog"
	"github.com/ignatzorin/plumbing-backend/internal/db/dbtest"
	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/repository"
)

type fakeSeedRepo struct {
	count    int
	countErr error
	inserted []models.Professional
}

func (f *fakeSeedRepo) Count(ctx context.Context) (int, error) {
	return f.count, f.countErr
}

func (f *fakeSeedRepo) CreateBatch(ctx context.Context, professionals []models.Professional) (int, error) {
	f.inserted = append(f.inserted, professionals...)
	f.count += len(professionals)
	return len(professionals), nil
}

func TestDefaultProfessionals(t *testing.T) {
	pros := DefaultProfessionals()
	known := catalog.Default()

	require.Len(t, pros, 10)
	names := make(map[string]struct{}, len(pros))
	for _, p := range pros {
		names[p.Name] = struct{}{}
		assert.Contains(t, known.Specialties(), p.Specialty, p.Name)
		assert.Positive(t, p.PriceStart)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.NotEmpty(t, p.PhotoURL)
	}
	assert.Len(t, names, 10)
}

func TestSeedService_SeedsOnce(t *testing.T) {
	repo := &fakeSeedRepo{}
	cache := NewCacheService()
	cache.Set(ProfessionalsCacheKey(), []models.Professional{}, time.Minute)
	svc := NewSeedService(repo, cache)
	ctx := context.Background()

	n, err := svc.SeedProfessionals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	_, cached := cache.Get(ProfessionalsCacheKey())
	assert.False(t, cached)

	n, err = svc.SeedProfessionals(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, repo.inserted, 10)
}

func TestSeedService_CountError(t *testing.T) {
	repo := &fakeSeedRepo{countErr: errors.New("database is locked")}

	_, err := NewSeedService(repo, nil).SeedProfessionals(context.Background())

	require.Error(t, err)
	assert.Empty(t, repo.inserted)
}

func TestSeedService_SQLite(t *testing.T) {
	conn := dbtest.NewSQLite(t)
	repo := repository.NewProfessionalRepository(conn)
	svc := NewSeedService(repo, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.SeedProfessionals(ctx)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 10)
	assert.Equal(t, "Дмитрий Кузнецов", list[0].Name)
	assert.Equal(t, "Алексей Новиков", list[9].Name)
}
