package service

import (
	"context"
	"time"

	"github.com/ignatzorin/plumbing-backend/internal/models"
)

type ProfessionalRepository interface {
	List(ctx context.Context) ([]models.Professional, error)
	GetByID(ctx context.Context, id int64) (*models.Professional, error)
}

// ProfessionalService отдаёт справочник мастеров с прайсом из каталога.
type ProfessionalService struct {
	repo    ProfessionalRepository
	catalog ServiceCatalog
	cache   *CacheService
	ttl     time.Duration
}

// NewProfessionalService создаёт сервис. cache может быть nil, тогда каждый вызов идёт в базу.
func NewProfessionalService(repo ProfessionalRepository, catalog ServiceCatalog, cache *CacheService, ttl time.Duration) *ProfessionalService {
	return &ProfessionalService{repo: repo, catalog: catalog, cache: cache, ttl: ttl}
}

// ListProfessionals возвращает всех мастеров, у каждого непустой список услуг.
func (s *ProfessionalService) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	load := func() (interface{}, error) {
		professionals, err := s.repo.List(ctx)
		if err != nil {
			return nil, translateRepoError(err, "не удалось получить список мастеров")
		}
		for i := range professionals {
			professionals[i].Services = s.catalog.Lookup(professionals[i].Specialty)
		}
		return professionals, nil
	}

	value, err := s.cached(ctx, ProfessionalsCacheKey(), load)
	if err != nil {
		return nil, err
	}

	cached := value.([]models.Professional)
	out := make([]models.Professional, len(cached))
	for i := range cached {
		out[i] = cloneProfessional(cached[i])
	}
	return out, nil
}

// GetProfessional возвращает мастера по ID.
func (s *ProfessionalService) GetProfessional(ctx context.Context, id int64) (*models.Professional, error) {
	load := func() (interface{}, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, translateRepoError(err, "не удалось получить мастера")
		}
		p.Services = s.catalog.Lookup(p.Specialty)
		return *p, nil
	}

	value, err := s.cached(ctx, ProfessionalCacheKey(id), load)
	if err != nil {
		return nil, err
	}

	p := cloneProfessional(value.(models.Professional))
	return &p, nil
}

// cloneProfessional копирует мастера вместе со списком услуг, закэшированное значение не меняется.
func cloneProfessional(p models.Professional) models.Professional {
	if p.Services != nil {
		services := make([]models.ServiceItem, len(p.Services))
		copy(services, p.Services)
		p.Services = services
	}
	return p
}

func (s *ProfessionalService) cached(ctx context.Context, key string, fn func() (interface{}, error)) (interface{}, error) {
	if s.cache == nil || s.ttl <= 0 {
		return fn()
	}
	return s.cache.GetOrSet(ctx, key, s.ttl, fn)
}
