package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/plumbing-backend/internal/logger"
	"github.com/ignatzorin/plumbing-backend/internal/models"
)

type SeedRepository interface {
	Count(ctx context.Context) (int, error)
	CreateBatch(ctx context.Context, professionals []models.Professional) (int, error)
}

// SeedService заполняет справочник мастеров при первом запуске.
type SeedService struct {
	repo  SeedRepository
	cache *CacheService
}

// NewSeedService создаёт сервис начальных данных. cache может быть nil.
func NewSeedService(repo SeedRepository, cache *CacheService) *SeedService {
	return &SeedService{repo: repo, cache: cache}
}

// SeedProfessionals добавляет стартовых мастеров, если таблица пуста.
// Возвращает число добавленных строк; повторный вызов ничего не меняет.
func (s *SeedService) SeedProfessionals(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed service: failed to count professionals: %w", err)
	}
	if count > 0 {
		if logger.Log != nil {
			logger.Log.WithField("professionals", count).Debug("seed service: мастера уже есть, пропускаем")
		}
		return 0, nil
	}

	inserted, err := s.repo.CreateBatch(ctx, DefaultProfessionals())
	if err != nil {
		return 0, fmt.Errorf("seed service: failed to insert professionals: %w", err)
	}

	if s.cache != nil {
		s.cache.InvalidateProfessionals()
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{"inserted": inserted}).Info("seed service: мастера добавлены")
	}
	return inserted, nil
}

// DefaultProfessionals стартовый набор мастеров.
func DefaultProfessionals() []models.Professional {
	photo := func(n int) string {
		return fmt.Sprintf("https://randomuser.me/api/portraits/men/%d.jpg", n)
	}

	return []models.Professional{
		{Name: "Дмитрий Кузнецов", Specialty: models.SpecialtyInstallation, Rating: 4.9, PriceStart: 3000, Experience: 12, Age: 42, Slogan: "Делаю разводку труб на века", PhotoURL: photo(32)},
		{Name: "Алексей Смирнов", Specialty: models.SpecialtyEmergency, Rating: 5.0, PriceStart: 2000, Experience: 8, Age: 31, Slogan: "Приеду за 30 минут, устраню потоп", PhotoURL: photo(44)},
		{Name: "Борис 'Бритва'", Specialty: models.SpecialtySanitary, Rating: 4.7, PriceStart: 2500, Experience: 15, Age: 45, Slogan: "Аккуратный монтаж без сколов", PhotoURL: photo(85)},
		{Name: "Михаил Зубенко", Specialty: models.SpecialtyEmergency, Rating: 4.5, PriceStart: 1500, Experience: 3, Age: 24, Slogan: "Быстро прочищу любой засор", PhotoURL: photo(11)},
		{Name: "Виктор Петрович", Specialty: models.SpecialtyHeating, Rating: 4.9, PriceStart: 3500, Experience: 25, Age: 55, Slogan: "Тепло в каждый дом", PhotoURL: photo(65)},
		{Name: "Иван Грозный", Specialty: models.SpecialtyInstallation, Rating: 4.2, PriceStart: 2800, Experience: 20, Age: 50, Slogan: "Работаю с Rehau и сшитым полиэтиленом", PhotoURL: photo(55)},
		{Name: "Сергей Лазарев", Specialty: models.SpecialtySanitary, Rating: 4.8, PriceStart: 2000, Experience: 5, Age: 28, Slogan: "Подключу стиралку и смеситель", PhotoURL: photo(33)},
		{Name: "Павел Дуров", Specialty: models.SpecialtyHeating, Rating: 4.6, PriceStart: 3000, Experience: 7, Age: 30, Slogan: "Умное отопление и котлы", PhotoURL: photo(22)},
		{Name: "Андрей Макаревич", Specialty: models.SpecialtyEmergency, Rating: 4.8, PriceStart: 1800, Experience: 12, Age: 40, Slogan: "Срочный выезд 24/7", PhotoURL: photo(12)},
		{Name: "Алексей Новиков", Specialty: models.SpecialtyInstallation, Rating: 4.9, PriceStart: 3200, Experience: 9, Age: 38, Slogan: "Честные цены на черновую сантехнику", PhotoURL: photo(76)},
	}
}
