package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/plumbing-backend/internal/models"
	"github.com/ignatzorin/plumbing-backend/internal/repository/common"
)

var ErrProfessionalNotFound = errors.New("professional not found")

const professionalColumns = `id, name, specialty, rating, price_start, experience, age, slogan, photo_url`

type ProfessionalRepository struct {
	db *sqlx.DB
}

func NewProfessionalRepository(db *sqlx.DB) *ProfessionalRepository {
	return &ProfessionalRepository{db: db}
}

// List возвращает всех мастеров в порядке добавления.
func (r *ProfessionalRepository) List(ctx context.Context) ([]models.Professional, error) {
	professionals := make([]models.Professional, 0)
	query := `SELECT ` + professionalColumns + ` FROM professionals ORDER BY id`
	if err := r.db.SelectContext(ctx, &professionals, query); err != nil {
		return nil, fmt.Errorf("professional repository: list %w", err)
	}
	return professionals, nil
}

// GetByID возвращает мастера по ID.
func (r *ProfessionalRepository) GetByID(ctx context.Context, id int64) (*models.Professional, error) {
	return common.GetByID[models.Professional](ctx, r.db, "professionals", id, ErrProfessionalNotFound)
}

// Count число мастеров в базе.
func (r *ProfessionalRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM professionals`); err != nil {
		return 0, fmt.Errorf("professional repository: count %w", err)
	}
	return count, nil
}

// CreateBatch вставляет мастеров одной транзакцией и возвращает число вставленных строк.
func (r *ProfessionalRepository) CreateBatch(ctx context.Context, professionals []models.Professional) (int, error) {
	if len(professionals) == 0 {
		return 0, nil
	}

	inserted := 0
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		inserter := common.NewBatchInserter(tx,
			`INSERT INTO professionals (name, specialty, rating, price_start, experience, age, slogan, photo_url)`,
			8, 50)

		for _, p := range professionals {
			rating := p.Rating
			if rating == 0 {
				rating = models.DefaultProfessionalRating
			}
			if err := inserter.Add(ctx,
				p.Name, p.Specialty, rating, p.PriceStart, p.Experience, p.Age, p.Slogan, p.PhotoURL,
			); err != nil {
				return err
			}
		}
		if err := inserter.Flush(ctx); err != nil {
			return err
		}

		inserted = inserter.Inserted()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("professional repository: create batch %w", err)
	}
	return inserted, nil
}

func listProfessionalsByIDs(ctx context.Context, q common.Queryer, ids []int64) (map[int64]models.Professional, error) {
	rows, err := common.SelectIn[models.Professional](ctx, q,
		`SELECT `+professionalColumns+` FROM professionals`, "id", ids)
	if err != nil {
		return nil, fmt.Errorf("professional repository: list by ids %w", err)
	}

	byID := make(map[int64]models.Professional, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	return byID, nil
}
