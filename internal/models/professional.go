package models

// Professional описывает мастера-сантехника.
type Professional struct {
	ID         int64         `db:"id" json:"id"`
	Name       string        `db:"name" json:"name"`
	Specialty  string        `db:"specialty" json:"specialty"`
	Rating     float64       `db:"rating" json:"rating"`
	PriceStart int           `db:"price_start" json:"price_start"`
	Experience int           `db:"experience" json:"experience"`
	Age        int           `db:"age" json:"age"`
	Slogan     string        `db:"slogan" json:"slogan"`
	PhotoURL   string        `db:"photo_url" json:"photo_url"`
	Services   []ServiceItem `db:"-" json:"services"`
}

// DefaultProfessionalRating рейтинг нового мастера.
const DefaultProfessionalRating = 5.0
