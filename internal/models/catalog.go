package models

// ServiceItem услуга из каталога с базовой ценой в рублях.
type ServiceItem struct {
	Name  string `json:"name" yaml:"name"`
	Price int    `json:"price" yaml:"price"`
}

// CatalogSection список услуг одной специальности.
type CatalogSection struct {
	Specialty string        `json:"specialty" yaml:"name"`
	Services  []ServiceItem `json:"services" yaml:"services"`
}
