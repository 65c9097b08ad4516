// Package catalog хранит неизменяемый прайс услуг по специальностям мастеров.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/plumbing-backend/internal/models"
)

//go:embed services.yaml
var defaultServices []byte

// ErrInvalidCatalog возвращается, если файл прайса не проходит проверку.
var ErrInvalidCatalog = errors.New("catalog: некорректный прайс")

// Catalog строится один раз при старте и дальше только читается.
type Catalog struct {
	fallback string
	order    []string
	sections map[string][]models.ServiceItem
}

type catalogFile struct {
	Fallback    string                  `yaml:"fallback"`
	Specialties []models.CatalogSection `yaml:"specialties"`
}

// Default возвращает встроенный прайс.
func Default() *Catalog {
	c, err := Parse(defaultServices)
	if err != nil {
		panic(fmt.Sprintf("catalog: встроенный прайс повреждён: %v", err))
	}
	return c
}

// Load читает прайс из файла; пустой путь означает встроенный прайс.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: не удалось прочитать %s: %w", path, err)
	}

	return Parse(data)
}

// Parse разбирает и проверяет YAML прайса.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if len(file.Specialties) == 0 {
		return nil, fmt.Errorf("%w: нет ни одной специальности", ErrInvalidCatalog)
	}

	c := &Catalog{
		fallback: strings.TrimSpace(file.Fallback),
		order:    make([]string, 0, len(file.Specialties)),
		sections: make(map[string][]models.ServiceItem, len(file.Specialties)),
	}

	for _, section := range file.Specialties {
		name := strings.TrimSpace(section.Specialty)
		if name == "" {
			return nil, fmt.Errorf("%w: пустое название специальности", ErrInvalidCatalog)
		}
		if _, exists := c.sections[name]; exists {
			return nil, fmt.Errorf("%w: специальность %q указана дважды", ErrInvalidCatalog, name)
		}
		if len(section.Services) == 0 {
			return nil, fmt.Errorf("%w: у специальности %q нет услуг", ErrInvalidCatalog, name)
		}
		for _, item := range section.Services {
			if strings.TrimSpace(item.Name) == "" {
				return nil, fmt.Errorf("%w: услуга без названия у %q", ErrInvalidCatalog, name)
			}
			if item.Price <= 0 {
				return nil, fmt.Errorf("%w: цена услуги %q должна быть положительной", ErrInvalidCatalog, item.Name)
			}
		}

		c.order = append(c.order, name)
		c.sections[name] = section.Services
	}

	if _, ok := c.sections[c.fallback]; !ok {
		return nil, fmt.Errorf("%w: специальность по умолчанию %q не найдена", ErrInvalidCatalog, c.fallback)
	}

	return c, nil
}

// Lookup возвращает копию прайса специальности; неизвестная специальность получает прайс по умолчанию.
func (c *Catalog) Lookup(specialty string) []models.ServiceItem {
	items, ok := c.sections[specialty]
	if !ok {
		items = c.sections[c.fallback]
	}

	out := make([]models.ServiceItem, len(items))
	copy(out, items)
	return out
}

// Fallback название специальности по умолчанию.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Specialties названия специальностей в порядке файла.
func (c *Catalog) Specialties() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Sections весь прайс в порядке файла.
func (c *Catalog) Sections() []models.CatalogSection {
	out := make([]models.CatalogSection, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, models.CatalogSection{
			Specialty: name,
			Services:  c.Lookup(name),
		})
	}
	return out
}
