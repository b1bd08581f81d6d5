// Package seed loads catalog fixtures from YAML.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/mantonx/cinemadb/internal/database"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Fixture is the YAML document accepted by the seed command.
// Movies refer to genres and directors by name.
type Fixture struct {
	Genres    []NamedEntry   `yaml:"genres"`
	Directors []NamedEntry   `yaml:"directors"`
	Movies    []MovieFixture `yaml:"movies"`
}

// NamedEntry is a genre or director row
type NamedEntry struct {
	Name string `yaml:"name"`
}

// MovieFixture is a movie row
type MovieFixture struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Trailer     string  `yaml:"trailer"`
	Year        int     `yaml:"year"`
	Rating      float64 `yaml:"rating"`
	Genre       string  `yaml:"genre"`
	Director    string  `yaml:"director"`
}

// Result counts the rows inserted by Apply
type Result struct {
	Genres    int
	Directors int
	Movies    int
}

// LoadFile parses a fixture file, rejecting unknown keys
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var fixture Fixture
	if err := dec.Decode(&fixture); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &fixture, nil
}

// Apply inserts the fixture inside one transaction. Genres and directors
// that already exist by name are reused rather than duplicated.
func Apply(ctx context.Context, db *gorm.DB, fixture *Fixture) (Result, error) {
	var result Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		genres := make(map[string]uint)
		for _, g := range fixture.Genres {
			if g.Name == "" {
				return fmt.Errorf("genre with empty name")
			}
			row := database.Genre{}
			inserted, err := findOrCreate(tx, &row, g.Name, func() { row.Name = g.Name })
			if err != nil {
				return fmt.Errorf("failed to seed genre %q: %w", g.Name, err)
			}
			if inserted {
				result.Genres++
			}
			genres[g.Name] = row.ID
		}

		directors := make(map[string]uint)
		for _, d := range fixture.Directors {
			if d.Name == "" {
				return fmt.Errorf("director with empty name")
			}
			row := database.Director{}
			inserted, err := findOrCreate(tx, &row, d.Name, func() { row.Name = d.Name })
			if err != nil {
				return fmt.Errorf("failed to seed director %q: %w", d.Name, err)
			}
			if inserted {
				result.Directors++
			}
			directors[d.Name] = row.ID
		}

		for _, m := range fixture.Movies {
			if m.Title == "" {
				return fmt.Errorf("movie with empty title")
			}
			movie := database.Movie{
				Title:       m.Title,
				Description: m.Description,
				Trailer:     m.Trailer,
				Year:        m.Year,
				Rating:      m.Rating,
			}
			if m.Genre != "" {
				id, ok := genres[m.Genre]
				if !ok {
					return fmt.Errorf("movie %q references unknown genre %q", m.Title, m.Genre)
				}
				movie.GenreID = &id
			}
			if m.Director != "" {
				id, ok := directors[m.Director]
				if !ok {
					return fmt.Errorf("movie %q references unknown director %q", m.Title, m.Director)
				}
				movie.DirectorID = &id
			}
			if err := tx.Create(&movie).Error; err != nil {
				return fmt.Errorf("failed to seed movie %q: %w", m.Title, err)
			}
			result.Movies++
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// findOrCreate loads the row with the given name into dest, inserting it when absent
func findOrCreate(tx *gorm.DB, dest interface{}, name string, fill func()) (bool, error) {
	res := tx.Where("name = ?", name).Limit(1).Find(dest)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	fill()
	if err := tx.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}
