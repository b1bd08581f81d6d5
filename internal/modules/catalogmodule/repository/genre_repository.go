package repository

import (
	"context"
	"fmt"

	"github.com/mantonx/cinemadb/internal/database"
	"gorm.io/gorm"
)

// GenreRepository handles database operations for genres
type GenreRepository struct {
	db *gorm.DB
}

// NewGenreRepository creates a new genre repository
func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

// List returns every genre in primary key order
func (r *GenreRepository) List(ctx context.Context) ([]database.Genre, error) {
	genres := make([]database.Genre, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&genres).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

// GetByID retrieves a genre by ID
func (r *GenreRepository) GetByID(ctx context.Context, id uint) (*database.Genre, error) {
	var genre database.Genre
	if err := r.db.WithContext(ctx).First(&genre, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("genre %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return &genre, nil
}

// Create inserts a genre and fills in its generated ID
func (r *GenreRepository) Create(ctx context.Context, genre *database.Genre) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(genre).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create genre: %w", err)
	}
	return nil
}

// UpdateName replaces the name of an existing genre
func (r *GenreRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre database.Genre
		if err := tx.First(&genre, id).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("genre %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load genre: %w", err)
		}
		if err := tx.Model(&genre).Update("name", name).Error; err != nil {
			return fmt.Errorf("failed to update genre: %w", err)
		}
		return nil
	})
}

// Delete removes a genre and clears genre_id on the movies that referenced it
func (r *GenreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre database.Genre
		if err := tx.First(&genre, id).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("genre %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load genre: %w", err)
		}
		if err := clearReference(tx, "genre_id", id); err != nil {
			return err
		}
		if err := tx.Delete(&genre).Error; err != nil {
			return fmt.Errorf("failed to delete genre: %w", err)
		}
		return nil
	})
}
