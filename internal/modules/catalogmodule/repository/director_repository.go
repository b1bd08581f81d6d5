package repository

import (
	"context"
	"fmt"

	"github.com/mantonx/cinemadb/internal/database"
	"gorm.io/gorm"
)

// DirectorRepository handles database operations for directors
type DirectorRepository struct {
	db *gorm.DB
}

// NewDirectorRepository creates a new director repository
func NewDirectorRepository(db *gorm.DB) *DirectorRepository {
	return &DirectorRepository{db: db}
}

// List returns every director in primary key order
func (r *DirectorRepository) List(ctx context.Context) ([]database.Director, error) {
	directors := make([]database.Director, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&directors).Error; err != nil {
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return directors, nil
}

// GetByID retrieves a director by ID
func (r *DirectorRepository) GetByID(ctx context.Context, id uint) (*database.Director, error) {
	var director database.Director
	if err := r.db.WithContext(ctx).First(&director, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("director %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get director: %w", err)
	}
	return &director, nil
}

// Create inserts a director and fills in its generated ID
func (r *DirectorRepository) Create(ctx context.Context, director *database.Director) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(director).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create director: %w", err)
	}
	return nil
}

// UpdateName replaces the name of an existing director
func (r *DirectorRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var director database.Director
		if err := tx.First(&director, id).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("director %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load director: %w", err)
		}
		if err := tx.Model(&director).Update("name", name).Error; err != nil {
			return fmt.Errorf("failed to update director: %w", err)
		}
		return nil
	})
}

// Delete removes a director and clears director_id on the movies that referenced it
func (r *DirectorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var director database.Director
		if err := tx.First(&director, id).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("director %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load director: %w", err)
		}
		if err := clearReference(tx, "director_id", id); err != nil {
			return err
		}
		if err := tx.Delete(&director).Error; err != nil {
			return fmt.Errorf("failed to delete director: %w", err)
		}
		return nil
	})
}

// clearReference nulls a movie foreign key column for every row pointing at id
func clearReference(tx *gorm.DB, column string, id uint) error {
	err := tx.Model(&database.Movie{}).
		Where(column+" = ?", id).
		Update(column, gorm.Expr("NULL")).Error
	if err != nil {
		return fmt.Errorf("failed to clear movie %s: %w", column, err)
	}
	return nil
}
