package repository

import (
	"context"
	"fmt"

	"github.com/mantonx/cinemadb/internal/database"
	"gorm.io/gorm"
)

// MovieFilter restricts a movie listing by exact foreign key equality.
// Nil fields are not filtered on.
type MovieFilter struct {
	GenreID    *uint
	DirectorID *uint
}

// MovieUpdate carries the fields of a partial movie update. Nil fields are left unchanged.
type MovieUpdate struct {
	Title       *string
	Description *string
	Trailer     *string
	Year        *int
	Rating      *float64
	GenreID     *uint
	DirectorID  *uint
}

func (u MovieUpdate) changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Title != nil {
		changes["title"] = *u.Title
	}
	if u.Description != nil {
		changes["description"] = *u.Description
	}
	if u.Trailer != nil {
		changes["trailer"] = *u.Trailer
	}
	if u.Year != nil {
		changes["year"] = *u.Year
	}
	if u.Rating != nil {
		changes["rating"] = *u.Rating
	}
	if u.GenreID != nil {
		changes["genre_id"] = *u.GenreID
	}
	if u.DirectorID != nil {
		changes["director_id"] = *u.DirectorID
	}
	return changes
}

// MovieRepository handles database operations for movies
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// List returns the movies matching the filter in primary key order,
// with their genre and director loaded
func (r *MovieRepository) List(ctx context.Context, filter MovieFilter) ([]database.Movie, error) {
	query := r.db.WithContext(ctx).Preload("Genre").Preload("Director")

	if filter.GenreID != nil {
		query = query.Where("genre_id = ?", *filter.GenreID)
	}
	if filter.DirectorID != nil {
		query = query.Where("director_id = ?", *filter.DirectorID)
	}

	movies := make([]database.Movie, 0)
	if err := query.Order("id").Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// GetByID retrieves a movie by ID with its genre and director loaded
func (r *MovieRepository) GetByID(ctx context.Context, id uint) (*database.Movie, error) {
	var movie database.Movie
	err := r.db.WithContext(ctx).
		Preload("Genre").
		Preload("Director").
		First(&movie, id).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return &movie, nil
}

// Create inserts a movie after checking that its references exist
func (r *MovieRepository) Create(ctx context.Context, movie *database.Movie) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, movie.GenreID, movie.DirectorID); err != nil {
			return err
		}
		if err := tx.Omit("Genre", "Director").Create(movie).Error; err != nil {
			return fmt.Errorf("failed to create movie: %w", err)
		}
		return nil
	})
}

// Update applies a partial update to an existing movie
func (r *MovieRepository) Update(ctx context.Context, id uint, update MovieUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var movie database.Movie
		if err := tx.First(&movie, id).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("movie %d: %w", id, ErrNotFound)
			}
			return fmt.Errorf("failed to load movie: %w", err)
		}

		if err := checkReferences(tx, update.GenreID, update.DirectorID); err != nil {
			return err
		}

		changes := update.changes()
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&movie).Updates(changes).Error; err != nil {
			return fmt.Errorf("failed to update movie: %w", err)
		}
		return nil
	})
}

// Delete removes a movie
func (r *MovieRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&database.Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	return nil
}

func checkReferences(tx *gorm.DB, genreID, directorID *uint) error {
	if genreID != nil {
		if err := exists(tx, &database.Genre{}, *genreID); err != nil {
			return fmt.Errorf("genre %d: %w", *genreID, err)
		}
	}
	if directorID != nil {
		if err := exists(tx, &database.Director{}, *directorID); err != nil {
			return fmt.Errorf("director %d: %w", *directorID, err)
		}
	}
	return nil
}

func exists(tx *gorm.DB, model interface{}, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrInvalidReference
	}
	return nil
}
