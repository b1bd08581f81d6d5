package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mantonx/cinemadb/internal/config"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Type: "sqlite", DatabasePath: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// newMockDb creates a GORM DB backed by go-sqlmock so the emitted SQL can be asserted
func newMockDb(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return db, mock
}

func uintPtr(v uint) *uint { return &v }

func TestDirectorLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDirectorRepository(setupTestDB(t))

	director := &database.Director{Name: "Agnès Varda"}
	require.NoError(t, repo.Create(ctx, director))
	require.NotZero(t, director.ID)

	got, err := repo.GetByID(ctx, director.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agnès Varda", got.Name)

	require.NoError(t, repo.UpdateName(ctx, director.ID, "Agnes Varda"))
	got, err = repo.GetByID(ctx, director.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agnes Varda", got.Name)

	require.NoError(t, repo.Delete(ctx, director.ID))
	_, err = repo.GetByID(ctx, director.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, director.ID), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateName(ctx, director.ID, "x"), ErrNotFound)
}

func TestGenreListOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewGenreRepository(setupTestDB(t))

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"Drama", "Comedy", "Western"} {
		require.NoError(t, repo.Create(ctx, &database.Genre{Name: name}))
	}

	genres, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 3)
	assert.Equal(t, "Drama", genres[0].Name)
	assert.Equal(t, "Western", genres[2].Name)
	assert.Less(t, genres[0].ID, genres[1].ID)
}

func TestMovieFilterAndPreload(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	genres := NewGenreRepository(db)
	directors := NewDirectorRepository(db)
	movies := NewMovieRepository(db)

	drama := &database.Genre{Name: "Drama"}
	western := &database.Genre{Name: "Western"}
	require.NoError(t, genres.Create(ctx, drama))
	require.NoError(t, genres.Create(ctx, western))
	leone := &database.Director{Name: "Sergio Leone"}
	require.NoError(t, directors.Create(ctx, leone))

	require.NoError(t, movies.Create(ctx, &database.Movie{Title: "The Good, the Bad and the Ugly", GenreID: &western.ID, DirectorID: &leone.ID}))
	require.NoError(t, movies.Create(ctx, &database.Movie{Title: "Duck, You Sucker", GenreID: &drama.ID, DirectorID: &leone.ID}))
	require.NoError(t, movies.Create(ctx, &database.Movie{Title: "Untitled"}))

	all, err := movies.List(ctx, MovieFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Western", all[0].Genre.Name)
	assert.Equal(t, "Sergio Leone", all[0].Director.Name)
	assert.Nil(t, all[2].Genre)
	assert.Nil(t, all[2].Director)

	both, err := movies.List(ctx, MovieFilter{GenreID: &drama.ID, DirectorID: &leone.ID})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "Duck, You Sucker", both[0].Title)

	byDirector, err := movies.List(ctx, MovieFilter{DirectorID: &leone.ID})
	require.NoError(t, err)
	assert.Len(t, byDirector, 2)

	none, err := movies.List(ctx, MovieFilter{GenreID: uintPtr(999)})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMovieCreateRejectsUnknownReference(t *testing.T) {
	ctx := context.Background()
	movies := NewMovieRepository(setupTestDB(t))

	err := movies.Create(ctx, &database.Movie{Title: "Ghost", GenreID: uintPtr(42)})
	assert.ErrorIs(t, err, ErrInvalidReference)

	all, err := movies.List(ctx, MovieFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMovieUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	movies := NewMovieRepository(db)
	genres := NewGenreRepository(db)

	sciFi := &database.Genre{Name: "Science Fiction"}
	require.NoError(t, genres.Create(ctx, sciFi))

	movie := &database.Movie{Title: "Stalker", Year: 1979, Rating: 8.1, Description: "The Zone"}
	require.NoError(t, movies.Create(ctx, movie))

	year := 1980
	require.NoError(t, movies.Update(ctx, movie.ID, MovieUpdate{Year: &year, GenreID: &sciFi.ID}))

	got, err := movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Equal(t, 1980, got.Year)
	assert.Equal(t, "Stalker", got.Title)
	assert.Equal(t, "The Zone", got.Description)
	assert.InDelta(t, 8.1, got.Rating, 0.001)
	require.NotNil(t, got.Genre)
	assert.Equal(t, "Science Fiction", got.Genre.Name)

	assert.ErrorIs(t, movies.Update(ctx, movie.ID, MovieUpdate{DirectorID: uintPtr(7)}), ErrInvalidReference)
	assert.ErrorIs(t, movies.Update(ctx, 9999, MovieUpdate{Year: &year}), ErrNotFound)
	assert.NoError(t, movies.Update(ctx, movie.ID, MovieUpdate{}))
}

func TestMovieDelete(t *testing.T) {
	ctx := context.Background()
	movies := NewMovieRepository(setupTestDB(t))

	movie := &database.Movie{Title: "Solaris"}
	require.NoError(t, movies.Create(ctx, movie))
	require.NoError(t, movies.Delete(ctx, movie.ID))

	_, err := movies.GetByID(ctx, movie.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, movies.Delete(ctx, movie.ID), ErrNotFound)
}

func TestDeletingReferencedEntitiesClearsMovieKeys(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	genres := NewGenreRepository(db)
	directors := NewDirectorRepository(db)
	movies := NewMovieRepository(db)

	genre := &database.Genre{Name: "Noir"}
	director := &database.Director{Name: "Jean-Pierre Melville"}
	require.NoError(t, genres.Create(ctx, genre))
	require.NoError(t, directors.Create(ctx, director))

	movie := &database.Movie{Title: "Le Samouraï", GenreID: &genre.ID, DirectorID: &director.ID}
	require.NoError(t, movies.Create(ctx, movie))

	require.NoError(t, directors.Delete(ctx, director.ID))
	got, err := movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DirectorID)
	assert.Nil(t, got.Director)
	require.NotNil(t, got.GenreID)

	require.NoError(t, genres.Delete(ctx, genre.ID))
	got, err = movies.GetByID(ctx, movie.ID)
	require.NoError(t, err)
	assert.Nil(t, got.GenreID)
}

func TestMovieListFilterSQL(t *testing.T) {
	db, mock := newMockDb(t)
	movies := NewMovieRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movie" WHERE genre_id = $1 AND director_id = $2 ORDER BY id`)).
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "genre_id", "director_id"}))

	result, err := movies.List(context.Background(), MovieFilter{GenreID: uintPtr(2), DirectorID: uintPtr(3)})
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieGetMapsMissingRow(t *testing.T) {
	db, mock := newMockDb(t)
	movies := NewMovieRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "movie" WHERE "movie"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := movies.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
