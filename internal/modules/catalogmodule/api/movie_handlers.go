package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mantonx/cinemadb/internal/api"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/events"
	"github.com/mantonx/cinemadb/internal/modules/catalogmodule/repository"
)

const movieResource = "movie"

// ListMovies handles GET /movies/
//
// Query parameters:
//   - genre_id: only movies with this genre
//   - director_id: only movies by this director
func (h *Handler) ListMovies(c *gin.Context) {
	genreID, err := parseFilter(c, "genre_id")
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	directorID, err := parseFilter(c, "director_id")
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	movies, err := h.movies.List(c.Request.Context(), repository.MovieFilter{
		GenreID:    genreID,
		DirectorID: directorID,
	})
	if err != nil {
		h.respond(c, movieResource, 0, err)
		return
	}
	c.JSON(http.StatusOK, newMovieResponses(movies))
}

// GetMovie handles GET /movies/:id
func (h *Handler) GetMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, movieResource, c.Param("id"))
		return
	}

	movie, err := h.movies.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respond(c, movieResource, id, err)
		return
	}
	c.JSON(http.StatusOK, newMovieResponse(*movie))
}

// CreateMovie handles POST /movies/
func (h *Handler) CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	movie := &database.Movie{
		Title:       req.Title,
		Description: req.Description,
		Trailer:     req.Trailer,
		Year:        req.Year,
		Rating:      req.Rating,
		GenreID:     req.GenreID,
		DirectorID:  req.DirectorID,
	}
	if err := h.movies.Create(c.Request.Context(), movie); err != nil {
		h.respond(c, movieResource, 0, err)
		return
	}

	h.publish(c.Request.Context(), movieResource, events.ActionCreated, movie.ID)
	created(c, "movies", movie.ID)
}

// UpdateMovie handles PUT /movies/:id
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, movieResource, c.Param("id"))
		return
	}

	var req UpdateMovieRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	err := h.movies.Update(c.Request.Context(), id, repository.MovieUpdate{
		Title:       req.Title,
		Description: req.Description,
		Trailer:     req.Trailer,
		Year:        req.Year,
		Rating:      req.Rating,
		GenreID:     req.GenreID,
		DirectorID:  req.DirectorID,
	})
	if err != nil {
		h.respond(c, movieResource, id, err)
		return
	}

	h.publish(c.Request.Context(), movieResource, events.ActionUpdated, id)
	c.Status(http.StatusNoContent)
}

// DeleteMovie handles DELETE /movies/:id
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, movieResource, c.Param("id"))
		return
	}

	if err := h.movies.Delete(c.Request.Context(), id); err != nil {
		h.respond(c, movieResource, id, err)
		return
	}

	h.publish(c.Request.Context(), movieResource, events.ActionDeleted, id)
	c.Status(http.StatusNoContent)
}
