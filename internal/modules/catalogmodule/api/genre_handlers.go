package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mantonx/cinemadb/internal/api"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/events"
)

const genreResource = "genre"

// ListGenres handles GET /genres/
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.genres.List(c.Request.Context())
	if err != nil {
		h.respond(c, genreResource, 0, err)
		return
	}
	c.JSON(http.StatusOK, newGenreResponses(genres))
}

// GetGenre handles GET /genres/:id
func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, genreResource, c.Param("id"))
		return
	}

	genre, err := h.genres.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respond(c, genreResource, id, err)
		return
	}
	c.JSON(http.StatusOK, newGenreResponse(*genre))
}

// CreateGenre handles POST /genres/
func (h *Handler) CreateGenre(c *gin.Context) {
	var req CreateGenreRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	genre := &database.Genre{Name: req.Name}
	if err := h.genres.Create(c.Request.Context(), genre); err != nil {
		h.respond(c, genreResource, 0, err)
		return
	}

	h.publish(c.Request.Context(), genreResource, events.ActionCreated, genre.ID)
	created(c, "genres", genre.ID)
}

// UpdateGenre handles PUT /genres/:id
func (h *Handler) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, genreResource, c.Param("id"))
		return
	}

	var req UpdateGenreRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if err := h.genres.UpdateName(c.Request.Context(), id, req.Name); err != nil {
		h.respond(c, genreResource, id, err)
		return
	}

	h.publish(c.Request.Context(), genreResource, events.ActionUpdated, id)
	c.Status(http.StatusNoContent)
}

// DeleteGenre handles DELETE /genres/:id
func (h *Handler) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, genreResource, c.Param("id"))
		return
	}

	if err := h.genres.Delete(c.Request.Context(), id); err != nil {
		h.respond(c, genreResource, id, err)
		return
	}

	h.publish(c.Request.Context(), genreResource, events.ActionDeleted, id)
	c.Status(http.StatusNoContent)
}
