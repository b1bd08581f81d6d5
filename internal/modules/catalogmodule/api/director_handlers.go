package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mantonx/cinemadb/internal/api"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/events"
)

const directorResource = "director"

// ListDirectors handles GET /directors/
func (h *Handler) ListDirectors(c *gin.Context) {
	directors, err := h.directors.List(c.Request.Context())
	if err != nil {
		h.respond(c, directorResource, 0, err)
		return
	}
	c.JSON(http.StatusOK, newDirectorResponses(directors))
}

// GetDirector handles GET /directors/:id
func (h *Handler) GetDirector(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, directorResource, c.Param("id"))
		return
	}

	director, err := h.directors.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respond(c, directorResource, id, err)
		return
	}
	c.JSON(http.StatusOK, newDirectorResponse(*director))
}

// CreateDirector handles POST /directors/
func (h *Handler) CreateDirector(c *gin.Context) {
	var req CreateDirectorRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	director := &database.Director{Name: req.Name}
	if err := h.directors.Create(c.Request.Context(), director); err != nil {
		h.respond(c, directorResource, 0, err)
		return
	}

	h.publish(c.Request.Context(), directorResource, events.ActionCreated, director.ID)
	created(c, "directors", director.ID)
}

// UpdateDirector handles PUT /directors/:id
func (h *Handler) UpdateDirector(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, directorResource, c.Param("id"))
		return
	}

	var req UpdateDirectorRequest
	if err := bindStrict(c, &req); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	if err := h.directors.UpdateName(c.Request.Context(), id, req.Name); err != nil {
		h.respond(c, directorResource, id, err)
		return
	}

	h.publish(c.Request.Context(), directorResource, events.ActionUpdated, id)
	c.Status(http.StatusNoContent)
}

// DeleteDirector handles DELETE /directors/:id
func (h *Handler) DeleteDirector(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		apierrors.RespondWithNotFound(c, directorResource, c.Param("id"))
		return
	}

	if err := h.directors.Delete(c.Request.Context(), id); err != nil {
		h.respond(c, directorResource, id, err)
		return
	}

	h.publish(c.Request.Context(), directorResource, events.ActionDeleted, id)
	c.Status(http.StatusNoContent)
}
