// Package api exposes the catalog resources over HTTP
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"
	apierrors "github.com/mantonx/cinemadb/internal/api"
	"github.com/mantonx/cinemadb/internal/events"
	"github.com/mantonx/cinemadb/internal/modules/catalogmodule/repository"
	"github.com/mantonx/cinemadb/internal/types"
)

// Handler provides HTTP handlers for the catalog resources
type Handler struct {
	directors *repository.DirectorRepository
	genres    *repository.GenreRepository
	movies    *repository.MovieRepository
	bus       events.EventBus
	logger    hclog.Logger
}

// NewHandler creates a new catalog API handler
func NewHandler(
	directors *repository.DirectorRepository,
	genres *repository.GenreRepository,
	movies *repository.MovieRepository,
	bus events.EventBus,
	logger hclog.Logger,
) *Handler {
	if bus == nil {
		bus = events.NewNoopEventBus()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Handler{
		directors: directors,
		genres:    genres,
		movies:    movies,
		bus:       bus,
		logger:    logger,
	}
}

// respond maps repository errors onto HTTP responses
func (h *Handler) respond(c *gin.Context, resource string, id uint, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		apierrors.RespondWithNotFound(c, resource, strconv.FormatUint(uint64(id), 10))
	case errors.Is(err, repository.ErrInvalidReference):
		apierrors.RespondWithError(c, types.NewValidationError("invalid reference", err.Error()))
	default:
		var appErr *types.AppError
		if errors.As(err, &appErr) {
			apierrors.RespondWithError(c, appErr)
			return
		}
		apierrors.RespondWithInternalError(c, "failed to access "+resource, err)
	}
}

// created answers 201 with an empty body and the new resource location
func created(c *gin.Context, collection string, id uint) {
	c.Header("Location", "/"+collection+"/"+strconv.FormatUint(uint64(id), 10))
	c.Status(http.StatusCreated)
}

// publish emits a catalog event once the write has committed. A full
// buffer drops the event; the request still succeeds.
func (h *Handler) publish(ctx context.Context, entity, action string, id uint) {
	if err := h.bus.Publish(ctx, events.NewCatalogEvent(entity, action, id)); err != nil {
		h.logger.Warn("failed to publish catalog event", "entity", entity, "action", action, "id", id, "error", err)
	}
}
