package api

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/mantonx/cinemadb/internal/types"
)

// CreateDirectorRequest is the body of POST /directors/
type CreateDirectorRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateDirectorRequest is the body of PUT /directors/:id
type UpdateDirectorRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateGenreRequest is the body of POST /genres/
type CreateGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateGenreRequest is the body of PUT /genres/:id
type UpdateGenreRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateMovieRequest is the body of POST /movies/
type CreateMovieRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	GenreID     *uint   `json:"genre_id"`
	DirectorID  *uint   `json:"director_id"`
}

// UpdateMovieRequest is the body of PUT /movies/:id. Omitted fields keep their value.
type UpdateMovieRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Trailer     *string  `json:"trailer"`
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	GenreID     *uint    `json:"genre_id"`
	DirectorID  *uint    `json:"director_id"`
}

// bindStrict decodes a JSON body rejecting unknown fields and trailing data,
// then runs the binding validator over the result
func bindStrict(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil {
		return types.NewValidationError("request body is required")
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return types.NewValidationError("request body is required")
		}
		return types.NewValidationError("invalid request body", err.Error())
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return types.NewValidationError("invalid request body", "unexpected data after JSON object")
	}

	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return types.NewValidationError("invalid request body", err.Error())
	}
	return nil
}

// parseID reads the :id path parameter; ok is false when it is not an unsigned integer
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseFilter reads an optional unsigned integer query parameter
func parseFilter(c *gin.Context, name string) (*uint, error) {
	raw, present := c.GetQuery(name)
	if !present {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, types.NewValidationError("invalid filter", name+" must be an integer").
			WithContext("parameter", name).
			WithContext("value", raw)
	}
	id := uint(v)
	return &id, nil
}
