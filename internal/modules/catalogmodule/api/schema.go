package api

import "github.com/mantonx/cinemadb/internal/database"

// DirectorResponse is the wire form of a director
type DirectorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// GenreResponse is the wire form of a genre
type GenreResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// MovieResponse is the wire form of a movie. Genre and Director carry the
// related entity's name, or null when the movie has none.
type MovieResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	GenreID     *uint   `json:"genre_id"`
	Genre       *string `json:"genre"`
	DirectorID  *uint   `json:"director_id"`
	Director    *string `json:"director"`
}

func newDirectorResponse(d database.Director) DirectorResponse {
	return DirectorResponse{ID: d.ID, Name: d.Name}
}

func newDirectorResponses(directors []database.Director) []DirectorResponse {
	out := make([]DirectorResponse, 0, len(directors))
	for _, d := range directors {
		out = append(out, newDirectorResponse(d))
	}
	return out
}

func newGenreResponse(g database.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name}
}

func newGenreResponses(genres []database.Genre) []GenreResponse {
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, newGenreResponse(g))
	}
	return out
}

func newMovieResponse(m database.Movie) MovieResponse {
	resp := MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     m.GenreID,
		DirectorID:  m.DirectorID,
	}
	if m.Genre != nil {
		name := m.Genre.Name
		resp.Genre = &name
	}
	if m.Director != nil {
		name := m.Director.Name
		resp.Director = &name
	}
	return resp
}

func newMovieResponses(movies []database.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, newMovieResponse(m))
	}
	return out
}
