package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/apiroutes"
)

// RegisterRoutes registers the catalog resource routes
func RegisterRoutes(router *gin.Engine, handler *Handler, routes *apiroutes.Registry, module string) {
	movieGroup := router.Group("/movies")
	{
		movieGroup.GET("/", handler.ListMovies)
		movieGroup.POST("/", handler.CreateMovie)
		movieGroup.GET("/:id", handler.GetMovie)
		movieGroup.PUT("/:id", handler.UpdateMovie)
		movieGroup.DELETE("/:id", handler.DeleteMovie)
	}

	directorGroup := router.Group("/directors")
	{
		directorGroup.GET("/", handler.ListDirectors)
		directorGroup.POST("/", handler.CreateDirector)
		directorGroup.GET("/:id", handler.GetDirector)
		directorGroup.PUT("/:id", handler.UpdateDirector)
		directorGroup.DELETE("/:id", handler.DeleteDirector)
	}

	genreGroup := router.Group("/genres")
	{
		genreGroup.GET("/", handler.ListGenres)
		genreGroup.POST("/", handler.CreateGenre)
		genreGroup.GET("/:id", handler.GetGenre)
		genreGroup.PUT("/:id", handler.UpdateGenre)
		genreGroup.DELETE("/:id", handler.DeleteGenre)
	}

	if routes == nil {
		return
	}
	for _, r := range []struct{ method, path, desc string }{
		{http.MethodGet, "/movies/", "List movies, filtered by genre_id and director_id"},
		{http.MethodPost, "/movies/", "Create a movie"},
		{http.MethodGet, "/movies/:id", "Get a movie"},
		{http.MethodPut, "/movies/:id", "Update a movie"},
		{http.MethodDelete, "/movies/:id", "Delete a movie"},
		{http.MethodGet, "/directors/", "List directors"},
		{http.MethodPost, "/directors/", "Create a director"},
		{http.MethodGet, "/directors/:id", "Get a director"},
		{http.MethodPut, "/directors/:id", "Rename a director"},
		{http.MethodDelete, "/directors/:id", "Delete a director"},
		{http.MethodGet, "/genres/", "List genres"},
		{http.MethodPost, "/genres/", "Create a genre"},
		{http.MethodGet, "/genres/:id", "Get a genre"},
		{http.MethodPut, "/genres/:id", "Rename a genre"},
		{http.MethodDelete, "/genres/:id", "Delete a genre"},
	} {
		routes.Register(module, r.method, r.path, r.desc)
	}
}
