// Package repository provides the data access layer for the catalog
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when the requested row does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalidReference is returned when a movie points at a missing genre or director
	ErrInvalidReference = errors.New("invalid reference")
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
