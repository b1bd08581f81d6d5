package database

// Director represents a film director
type Director struct {
	ID   uint   `gorm:"primaryKey" json:"id" yaml:"id"`
	Name string `gorm:"size:255" json:"name" yaml:"name"`
}

// TableName pins the table name
func (Director) TableName() string {
	return "director"
}

// Genre represents a film genre
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id" yaml:"id"`
	Name string `gorm:"size:255" json:"name" yaml:"name"`
}

// TableName pins the table name
func (Genre) TableName() string {
	return "genre"
}

// Movie represents a film with optional genre and director references
type Movie struct {
	ID          uint    `gorm:"primaryKey" json:"id" yaml:"id"`
	Title       string  `gorm:"size:255" json:"title" yaml:"title"`
	Description string  `gorm:"size:255" json:"description" yaml:"description"`
	Trailer     string  `gorm:"size:255" json:"trailer" yaml:"trailer"`
	Year        int     `json:"year" yaml:"year"`
	Rating      float64 `json:"rating" yaml:"rating"`

	GenreID    *uint     `gorm:"index" json:"genre_id" yaml:"genre_id"`
	Genre      *Genre    `gorm:"constraint:OnDelete:SET NULL" json:"-" yaml:"-"`
	DirectorID *uint     `gorm:"index" json:"director_id" yaml:"director_id"`
	Director   *Director `gorm:"constraint:OnDelete:SET NULL" json:"-" yaml:"-"`
}

// TableName pins the table name
func (Movie) TableName() string {
	return "movie"
}

// Models lists every catalog model in creation order
func Models() []interface{} {
	return []interface{}{
		&Director{},
		&Genre{},
		&Movie{},
	}
}
