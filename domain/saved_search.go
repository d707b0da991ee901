package domain

import "time"

// SavedSearch es una búsqueda guardada por un usuario.
// Query es el query string ya codificado (city=Paris&price=...), así el link es compartible.
type SavedSearch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(64);index;not null" json:"userId"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Query     string    `gorm:"type:varchar(512)" json:"query"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName especifica el nombre de la tabla en MySQL
func (SavedSearch) TableName() string {
	return "saved_searches"
}
