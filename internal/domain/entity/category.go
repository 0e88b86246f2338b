package entity

import "time"

// Category representa una categoría de productos (taxonomía por usuario).
// Name es único por usuario sin distinguir mayúsculas.
type Category struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}
