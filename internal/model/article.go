// Package model defines the data structures used throughout the application.
// Structs carry `json` tags for the HTTP layer and `db` tags naming the
// column each field is stored in.
package model

import "time"

// Article is a magazine article. ID and CreatedAt are assigned by the store
// and never change afterwards.
type Article struct {
	ID        int64     `json:"id"         db:"id"`
	Title     string    `json:"title"      db:"title"`
	Body      string    `json:"body"       db:"body"`
	Author    string    `json:"author"     db:"author"`
	ImageURL  *string   `json:"image_url"  db:"image_url"` // nil when no image was attached
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
