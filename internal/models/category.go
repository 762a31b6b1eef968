package models

import "time"

// Category groups tasks by name. A nil UserID marks a global category
// shared by everyone.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    *int64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
