package models

import "time"

// Post is a single blog entry owned by its author.
type Post struct {
	ID       int       `json:"id"`
	AuthorID int       `json:"author_id"`
	Created  time.Time `json:"created"` // set once by the server, UTC
	Title    string    `json:"title"`
	Body     string    `json:"body"`

	// AuthorUsername is filled by read queries that join users; ignored on write.
	AuthorUsername string `json:"author_username,omitempty"`
}
