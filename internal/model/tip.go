package model

import "time"

type Tip struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ReadTime    string    `json:"read_time"`
	ImageURL    string    `json:"image_url,omitempty"`
	Tags        []string  `json:"tags"`
	Likes       int       `json:"likes"`
	IsLiked     bool      `json:"is_liked"`
	PublishedAt time.Time `json:"published_at"`
}
