package model

import "time"

// ChorePhoto is a photo record attached to a chore. Images are stored as
// data URLs, at most four per record.
type ChorePhoto struct {
	ID          string    `json:"id"`
	ChoreID     string    `json:"chore_id"`
	ImageURLs   []string  `json:"image_urls"`
	Comment     string    `json:"comment"`
	TakenAt     time.Time `json:"taken_at"`
	TakenBy     string    `json:"taken_by"`
	TakenByName string    `json:"taken_by_name"`
}
