// Package models contains the client-side data types for the video catalog
// and the upload tracking core.
package models

import "time"

// Video is one catalog entry as served by the backend.
type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoURL    string    `json:"videoUrl"`
	Duration    float64   `json:"duration"`
	UploadDate  time.Time `json:"uploadDate"`
	Size        int64     `json:"size"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
}

// VideoMetadata is the user-supplied part of a new upload.
type VideoMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// VideoUpdate carries a partial metadata edit. Nil fields are left unchanged;
// Tags replaces the whole list when non-nil.
type VideoUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
