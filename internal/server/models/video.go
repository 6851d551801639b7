// Package models contains the server-side data types for the video catalog.
package models

import "time"

// Video is the persisted catalog row. VideoKey and ThumbnailKey are object
// storage keys, not URLs; views resolve them to presigned URLs on the way out.
type Video struct {
	ID           string
	Title        string
	Description  string
	VideoKey     string
	ThumbnailKey string
	Duration     float64
	UploadDate   time.Time
	Size         int64
	Category     string
	Tags         []string
}

// VideoView is the wire representation of a catalog entry. Thumbnail and
// VideoURL carry resolved (presigned) URLs.
type VideoView struct {
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

// VideoUpdate carries a partial metadata edit. Nil fields are left unchanged.
type VideoUpdate struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
