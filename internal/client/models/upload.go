package models

import "time"

// UploadStatus is the state of one tracked upload.
//
// The only legal transitions are uploading -> uploaded and uploading -> error.
type UploadStatus string

const (
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusUploaded  UploadStatus = "uploaded"
	UploadStatusError     UploadStatus = "error"
)

// UploadRecord tracks one in-flight or recently finished upload.
//
// TempID is the client-generated key; ServerID stays empty until the server
// responds with the catalog entry id. Progress is 0..100 and is not reset
// when the upload fails. StartTime is set at creation and never mutated.
type UploadRecord struct {
	TempID       string
	ServerID     string
	FileName     string
	Title        string
	Status       UploadStatus
	Progress     int
	ErrorMessage string
	StartTime    time.Time
}

// Finished reports whether the record reached a terminal status.
func (r UploadRecord) Finished() bool {
	return r.Status == UploadStatusUploaded || r.Status == UploadStatusError
}
