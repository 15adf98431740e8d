package models

import "time"

// FileInfo is the client-side view of a stored file, as returned by the
// server's file endpoints.
type FileInfo struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	OriginalFileName string    `json:"originalFileName"`
	StoredFileName   string    `json:"storedFileName"`
	ContentType      string    `json:"contentType"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploadedAt"`
}
