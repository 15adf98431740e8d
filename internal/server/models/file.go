package models

import "time"

// FileRecord binds a stored blob to its owning account and original filename.
//
// OriginalFileName is display-only and never used as a storage path.
// StoredFileName is a server-generated opaque key, unique within the blob
// store and unrelated to any client-supplied name.
type FileRecord struct {
	ID               string    `json:"id"`
	OwnerID          string    `json:"ownerId"`
	OriginalFileName string    `json:"originalFileName"`
	StoredFileName   string    `json:"storedFileName"`
	ContentType      string    `json:"contentType"`
	Size             int64     `json:"size"`
	UploadedAt       time.Time `json:"uploadedAt"`
}
