package storage

import "time"

// Backup is a previous version of a slot document.
type Backup struct {
	ID        int64
	Key       string
	Doc       []byte
	Reason    string
	CreatedAt time.Time
}
