package storage

import "time"

// Entry is one persisted key-value pair. The stores round-trip small JSON
// blobs through this table the way the browser build used local storage.
type Entry struct {
	Key       string    `gorm:"primarykey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
