package models

import "time"

// KVEntry mirrors the browser localStorage slot: one serialized value per
// string key. Keys in use are "user" and "cart"; a missing row is a valid
// state (no session / empty cart).
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
