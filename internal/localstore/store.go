// Package localstore is the durable key-value mirror the two state stores
// persist into, the counterpart of the browser's origin-scoped localStorage.
package localstore

import (
	"errors"
	"fmt"

	"github.com/ayeshaishere/admin-dashboard/internal/models"

	"gorm.io/gorm"
)

// Keys used by the storefront. Absence of a key is a normal state.
const (
	KeyUser = "user"
	KeyCart = "cart"
)

// Store is a synchronous string-keyed store. Get reports ok=false for a
// missing key; callers treat unparseable values the same way.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// DBStore persists entries in the local SQLite database.
type DBStore struct {
	db *gorm.DB
}

func NewDB(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Get(key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *DBStore) Set(key, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *DBStore) Delete(key string) error {
	if err := s.db.Delete(&models.KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
