package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Blob is one persisted key-value row.
type Blob struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte `gorm:"type:blob"`
}

func (Blob) TableName() string { return "interview_blobs" }

// GormStore backs the key-value contract with a relational database
// (sqlite for local use, postgres in deployment).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, &PersistenceError{Op: "migrate", Key: "interview_blobs", Err: err}
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob Blob
	err := g.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "get", Key: key, Err: err}
	}
	return blob.Value, nil
}

func (g *GormStore) Set(ctx context.Context, key string, value []byte) error {
	blob := Blob{Key: key, Value: value}
	err := g.db.WithContext(ctx).Save(&blob).Error
	if err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	return nil
}

func (g *GormStore) Delete(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Delete(&Blob{}, "key = ?", key).Error
	if err != nil {
		return &PersistenceError{Op: "delete", Key: key, Err: err}
	}
	return nil
}
