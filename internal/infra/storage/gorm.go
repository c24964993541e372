package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored slot row.
type Entry struct {
	Owner     string `gorm:"primaryKey;type:varchar(64)"`
	Key       string `gorm:"column:slot_key;primaryKey;type:varchar(64)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "browser_slots" }

// GormStore keeps slots in a SQL table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, owner, key string) ([]byte, error) {
	var e Entry
	err := s.db.WithContext(ctx).
		Where("owner = ? AND slot_key = ?", owner, key).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot: %w", err)
	}
	return []byte(e.Value), nil
}

func (s *GormStore) Set(ctx context.Context, owner, key string, value []byte) error {
	e := Entry{Owner: owner, Key: key, Value: string(value)}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner"}, {Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
	if err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	return nil
}

func (s *GormStore) Remove(ctx context.Context, owner, key string) error {
	err := s.db.WithContext(ctx).
		Where("owner = ? AND slot_key = ?", owner, key).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	return nil
}
