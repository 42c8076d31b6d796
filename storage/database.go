package storage

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// documentRow maps one named document to one table row.
type documentRow struct {
	Type      string `gorm:"primaryKey;column:type"`
	Data      []byte `gorm:"column:data"`
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "documents" }

// DatabaseBackend keeps documents in a sqlite table. Writes are atomic
// upserts, so unlike the object store there is no empty window during Set.
type DatabaseBackend struct {
	db *gorm.DB
}

func NewDatabaseBackend(path string) (*DatabaseBackend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&documentRow{}); err != nil {
		return nil, err
	}
	return &DatabaseBackend{db: db}, nil
}

func (b *DatabaseBackend) Get(ctx context.Context, typ DocType) ([]byte, error) {
	var row documentRow
	err := b.db.WithContext(ctx).First(&row, "type = ?", string(typ)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Data, nil
}

func (b *DatabaseBackend) Set(ctx context.Context, typ DocType, data []byte) error {
	row := documentRow{Type: string(typ), Data: data, UpdatedAt: time.Now().UTC()}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
}

func (b *DatabaseBackend) Delete(ctx context.Context, typ DocType) error {
	return b.db.WithContext(ctx).Delete(&documentRow{}, "type = ?", string(typ)).Error
}

func (b *DatabaseBackend) Exists(ctx context.Context, typ DocType) (bool, error) {
	var count int64
	err := b.db.WithContext(ctx).Model(&documentRow{}).Where("type = ?", string(typ)).Count(&count).Error
	return count > 0, err
}
