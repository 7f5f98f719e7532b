package postgres

import (
	"context"
	"time"

	"addrcard/internal/domain/repository"
	"addrcard/internal/errors"
	"addrcard/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordStore keeps records in the record_entries table, one row per key.
type RecordStore struct {
	db *gorm.DB
}

var _ repository.RecordStore = (*RecordStore)(nil)

// NewRecordStore creates a gorm backed RecordStore
func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Migrate creates the record_entries table when missing
func (s *RecordStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.RecordModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate record_entries")
	}

	return nil
}

func (s *RecordStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row model.RecordModel
	err := s.db.WithContext(ctx).Where("record_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, repository.NewStoreIOError(repository.OpGet, key, err)
	}

	return row.Value, true, nil
}

// Set upserts the row, so the value is replaced in a single statement
func (s *RecordStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	now := time.Now()
	row := model.RecordModel{
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error

	return repository.NewStoreIOError(repository.OpSet, key, err)
}

func (s *RecordStore) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Where("record_key = ?", key).Delete(&model.RecordModel{}).Error

	return repository.NewStoreIOError(repository.OpRemove, key, err)
}
