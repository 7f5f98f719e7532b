package model

import (
	"time"
)

// RecordModel is the GORM-specific struct for the 'record_entries' table.
type RecordModel struct {
	Key       string `gorm:"column:record_key;type:varchar(255);primaryKey"`
	Value     []byte `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RecordModel) TableName() string {
	return "record_entries"
}
