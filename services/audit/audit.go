package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ListingRequest is one served listing, kept for usage reporting only.
type ListingRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Endpoint     string    `gorm:"size:64;not null;index"`
	Search       string    `gorm:"size:255"`
	Page         int
	ItemsPerPage int
	TotalItems   int
	DurationMs   int64
	RequestedAt  time.Time `gorm:"not null;index"`
}

func (ListingRequest) TableName() string {
	return "listing_requests"
}

func (r *ListingRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Open connects to PostgreSQL and migrates the audit schema.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&ListingRequest{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// Recorder stores listing requests. A Recorder without a database is a no-op.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.db != nil
}

func (r *Recorder) Record(entry ListingRequest) {
	if !r.Enabled() {
		return
	}
	if entry.RequestedAt.IsZero() {
		entry.RequestedAt = time.Now().UTC()
	}
	if err := r.db.Create(&entry).Error; err != nil {
		log.Warn().Err(err).Str("endpoint", entry.Endpoint).Msg("Failed to record listing request")
	}
}

// Status reports "disabled", "up" or "down" for health checks.
func (r *Recorder) Status() string {
	if !r.Enabled() {
		return "disabled"
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return "down"
	}
	if err := sqlDB.Ping(); err != nil {
		return "down"
	}
	return "up"
}
