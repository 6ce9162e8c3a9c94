package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/amishk599/jobboard/internal/model"
)

// userRecord is the GORM model for the users table.
type userRecord struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"not null;default:''"`
	Name      string `gorm:"not null;default:''"`
	Image     string `gorm:"not null;default:''"`
	Resume    string `gorm:"not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRecord) TableName() string { return "users" }

// PostgresStore keeps users in Postgres through GORM.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to dsn and migrates the users table.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := db.AutoMigrate(&userRecord{}); err != nil {
		closeGorm(db)
		return nil, fmt.Errorf("migrating users table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// UpsertUser inserts the user or updates the provider-owned fields of an
// existing one. The stored resume is never overwritten on update.
func (s *PostgresStore) UpsertUser(ctx context.Context, u model.User) error {
	rec := userRecord{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.Image, Resume: u.Resume}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "name", "image", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upserting user %s: %w", u.ID, err)
	}
	return nil
}

// DeleteUser removes the user. Deleting an unknown ID is not an error.
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&userRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	return nil
}

// GetUser returns the user with the given ID or model.ErrUserNotFound.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (model.User, error) {
	var rec userRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("loading user %s: %w", id, err)
	}
	return model.User{
		ID:        rec.ID,
		Email:     rec.Email,
		Name:      rec.Name,
		Image:     rec.Image,
		Resume:    rec.Resume,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return closeGorm(s.db)
}

func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
