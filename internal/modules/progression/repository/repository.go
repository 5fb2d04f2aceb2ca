package repository

import (
	"context"
	"errors"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict is returned when the progress row changed since it was read.
var ErrVersionConflict = errors.New("user progress was modified concurrently")

type ProgressRepository interface {
	// GetOrCreate loads the progress row, inserting the zero record on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.UserProgress, error)
	// GetForUpdate is GetOrCreate plus a row lock, only meaningful inside a transaction.
	GetForUpdate(ctx context.Context, userID uuid.UUID) (*entity.UserProgress, error)
	CompareAndSwap(ctx context.Context, progress *entity.UserProgress) error
	AppendEvent(ctx context.Context, event *entity.XPEvent) error
	ListEvents(ctx context.Context, userID uuid.UUID, limit int) ([]entity.XPEvent, error)
	FindLastActiveBetween(ctx context.Context, from, to time.Time) ([]entity.UserProgress, error)
	Transaction(ctx context.Context, fn func(tx *gorm.DB, repo ProgressRepository) error) error
	WithTx(tx *gorm.DB) ProgressRepository
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	if tx == nil {
		return r
	}
	return &progressRepository{db: tx}
}

func (r *progressRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB, repo ProgressRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &progressRepository{db: tx})
	})
}

func (r *progressRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.UserProgress, error) {
	return r.getOrCreate(r.db.WithContext(ctx), userID)
}

func (r *progressRepository) GetForUpdate(ctx context.Context, userID uuid.UUID) (*entity.UserProgress, error) {
	return r.getOrCreate(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), userID)
}

func (r *progressRepository) getOrCreate(db *gorm.DB, userID uuid.UUID) (*entity.UserProgress, error) {
	progress := entity.UserProgress{UserID: userID, Tier: "principiante"}
	if err := db.Where(entity.UserProgress{UserID: userID}).FirstOrCreate(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) CompareAndSwap(ctx context.Context, progress *entity.UserProgress) error {
	result := r.db.WithContext(ctx).
		Model(&entity.UserProgress{}).
		Where("user_id = ? AND version = ?", progress.UserID, progress.Version).
		Updates(map[string]interface{}{
			"xp":                progress.XP,
			"tier":              progress.Tier,
			"tier_progress":     progress.TierProgress,
			"last_active_date":  progress.LastActiveDate,
			"last_penalty_date": progress.LastPenaltyDate,
			"version":           gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	progress.Version++
	return nil
}

func (r *progressRepository) AppendEvent(ctx context.Context, event *entity.XPEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *progressRepository) ListEvents(ctx context.Context, userID uuid.UUID, limit int) ([]entity.XPEvent, error) {
	var events []entity.XPEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *progressRepository) FindLastActiveBetween(ctx context.Context, from, to time.Time) ([]entity.UserProgress, error) {
	var rows []entity.UserProgress
	err := r.db.WithContext(ctx).
		Where("xp > 0 AND last_active_date >= ? AND last_active_date < ?", from, to).
		Find(&rows).Error
	return rows, err
}
