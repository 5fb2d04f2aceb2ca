package repository

import (
	"context"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type WorkoutRepository interface {
	Create(ctx context.Context, log *entity.WorkoutLog) error
	CreateMany(ctx context.Context, logs []entity.WorkoutLog) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.WorkoutLog, error)
	FindByClientRef(ctx context.Context, userID uuid.UUID, clientRef string) (*entity.WorkoutLog, error)
	FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]entity.WorkoutLog, int64, error)
	// ListAll returns the whole history oldest first.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.WorkoutLog, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)
	PurgeUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	Transaction(ctx context.Context, fn func(tx *gorm.DB, repo WorkoutRepository) error) error
	WithTx(tx *gorm.DB) WorkoutRepository
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) WithTx(tx *gorm.DB) WorkoutRepository {
	if tx == nil {
		return r
	}
	return &workoutRepository{db: tx}
}

func (r *workoutRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB, repo WorkoutRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &workoutRepository{db: tx})
	})
}

func (r *workoutRepository) Create(ctx context.Context, log *entity.WorkoutLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workoutRepository) CreateMany(ctx context.Context, logs []entity.WorkoutLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

func (r *workoutRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.WorkoutLog, error) {
	var log entity.WorkoutLog
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *workoutRepository) FindByClientRef(ctx context.Context, userID uuid.UUID, clientRef string) (*entity.WorkoutLog, error) {
	var log entity.WorkoutLog
	if err := r.db.WithContext(ctx).Where("user_id = ? AND client_ref = ?", userID, clientRef).First(&log).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *workoutRepository) FindExistingIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	existing := make(map[uuid.UUID]bool)
	if len(ids) == 0 {
		return existing, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&entity.WorkoutLog{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}

func (r *workoutRepository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]entity.WorkoutLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.WorkoutLog{}).Where("user_id = ?", userID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []entity.WorkoutLog
	err := query.
		Order("date desc").
		Order("created_at desc").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	return logs, total, err
}

func (r *workoutRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.WorkoutLog, error) {
	var logs []entity.WorkoutLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date asc").
		Order("created_at asc").
		Find(&logs).Error
	return logs, err
}

func (r *workoutRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.WorkoutLog{})
	return result.RowsAffected > 0, result.Error
}

// PurgeUser deletes the whole workout history, inside tx when one is given.
func (r *workoutRepository) PurgeUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.WorkoutLog{}).Error
}
