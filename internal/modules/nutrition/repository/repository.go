package repository

import (
	"context"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NutritionRepository interface {
	CreateMeal(ctx context.Context, meal *entity.NutritionLog) error
	CreateMeals(ctx context.Context, meals []entity.NutritionLog) error
	FindMeal(ctx context.Context, userID, id uuid.UUID) (*entity.NutritionLog, error)
	// ListMeals returns meals in [from, to), newest first. Zero bounds are open.
	ListMeals(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]entity.NutritionLog, error)
	ListAllMeals(ctx context.Context, userID uuid.UUID) ([]entity.NutritionLog, error)
	DeleteMeal(ctx context.Context, userID, id uuid.UUID) (bool, error)
	FindExistingMealIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	CreateWeight(ctx context.Context, log *entity.WeightLog) error
	CreateWeights(ctx context.Context, logs []entity.WeightLog) error
	// ListWeights returns the weight series oldest first.
	ListWeights(ctx context.Context, userID uuid.UUID) ([]entity.WeightLog, error)
	FindExistingWeightIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)

	Transaction(ctx context.Context, fn func(tx *gorm.DB, repo NutritionRepository) error) error
	WithTx(tx *gorm.DB) NutritionRepository
}

type nutritionRepository struct {
	db *gorm.DB
}

func NewNutritionRepository(db *gorm.DB) NutritionRepository {
	return &nutritionRepository{db: db}
}

func (r *nutritionRepository) WithTx(tx *gorm.DB) NutritionRepository {
	if tx == nil {
		return r
	}
	return &nutritionRepository{db: tx}
}

func (r *nutritionRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB, repo NutritionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, &nutritionRepository{db: tx})
	})
}

func (r *nutritionRepository) CreateMeal(ctx context.Context, meal *entity.NutritionLog) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

func (r *nutritionRepository) CreateMeals(ctx context.Context, meals []entity.NutritionLog) error {
	if len(meals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(meals, 100).Error
}

func (r *nutritionRepository) FindMeal(ctx context.Context, userID, id uuid.UUID) (*entity.NutritionLog, error) {
	var meal entity.NutritionLog
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *nutritionRepository) ListMeals(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]entity.NutritionLog, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date < ?", to)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var meals []entity.NutritionLog
	err := query.Order("date desc").Find(&meals).Error
	return meals, err
}

func (r *nutritionRepository) ListAllMeals(ctx context.Context, userID uuid.UUID) ([]entity.NutritionLog, error) {
	var meals []entity.NutritionLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date asc").Find(&meals).Error
	return meals, err
}

func (r *nutritionRepository) DeleteMeal(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entity.NutritionLog{})
	return result.RowsAffected > 0, result.Error
}

func (r *nutritionRepository) FindExistingMealIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.existing(ctx, &entity.NutritionLog{}, ids)
}

func (r *nutritionRepository) CreateWeight(ctx context.Context, log *entity.WeightLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *nutritionRepository) CreateWeights(ctx context.Context, logs []entity.WeightLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

func (r *nutritionRepository) ListWeights(ctx context.Context, userID uuid.UUID) ([]entity.WeightLog, error) {
	var logs []entity.WeightLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date asc").Find(&logs).Error
	return logs, err
}

func (r *nutritionRepository) FindExistingWeightIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	return r.existing(ctx, &entity.WeightLog{}, ids)
}

func (r *nutritionRepository) existing(ctx context.Context, model interface{}, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	existing := make(map[uuid.UUID]bool)
	if len(ids) == 0 {
		return existing, nil
	}

	var found []uuid.UUID
	if err := r.db.WithContext(ctx).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		existing[id] = true
	}
	return existing, nil
}
