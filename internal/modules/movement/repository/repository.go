package repository

import (
	"context"
	"strings"

	"anoa.com/wodtracker/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MovementFilter struct {
	Search   string
	Category string
}

type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// Upsert inserts movements whose slug is not stored yet and returns how many were added.
	Upsert(ctx context.Context, movements []entity.Movement) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movement, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Movement, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]entity.Movement, error)
	ListAll(ctx context.Context) ([]entity.Movement, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type movementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, movement *entity.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

func (r *movementRepository) Upsert(ctx context.Context, movements []entity.Movement) (int64, error) {
	if len(movements) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
		Create(&movements)
	return result.RowsAffected, result.Error
}

func (r *movementRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movement, error) {
	var movement entity.Movement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

func (r *movementRepository) FindBySlug(ctx context.Context, slug string) (*entity.Movement, error) {
	var movement entity.Movement
	if err := r.db.WithContext(ctx).First(&movement, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &movement, nil
}

// FindByIDs keeps the order of ids so search ranking survives the round trip.
func (r *movementRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Movement, error) {
	if len(ids) == 0 {
		return []entity.Movement{}, nil
	}

	var rows []entity.Movement
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Movement, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	ordered := make([]entity.Movement, 0, len(rows))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}

func (r *movementRepository) List(ctx context.Context, filter MovementFilter) ([]entity.Movement, error) {
	query := r.db.WithContext(ctx).Model(&entity.Movement{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+escapeLike(search)+"%")
	}

	var movements []entity.Movement
	err := query.Order("category asc").Order("name asc").Find(&movements).Error
	return movements, err
}

func (r *movementRepository) ListAll(ctx context.Context) ([]entity.Movement, error) {
	var movements []entity.Movement
	err := r.db.WithContext(ctx).Order("name asc").Find(&movements).Error
	return movements, err
}

func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entity.Movement{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
