package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MovementCategoryBasics        = "Básicos"
	MovementCategoryGymnastics    = "Gimnasia"
	MovementCategoryWeightlifting = "Halterofilia"
	MovementCategoryCardio        = "Cardio"
	MovementCategoryAccessories   = "Accesorios"
)

type Movement struct {
	ID          uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string                      `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Name        string                      `gorm:"size:120;not null" json:"name"`
	Category    string                      `gorm:"size:40;index;not null" json:"category"`
	Type        string                      `gorm:"size:40" json:"type"`
	Description string                      `gorm:"type:text" json:"description"`
	VideoID     string                      `gorm:"size:40" json:"video_id,omitempty"`
	Muscles     datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"muscles"`
	KeyPoints   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"key_points"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Movement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
