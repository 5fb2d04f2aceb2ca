package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

const (
	RoleAdmin   = "admin"
	RoleAthlete = "athlete"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	RoleID       *uint     `json:"role_id"`
	Role         Role      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	GoogleID     *string   `gorm:"size:100;uniqueIndex" json:"google_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

const (
	LanguageES = "es"
	LanguageEN = "en"
)

// Profile holds the athlete data the coach prompts are personalised with.
type Profile struct {
	UserID        uuid.UUID                     `gorm:"type:uuid;primaryKey" json:"user_id"`
	Name          string                        `gorm:"size:100;not null" json:"name"`
	Age           int                           `gorm:"not null;default:25" json:"age"`
	Weight        float64                       `gorm:"not null;default:75" json:"weight"`
	Height        float64                       `gorm:"not null;default:175" json:"height"`
	Gender        string                        `gorm:"size:10;not null;default:male" json:"gender"`
	Language      string                        `gorm:"size:5;not null;default:es" json:"language"`
	Country       string                        `gorm:"size:60" json:"country"`
	Timezone      string                        `gorm:"size:60" json:"timezone"`
	AvatarURL     *string                       `gorm:"type:text" json:"avatar_url,omitempty"`
	Equipment     datatypes.JSONSlice[string]   `gorm:"type:jsonb" json:"equipment"`
	NutritionGoal string                        `gorm:"size:30" json:"nutrition_goal"`
	DietPlan      *datatypes.JSONType[DietPlan] `gorm:"type:jsonb" json:"diet_plan,omitempty"`
	CreatedAt     time.Time                     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                     `gorm:"autoUpdateTime" json:"updated_at"`
}

// NewDefaultProfile returns the profile every new account starts with.
func NewDefaultProfile(userID uuid.UUID, name string) Profile {
	if name == "" {
		name = "Atleta"
	}
	return Profile{
		UserID:    userID,
		Name:      name,
		Age:       25,
		Weight:    75,
		Height:    175,
		Gender:    "male",
		Language:  LanguageES,
		Equipment: datatypes.JSONSlice[string]{},
	}
}

// Location resolves the profile timezone, falling back to def.
func (p *Profile) Location(def *time.Location) *time.Location {
	if p != nil && p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	if def == nil {
		return time.UTC
	}
	return def
}

// Plan returns the stored diet plan or nil.
func (p *Profile) Plan() *DietPlan {
	if p == nil || p.DietPlan == nil {
		return nil
	}
	plan := p.DietPlan.Data()
	return &plan
}
