package bootstrap

import (
	"context"
	"errors"
	"strings"

	"anoa.com/wodtracker/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Profile{},
		&entity.UserProgress{},
		&entity.XPEvent{},
		&entity.WorkoutLog{},
		&entity.NutritionLog{},
		&entity.WeightLog{},
		&entity.Movement{},
		&entity.Notification{},
	)
}

func SeedRoles(db *gorm.DB) error {
	defaultRoles := []entity.Role{
		{Name: entity.RoleAdmin, Description: "Administrator"},
		{Name: entity.RoleAthlete, Description: "Athlete"},
	}

	for _, role := range defaultRoles {
		var count int64
		if err := db.Model(&entity.Role{}).
			Where("name = ?", role.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedAdminUser creates the admin account when both credentials are configured.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		logrus.Info("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var adminRole entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logrus.Debug("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		adminUser := entity.User{
			Email:        email,
			PasswordHash: string(hashedPasswordBytes),
			RoleID:       &adminRole.ID,
		}
		if err := tx.Create(&adminUser).Error; err != nil {
			return err
		}

		adminProfile := entity.NewDefaultProfile(adminUser.ID, "Administrator")
		if err := tx.Create(&adminProfile).Error; err != nil {
			return err
		}
		if err := tx.Create(&entity.UserProgress{UserID: adminUser.ID, Tier: "principiante"}).Error; err != nil {
			return err
		}

		logrus.Infof("✅ Admin user seeded: %s", email)
		return nil
	})
}

// MovementSeeder is satisfied by the movement service.
type MovementSeeder interface {
	Seed(ctx context.Context) (int64, error)
}

func SeedMovements(ctx context.Context, seeder MovementSeeder) error {
	if seeder == nil {
		return errors.New("movement seeder is nil")
	}
	added, err := seeder.Seed(ctx)
	if err != nil {
		return err
	}
	if added > 0 {
		logrus.Infof("✅ Seeded %d movements", added)
	}
	return nil
}
