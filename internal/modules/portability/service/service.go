package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/entity"
	nutritionRepo "anoa.com/wodtracker/internal/modules/nutrition/repository"
	"anoa.com/wodtracker/internal/modules/portability/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	workoutRepo "anoa.com/wodtracker/internal/modules/workout/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxEntries bounds each collection of an import document.
const MaxEntries = 5000

type PortabilityService interface {
	Export(ctx context.Context, userID uuid.UUID) (*dto.Document, error)
	Import(ctx context.Context, userID uuid.UUID, doc *dto.Document) (*dto.ImportResult, error)
}

type portabilityService struct {
	users       userRepo.UserRepository
	workouts    workoutRepo.WorkoutRepository
	nutrition   nutritionRepo.NutritionRepository
	progression progression.ProgressionService
	newID       func() uuid.UUID
	now         func() time.Time
}

func NewPortabilityService(
	users userRepo.UserRepository,
	workouts workoutRepo.WorkoutRepository,
	nutrition nutritionRepo.NutritionRepository,
	progression progression.ProgressionService,
) PortabilityService {
	return &portabilityService{
		users:       users,
		workouts:    workouts,
		nutrition:   nutrition,
		progression: progression,
		newID:       uuid.New,
		now:         time.Now,
	}
}

func (s *portabilityService) Export(ctx context.Context, userID uuid.UUID) (*dto.Document, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	progress, err := s.progression.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workouts.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}
	meals, err := s.nutrition.ListAllMeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}
	weights, err := s.nutrition.ListWeights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weights: %w", err)
	}

	doc := &dto.Document{
		Version:    dto.DocumentVersion,
		ExportedAt: s.now().UTC(),
		Progress: &dto.ProgressEntry{
			XP:              progress.XP,
			Tier:            progress.Tier,
			LastActiveDate:  dto.NewFlexTime(progress.LastActiveDate),
			LastPenaltyDate: dto.NewFlexTime(progress.LastPenaltyDate),
		},
		Workouts: make([]dto.WorkoutEntry, 0, len(workouts)),
		Meals:    make([]dto.MealEntry, 0, len(meals)),
		Weights:  make([]dto.WeightEntry, 0, len(weights)),
	}

	if p := user.Profile; p != nil {
		doc.Profile = &dto.ProfileEntry{
			Name:          p.Name,
			Age:           p.Age,
			Weight:        p.Weight,
			Height:        p.Height,
			Gender:        p.Gender,
			Language:      p.Language,
			Country:       p.Country,
			Timezone:      p.Timezone,
			Equipment:     []string(p.Equipment),
			NutritionGoal: p.NutritionGoal,
			DietPlan:      p.Plan(),
		}
	}

	for _, w := range workouts {
		doc.Workouts = append(doc.Workouts, dto.WorkoutEntry{
			ID:              w.ID.String(),
			Date:            dto.FlexTime{Time: w.Date},
			Name:            w.Name,
			Description:     w.Description,
			Calories:        w.Calories,
			DurationMinutes: w.DurationMinutes,
			Type:            w.Type,
			Exercises:       []entity.Exercise(w.Exercises),
			XPEarned:        w.XPEarned,
			Feedback:        w.Feedback,
		})
	}
	for _, m := range meals {
		doc.Meals = append(doc.Meals, dto.MealEntry{
			ID:          m.ID.String(),
			Date:        dto.FlexTime{Time: m.Date},
			MealType:    m.MealType,
			Description: m.Description,
			ImageURL:    m.ImageURL,
			FoodItems:   []string(m.FoodItems),
			Calories:    m.Calories,
			Macros:      m.Macros,
			Tips:        m.Tips,
		})
	}
	for _, w := range weights {
		doc.Weights = append(doc.Weights, dto.WeightEntry{
			ID:     w.ID.String(),
			Date:   dto.FlexTime{Time: w.Date},
			Weight: w.Weight,
		})
	}

	return doc, nil
}

// Import stores everything the document holds that the account does not have yet, in one
// transaction. Imported workouts keep their recorded xp but never award any.
func (s *portabilityService) Import(ctx context.Context, userID uuid.UUID, doc *dto.Document) (*dto.ImportResult, error) {
	if doc == nil {
		return nil, apperror.Invalid("import document is empty")
	}
	if doc.Version > dto.DocumentVersion {
		return nil, apperror.Invalid(fmt.Sprintf("unsupported document version %d", doc.Version))
	}
	if len(doc.Workouts)+len(doc.LegacyWorkouts) > MaxEntries ||
		len(doc.Meals)+len(doc.LegacyMeals) > MaxEntries ||
		len(doc.Weights) > MaxEntries {
		return nil, apperror.Invalid(fmt.Sprintf("import is limited to %d entries per collection", MaxEntries))
	}

	profileFields, err := profileUpdates(doc.Profile)
	if err != nil {
		return nil, err
	}

	snap := Ingest(doc, userID, s.newID)
	result := snap.Result

	err = s.workouts.Transaction(ctx, func(tx *gorm.DB, workouts workoutRepo.WorkoutRepository) error {
		nutrition := s.nutrition.WithTx(tx)

		existing, err := workouts.FindExistingIDs(ctx, workoutIDs(snap.Workouts))
		if err != nil {
			return err
		}
		fresh := make([]entity.WorkoutLog, 0, len(snap.Workouts))
		for _, w := range snap.Workouts {
			if existing[w.ID] {
				result.Workouts.Skipped++
				continue
			}
			fresh = append(fresh, w)
		}
		if err := workouts.CreateMany(ctx, fresh); err != nil {
			return fmt.Errorf("failed to import workouts: %w", err)
		}
		result.Workouts.Imported = len(fresh)

		existing, err = nutrition.FindExistingMealIDs(ctx, mealIDs(snap.Meals))
		if err != nil {
			return err
		}
		meals := make([]entity.NutritionLog, 0, len(snap.Meals))
		for _, m := range snap.Meals {
			if existing[m.ID] {
				result.Meals.Skipped++
				continue
			}
			meals = append(meals, m)
		}
		if err := nutrition.CreateMeals(ctx, meals); err != nil {
			return fmt.Errorf("failed to import meals: %w", err)
		}
		result.Meals.Imported = len(meals)

		existing, err = nutrition.FindExistingWeightIDs(ctx, weightIDs(snap.Weights))
		if err != nil {
			return err
		}
		weights := make([]entity.WeightLog, 0, len(snap.Weights))
		for _, w := range snap.Weights {
			if existing[w.ID] {
				result.Weights.Skipped++
				continue
			}
			weights = append(weights, w)
		}
		if err := nutrition.CreateWeights(ctx, weights); err != nil {
			return fmt.Errorf("failed to import weights: %w", err)
		}
		result.Weights.Imported = len(weights)

		if len(profileFields) > 0 {
			if err := s.users.UpdateProfileFields(ctx, tx, userID, profileFields); err != nil {
				return fmt.Errorf("failed to import profile: %w", err)
			}
			result.ProfileUpdated = true
		}

		if snap.Progress != nil {
			restored, err := s.progression.ImportInTx(ctx, tx, userID, *snap.Progress)
			if err != nil {
				return err
			}
			result.ProgressRestored = restored
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"workouts": result.Workouts.Imported,
		"meals":    result.Meals.Imported,
		"weights":  result.Weights.Imported,
		"progress": result.ProgressRestored,
	}).Info("📦 account data imported")

	return &result, nil
}

// profileUpdates keeps the fields that are set and valid. An invalid timezone fails the
// whole import rather than silently dropping it.
func profileUpdates(p *dto.ProfileEntry) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if p == nil {
		return fields, nil
	}

	if name := strings.TrimSpace(p.Name); name != "" {
		if r := []rune(name); len(r) > 100 {
			name = string(r[:100])
		}
		fields["name"] = name
	}
	if p.Age > 0 && p.Age < 120 {
		fields["age"] = p.Age
	}
	if p.Weight > 20 && p.Weight <= 400 {
		fields["weight"] = p.Weight
	}
	if p.Height > 50 && p.Height <= 260 {
		fields["height"] = p.Height
	}
	switch p.Gender {
	case "male", "female", "other":
		fields["gender"] = p.Gender
	}
	switch p.Language {
	case entity.LanguageES, entity.LanguageEN:
		fields["language"] = p.Language
	}
	if country := strings.TrimSpace(p.Country); country != "" {
		fields["country"] = country
	}
	if tz := strings.TrimSpace(p.Timezone); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, apperror.Invalid("unknown timezone: " + tz)
		}
		fields["timezone"] = tz
	}
	if len(p.Equipment) > 0 {
		fields["equipment"] = datatypes.JSONSlice[string](p.Equipment)
	}

	goal := p.NutritionGoal
	if goal == "" {
		goal = p.LegacyNutritionGoal
	}
	switch goal {
	case entity.GoalLoseWeight, entity.GoalGainMuscle, entity.GoalMaintain, entity.GoalPerformance:
		fields["nutrition_goal"] = goal
	}
	if p.DietPlan != nil && p.DietPlan.DailyCalories > 0 {
		fields["diet_plan"] = datatypes.NewJSONType(*p.DietPlan)
	}
	return fields, nil
}

func workoutIDs(logs []entity.WorkoutLog) []uuid.UUID {
	ids := make([]uuid.UUID, len(logs))
	for i, l := range logs {
		ids[i] = l.ID
	}
	return ids
}

func mealIDs(logs []entity.NutritionLog) []uuid.UUID {
	ids := make([]uuid.UUID, len(logs))
	for i, l := range logs {
		ids[i] = l.ID
	}
	return ids
}

func weightIDs(logs []entity.WeightLog) []uuid.UUID {
	ids := make([]uuid.UUID, len(logs))
	for i, l := range logs {
		ids[i] = l.ID
	}
	return ids
}
