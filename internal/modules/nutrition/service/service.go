package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/entity"
	coachDto "anoa.com/wodtracker/internal/modules/coach/dto"
	coach "anoa.com/wodtracker/internal/modules/coach/service"
	"anoa.com/wodtracker/internal/modules/nutrition/dto"
	"anoa.com/wodtracker/internal/modules/nutrition/repository"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"anoa.com/wodtracker/pkg/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	manualTips = "Registro manual"

	TrendDown = "down"
	TrendUp   = "up"
	TrendFlat = "flat"
)

type NutritionService interface {
	AnalyzeFood(ctx context.Context, userID uuid.UUID, photo *commonDto.UploadFile, description string) (*coachDto.FoodAnalysis, error)
	LogMeal(ctx context.Context, userID uuid.UUID, input dto.CreateMealInput) (*entity.NutritionLog, error)
	ListMeals(ctx context.Context, userID uuid.UUID, query dto.ListMealsQuery) ([]entity.NutritionLog, error)
	DeleteMeal(ctx context.Context, userID, id uuid.UUID) error
	GenerateDietPlan(ctx context.Context, userID uuid.UUID, goal string) (*entity.DietPlan, error)
	GetDietPlan(ctx context.Context, userID uuid.UUID) (*entity.DietPlan, error)
	AddWeight(ctx context.Context, userID uuid.UUID, input dto.AddWeightInput) (*entity.WeightLog, error)
	WeightHistory(ctx context.Context, userID uuid.UUID) (*dto.WeightHistoryResponse, error)
}

type nutritionService struct {
	repo         repository.NutritionRepository
	users        userRepo.UserRepository
	coach        coach.Coach
	athletes     coach.AthleteLoader
	imageStorage storage.ImageStorage
	location     *time.Location
	now          func() time.Time
}

func NewNutritionService(
	repo repository.NutritionRepository,
	users userRepo.UserRepository,
	coach coach.Coach,
	athletes coach.AthleteLoader,
	imageStorage storage.ImageStorage,
	location *time.Location,
) NutritionService {
	if location == nil {
		location = time.UTC
	}
	return &nutritionService{
		repo:         repo,
		users:        users,
		coach:        coach,
		athletes:     athletes,
		imageStorage: imageStorage,
		location:     location,
		now:          time.Now,
	}
}

// AnalyzeFood estimates a meal from a photo, or from a description when no photo is sent.
// The photo is kept in image storage so the logged meal can point at it.
func (s *nutritionService) AnalyzeFood(ctx context.Context, userID uuid.UUID, photo *commonDto.UploadFile, description string) (*coachDto.FoodAnalysis, error) {
	img, err := coach.ImageFromUpload(photo)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if img == nil && description == "" {
		return nil, apperror.Invalid("send a photo or a description of the meal")
	}

	athlete, _, err := s.athletes.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if img == nil {
		return s.coach.AnalyzeFoodText(ctx, athlete, description)
	}

	analysis, err := s.coach.AnalyzeFood(ctx, athlete, *img)
	if err != nil {
		return nil, err
	}

	if s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, bytes.NewReader(img.Data), mealFolder(userID), photo.FileName)
		if err != nil {
			logrus.Warnf("⚠️ Failed to store meal photo for %s: %v", userID, err)
		} else {
			analysis.ImageURL = &url
		}
	}

	return analysis, nil
}

func (s *nutritionService) LogMeal(ctx context.Context, userID uuid.UUID, input dto.CreateMealInput) (*entity.NutritionLog, error) {
	if input.Calories < 0 {
		return nil, apperror.Invalid("calories must not be negative")
	}

	items := make(datatypes.JSONSlice[string], 0, len(input.FoodItems))
	for _, it := range input.FoodItems {
		if it = strings.TrimSpace(it); it != "" {
			items = append(items, it)
		}
	}
	description := strings.TrimSpace(input.Description)
	if description == "" && len(items) == 0 {
		return nil, apperror.Invalid("a meal needs a description or food items")
	}
	if description == "" {
		description = strings.Join(items, ", ")
	}
	if len(items) == 0 {
		items = append(items, description)
	}

	if input.ImageURL != nil && !ownsMealImage(userID, *input.ImageURL) {
		return nil, apperror.Invalid("image_url must come from a meal analysis")
	}

	tips := strings.TrimSpace(input.Tips)
	if tips == "" {
		tips = manualTips
	}

	date := s.now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}

	meal := &entity.NutritionLog{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		MealType:    input.MealType,
		Description: description,
		ImageURL:    input.ImageURL,
		FoodItems:   items,
		Calories:    input.Calories,
		Macros: entity.Macros{
			Protein: input.Macros.Protein,
			Carbs:   input.Macros.Carbs,
			Fat:     input.Macros.Fat,
		},
		Tips: tips,
	}

	if err := s.repo.CreateMeal(ctx, meal); err != nil {
		return nil, fmt.Errorf("failed to store meal: %w", err)
	}

	return meal, nil
}

func (s *nutritionService) ListMeals(ctx context.Context, userID uuid.UUID, query dto.ListMealsQuery) ([]entity.NutritionLog, error) {
	loc, err := s.userLocation(ctx, userID)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	switch {
	case query.Date != "":
		day, err := time.ParseInLocation(time.DateOnly, query.Date, loc)
		if err != nil {
			return nil, apperror.Invalid("invalid date")
		}
		from, to = day, day.AddDate(0, 0, 1)
	default:
		if query.From != "" {
			if from, err = time.ParseInLocation(time.DateOnly, query.From, loc); err != nil {
				return nil, apperror.Invalid("invalid from date")
			}
		}
		if query.To != "" {
			day, err := time.ParseInLocation(time.DateOnly, query.To, loc)
			if err != nil {
				return nil, apperror.Invalid("invalid to date")
			}
			to = day.AddDate(0, 0, 1)
		}
	}

	meals, err := s.repo.ListMeals(ctx, userID, from, to, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if meals == nil {
		meals = []entity.NutritionLog{}
	}
	return meals, nil
}

func (s *nutritionService) DeleteMeal(ctx context.Context, userID, id uuid.UUID) error {
	meal, err := s.repo.FindMeal(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}

	deleted, err := s.repo.DeleteMeal(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if !deleted {
		return apperror.ErrNotFound
	}

	if meal.ImageURL != nil && s.imageStorage != nil {
		if !ownsMealImage(userID, *meal.ImageURL) {
			logrus.Warnf("⚠️ Not deleting meal photo %s: it is not stored for user %s", *meal.ImageURL, userID)
			return nil
		}
		if err := s.imageStorage.DeleteImage(ctx, *meal.ImageURL); err != nil {
			logrus.Warnf("⚠️ Failed to delete meal photo %s: %v", *meal.ImageURL, err)
		}
	}
	return nil
}

// GenerateDietPlan asks the coach for a plan and stores it on the profile, replacing the previous one.
func (s *nutritionService) GenerateDietPlan(ctx context.Context, userID uuid.UUID, goal string) (*entity.DietPlan, error) {
	athlete, _, err := s.athletes.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := s.coach.GenerateDietPlan(ctx, athlete, goal)
	if err != nil {
		return nil, err
	}
	plan.Goal = goal
	plan.CreatedAt = s.now()

	if err := s.users.UpdateProfileFields(ctx, nil, userID, map[string]interface{}{
		"nutrition_goal": goal,
		"diet_plan":      datatypes.NewJSONType(*plan),
	}); err != nil {
		return nil, fmt.Errorf("failed to store diet plan: %w", err)
	}

	return plan, nil
}

func (s *nutritionService) GetDietPlan(ctx context.Context, userID uuid.UUID) (*entity.DietPlan, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	plan := user.Profile.Plan()
	if plan == nil {
		return nil, apperror.ErrNotFound
	}
	return plan, nil
}

// AddWeight appends to the weight series and keeps profile.weight on the latest value.
func (s *nutritionService) AddWeight(ctx context.Context, userID uuid.UUID, input dto.AddWeightInput) (*entity.WeightLog, error) {
	if input.Weight <= 0 || math.IsNaN(input.Weight) || math.IsInf(input.Weight, 0) {
		return nil, apperror.Invalid("weight must be positive")
	}

	date := s.now()
	if input.Date != nil && !input.Date.IsZero() {
		date = *input.Date
	}
	log := &entity.WeightLog{ID: uuid.New(), UserID: userID, Date: date, Weight: math.Round(input.Weight*10) / 10}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB, repo repository.NutritionRepository) error {
		if err := repo.CreateWeight(ctx, log); err != nil {
			return err
		}
		return s.users.UpdateProfileFields(ctx, tx, userID, map[string]interface{}{"weight": log.Weight})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record weight: %w", err)
	}

	return log, nil
}

func (s *nutritionService) WeightHistory(ctx context.Context, userID uuid.UUID) (*dto.WeightHistoryResponse, error) {
	logs, err := s.repo.ListWeights(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load weight history: %w", err)
	}
	return WeightTrend(logs), nil
}

// WeightTrend summarises a series ordered oldest first.
func WeightTrend(logs []entity.WeightLog) *dto.WeightHistoryResponse {
	res := &dto.WeightHistoryResponse{Entries: logs, Trend: TrendFlat}
	if res.Entries == nil {
		res.Entries = []entity.WeightLog{}
	}
	if len(logs) == 0 {
		return res
	}

	latest := logs[len(logs)-1].Weight
	res.Latest = &latest
	res.Change = math.Round((latest-logs[0].Weight)*10) / 10

	switch {
	case res.Change < 0:
		res.Trend = TrendDown
	case res.Change > 0:
		res.Trend = TrendUp
	}
	return res
}

func mealFolder(userID uuid.UUID) string {
	return storage.OwnerFolder(storage.FolderMeals, userID.String())
}

// ownsMealImage is true only for photos AnalyzeFood uploaded for userID.
func ownsMealImage(userID uuid.UUID, url string) bool {
	return storage.InFolder(url, mealFolder(userID))
}

func (s *nutritionService) findUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *nutritionService) userLocation(ctx context.Context, userID uuid.UUID) (*time.Location, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile.Location(s.location), nil
}
