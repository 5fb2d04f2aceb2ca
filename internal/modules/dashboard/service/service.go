package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/dashboard/dto"
	nutritionRepo "anoa.com/wodtracker/internal/modules/nutrition/repository"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	workoutRepo "anoa.com/wodtracker/internal/modules/workout/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const recentLimit = 5

type DashboardService interface {
	GetDashboard(ctx context.Context, userID uuid.UUID, query dto.DashboardQuery) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	users       userRepo.UserRepository
	workouts    workoutRepo.WorkoutRepository
	nutrition   nutritionRepo.NutritionRepository
	progression progression.ProgressionService
	location    *time.Location
	now         func() time.Time
}

func NewDashboardService(
	users userRepo.UserRepository,
	workouts workoutRepo.WorkoutRepository,
	nutrition nutritionRepo.NutritionRepository,
	progression progression.ProgressionService,
	location *time.Location,
) DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &dashboardService{
		users:       users,
		workouts:    workouts,
		nutrition:   nutrition,
		progression: progression,
		location:    location,
		now:         time.Now,
	}
}

// GetDashboard reads a snapshot and derives every view from it. Nothing is persisted.
func (s *dashboardService) GetDashboard(ctx context.Context, userID uuid.UUID, query dto.DashboardQuery) (*dto.DashboardResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	loc := user.Profile.Location(s.location)
	today := s.now().In(loc)

	year, month := today.Year(), today.Month()
	if query.Year != 0 {
		year = query.Year
	}
	if query.Month != 0 {
		month = time.Month(query.Month)
	}

	progress, err := s.progression.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	workouts, err := s.workouts.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workouts: %w", err)
	}

	y, m, d := today.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	meals, err := s.nutrition.ListMeals(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals: %w", err)
	}

	lang := entity.LanguageES
	if user.Profile != nil && user.Profile.Language != "" {
		lang = user.Profile.Language
	}

	return &dto.DashboardResponse{
		Year:      year,
		Month:     int(month),
		Progress:  *progress,
		Monthly:   MonthlyTotals(workouts, year, month, loc),
		Last7Days: Last7DaysSeries(workouts, today, lang),
		Today:     TodayNutritionSummary(meals, workouts, user.Profile.Plan(), today),
		Calendar:  CalendarGrid(workouts, year, month, loc),
		Recent:    recent(workouts, recentLimit),
	}, nil
}

// recent expects logs oldest first and returns the newest n, newest first.
func recent(logs []entity.WorkoutLog, n int) []entity.WorkoutLog {
	out := make([]entity.WorkoutLog, 0, n)
	for i := len(logs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, logs[i])
	}
	return out
}
