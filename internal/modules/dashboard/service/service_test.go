package service

import (
	"context"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/dashboard/dto"
	nutritionRepo "anoa.com/wodtracker/internal/modules/nutrition/repository"
	progressionDto "anoa.com/wodtracker/internal/modules/progression/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	workoutRepo "anoa.com/wodtracker/internal/modules/workout/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubUsers struct {
	userRepo.UserRepository
	user *entity.User
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubWorkouts struct {
	workoutRepo.WorkoutRepository
	logs []entity.WorkoutLog
}

func (s *stubWorkouts) ListAll(context.Context, uuid.UUID) ([]entity.WorkoutLog, error) {
	return s.logs, nil
}

type stubMeals struct {
	nutritionRepo.NutritionRepository
	meals    []entity.NutritionLog
	from, to time.Time
}

func (s *stubMeals) ListMeals(_ context.Context, _ uuid.UUID, from, to time.Time, _ int) ([]entity.NutritionLog, error) {
	s.from, s.to = from, to
	return s.meals, nil
}

type stubProgression struct {
	progression.ProgressionService
}

func (stubProgression) GetProgress(context.Context, uuid.UUID) (*progressionDto.ProgressResponse, error) {
	return &progressionDto.ProgressResponse{XP: 1200, Tier: string(progression.TierIntermedio)}, nil
}

func TestGetDashboard(t *testing.T) {
	userID := uuid.New()
	profile := entity.NewDefaultProfile(userID, "Ana")
	profile.Timezone = "Europe/Madrid"
	plan := datatypes.NewJSONType(entity.DietPlan{DailyCalories: 1800})
	profile.DietPlan = &plan
	users := &stubUsers{user: &entity.User{ID: userID, Profile: &profile}}

	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	workouts := &stubWorkouts{}
	for i := 0; i < 7; i++ {
		workouts.logs = append(workouts.logs, entity.WorkoutLog{
			ID:       uuid.New(),
			Date:     now.AddDate(0, 0, i-6),
			Calories: 100,
			Name:     "wod",
		})
	}
	meals := &stubMeals{meals: []entity.NutritionLog{{Date: now, Calories: 900}}}

	svc := NewDashboardService(users, workouts, meals, stubProgression{}, time.UTC).(*dashboardService)
	svc.now = func() time.Time { return now }

	resp, err := svc.GetDashboard(context.Background(), userID, dto.DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 5, resp.Month)
	assert.Equal(t, 1200, resp.Progress.XP)
	assert.Equal(t, 7, resp.Monthly.WorkoutCount)
	assert.Equal(t, 700, resp.Monthly.TotalCalories)
	require.Len(t, resp.Last7Days, 7)
	assert.Equal(t, "2024-05-15", resp.Last7Days[6].Date)
	assert.Equal(t, 1800, resp.Today.Goal)
	assert.Equal(t, 800, resp.Today.Net)
	assert.Len(t, resp.Calendar, 2+31)
	require.Len(t, resp.Recent, recentLimit)
	assert.Equal(t, workouts.logs[6].ID, resp.Recent[0].ID)

	madrid := profile.Location(time.UTC)
	assert.Equal(t, time.Date(2024, 5, 15, 0, 0, 0, 0, madrid), meals.from)
	assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, madrid), meals.to)

	t.Run("explicit month", func(t *testing.T) {
		resp, err := svc.GetDashboard(context.Background(), userID, dto.DashboardQuery{Year: 2024, Month: 4})
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Month)
		assert.Equal(t, 0, resp.Monthly.WorkoutCount)
		assert.Len(t, resp.Calendar, 30)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetDashboard(context.Background(), uuid.New(), dto.DashboardQuery{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
