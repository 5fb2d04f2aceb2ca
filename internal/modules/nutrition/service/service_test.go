package service

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/agent/providers"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memNutrition struct {
	repository.NutritionRepository
	meals    []entity.NutritionLog
	weights  []entity.WeightLog
	from, to time.Time
}

func (m *memNutrition) CreateMeal(_ context.Context, meal *entity.NutritionLog) error {
	m.meals = append(m.meals, *meal)
	return nil
}

func (m *memNutrition) FindMeal(_ context.Context, userID, id uuid.UUID) (*entity.NutritionLog, error) {
	for i := range m.meals {
		if m.meals[i].ID == id && m.meals[i].UserID == userID {
			meal := m.meals[i]
			return &meal, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memNutrition) DeleteMeal(_ context.Context, userID, id uuid.UUID) (bool, error) {
	for i := range m.meals {
		if m.meals[i].ID == id && m.meals[i].UserID == userID {
			m.meals = append(m.meals[:i], m.meals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memNutrition) ListMeals(_ context.Context, _ uuid.UUID, from, to time.Time, _ int) ([]entity.NutritionLog, error) {
	m.from, m.to = from, to
	return nil, nil
}

func (m *memNutrition) CreateWeight(_ context.Context, log *entity.WeightLog) error {
	m.weights = append(m.weights, *log)
	return nil
}

func (m *memNutrition) ListWeights(context.Context, uuid.UUID) ([]entity.WeightLog, error) {
	return m.weights, nil
}

func (m *memNutrition) Transaction(_ context.Context, fn func(tx *gorm.DB, repo repository.NutritionRepository) error) error {
	snapshot := append([]entity.WeightLog(nil), m.weights...)
	if err := fn(nil, m); err != nil {
		m.weights = snapshot
		return err
	}
	return nil
}

type stubUsers struct {
	userRepo.UserRepository
	user *entity.User
	patches []map[string]interface{}
	err error
}

func (s *stubUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return s.user, nil
}

func (s *stubUsers) UpdateProfileFields(_ context.Context, _ *gorm.DB, _ uuid.UUID, fields map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.patches = append(s.patches, fields)
	return nil
}

type stubCoach struct {
	coach.Coach
	imageCalls int
	textCalls  int
}

func (c *stubCoach) AnalyzeFood(context.Context, coachDto.Athlete, providers.Image) (*coachDto.FoodAnalysis, error) {
	c.imageCalls++
	return &coachDto.FoodAnalysis{FoodItems: []string{"arroz", "pollo"}, Calories: 650}, nil
}

func (c *stubCoach) AnalyzeFoodText(context.Context, coachDto.Athlete, string) (*coachDto.FoodAnalysis, error) {
	c.textCalls++
	return &coachDto.FoodAnalysis{FoodItems: []string{"tostada"}, Calories: 200}, nil
}

func (c *stubCoach) GenerateDietPlan(_ context.Context, _ coachDto.Athlete, goal string) (*entity.DietPlan, error) {
	return &entity.DietPlan{Goal: goal, DailyCalories: 2400}, nil
}

type stubAthletes struct{}

func (stubAthletes) Load(context.Context, uuid.UUID) (coachDto.Athlete, *entity.User, error) {
	return coachDto.Athlete{Name: "Atleta"}, nil, nil
}

type stubStorage struct {
	uploads int
	deleted []string
}

func (s *stubStorage) UploadImage(_ context.Context, r io.Reader, folder, _ string) (string, error) {
	s.uploads++
	_, _ = io.ReadAll(r)
	return "https://res.cloudinary.com/demo/image/upload/v1/" + folder + "/x.webp", nil
}

func (s *stubStorage) DeleteImage(_ context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}

var fixedNow = time.Date(2024, 3, 20, 13, 30, 0, 0, time.UTC)

func newService(repo *memNutrition, users *stubUsers, c *stubCoach, st storage.ImageStorage) *nutritionService {
	svc := NewNutritionService(repo, users, c, stubAthletes{}, st, time.UTC).(*nutritionService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func userWithProfile(tz string) *entity.User {
	id := uuid.New()
	p := entity.NewDefaultProfile(id, "")
	p.Timezone = tz
	return &entity.User{ID: id, Profile: &p}
}

func TestAnalyzeFood_PhotoIsStored(t *testing.T) {
	c, st := &stubCoach{}, &stubStorage{}
	svc := newService(&memNutrition{}, &stubUsers{}, c, st)

	userID := uuid.New()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	res, err := svc.AnalyzeFood(context.Background(), userID, &commonDto.UploadFile{Reader: bytes.NewReader(png), FileName: "plato.png"}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, c.imageCalls)
	assert.Equal(t, 1, st.uploads)
	require.NotNil(t, res.ImageURL)
	assert.Contains(t, *res.ImageURL, "/meals/"+userID.String()+"/")

	meal, err := svc.LogMeal(context.Background(), userID, dto.CreateMealInput{MealType: entity.MealLunch, Description: "plato", ImageURL: res.ImageURL})
	require.NoError(t, err)
	assert.Equal(t, res.ImageURL, meal.ImageURL)
}

func TestAnalyzeFood_TextOnly(t *testing.T) {
	c, st := &stubCoach{}, &stubStorage{}
	svc := newService(&memNutrition{}, &stubUsers{}, c, st)

	res, err := svc.AnalyzeFood(context.Background(), uuid.New(), nil, "dos tostadas con aguacate")
	require.NoError(t, err)
	assert.Equal(t, 1, c.textCalls)
	assert.Zero(t, st.uploads)
	assert.Nil(t, res.ImageURL)

	_, err = svc.AnalyzeFood(context.Background(), uuid.New(), nil, "  ")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestLogMeal_Defaults(t *testing.T) {
	repo := &memNutrition{}
	svc := newService(repo, &stubUsers{}, &stubCoach{}, nil)

	meal, err := svc.LogMeal(context.Background(), uuid.New(), dto.CreateMealInput{
		MealType:  entity.MealLunch,
		FoodItems: []string{"arroz", " ", "pollo"},
		Calories:  650,
	})
	require.NoError(t, err)

	assert.Equal(t, "arroz, pollo", meal.Description)
	assert.Equal(t, manualTips, meal.Tips)
	assert.Equal(t, fixedNow, meal.Date)
	assert.Len(t, repo.meals, 1)

	meal, err = svc.LogMeal(context.Background(), uuid.New(), dto.CreateMealInput{MealType: entity.MealSnack, Description: "manzana", Calories: 80})
	require.NoError(t, err)
	assert.Equal(t, []string{"manzana"}, []string(meal.FoodItems))

	_, err = svc.LogMeal(context.Background(), uuid.New(), dto.CreateMealInput{MealType: entity.MealSnack, Calories: 80})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.LogMeal(context.Background(), uuid.New(), dto.CreateMealInput{MealType: entity.MealSnack, Description: "x", Calories: -1})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestListMeals_DayInProfileTimezone(t *testing.T) {
	repo := &memNutrition{}
	user := userWithProfile("Europe/Madrid")
	svc := newService(repo, &stubUsers{user: user}, &stubCoach{}, nil)

	meals, err := svc.ListMeals(context.Background(), user.ID, dto.ListMealsQuery{Date: "2024-03-20"})
	require.NoError(t, err)
	assert.NotNil(t, meals)

	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	assert.True(t, repo.from.Equal(time.Date(2024, 3, 20, 0, 0, 0, 0, madrid)))
	assert.True(t, repo.to.Equal(time.Date(2024, 3, 21, 0, 0, 0, 0, madrid)))
}

func TestDeleteMeal_RemovesPhoto(t *testing.T) {
	userID := uuid.New()
	url := "https://res.cloudinary.com/demo/image/upload/v1/wodtracker/meals/" + userID.String() + "/x.webp"
	meal := entity.NutritionLog{ID: uuid.New(), UserID: userID, ImageURL: &url}
	repo := &memNutrition{meals: []entity.NutritionLog{meal}}
	st := &stubStorage{}
	svc := newService(repo, &stubUsers{}, &stubCoach{}, st)

	assert.ErrorIs(t, svc.DeleteMeal(context.Background(), uuid.New(), meal.ID), apperror.ErrNotFound)

	require.NoError(t, svc.DeleteMeal(context.Background(), userID, meal.ID))
	assert.Empty(t, repo.meals)
	assert.Equal(t, []string{url}, st.deleted)
}

func TestLogMeal_RejectsForeignImage(t *testing.T) {
	repo := &memNutrition{}
	svc := newService(repo, &stubUsers{}, &stubCoach{}, &stubStorage{})

	victim := "https://res.cloudinary.com/demo/image/upload/v1/wodtracker/meals/" + uuid.NewString() + "/photo.webp"
	for _, url := range []string{
		victim,
		"https://res.cloudinary.com/demo/image/upload/v1/wodtracker/meals/victim-photo.webp",
		"https://example.com/lunch.jpg",
	} {
		_, err := svc.LogMeal(context.Background(), uuid.New(), dto.CreateMealInput{MealType: entity.MealLunch, Description: "x", ImageURL: &url})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, url)
	}
	assert.Empty(t, repo.meals)
}

func TestDeleteMeal_KeepsForeignPhoto(t *testing.T) {
	userID := uuid.New()
	// imported rows may carry any URL
	url := "https://res.cloudinary.com/demo/image/upload/v1/wodtracker/meals/victim-photo.webp"
	meal := entity.NutritionLog{ID: uuid.New(), UserID: userID, ImageURL: &url}
	repo := &memNutrition{meals: []entity.NutritionLog{meal}}
	st := &stubStorage{}
	svc := newService(repo, &stubUsers{}, &stubCoach{}, st)

	require.NoError(t, svc.DeleteMeal(context.Background(), userID, meal.ID))
	assert.Empty(t, repo.meals)
	assert.Empty(t, st.deleted)
}

func TestGenerateDietPlan_StoredOnProfile(t *testing.T) {
	users := &stubUsers{}
	svc := newService(&memNutrition{}, users, &stubCoach{}, nil)

	plan, err := svc.GenerateDietPlan(context.Background(), uuid.New(), entity.GoalGainMuscle)
	require.NoError(t, err)

	assert.Equal(t, fixedNow, plan.CreatedAt)
	require.Len(t, users.patches, 1)
	assert.Equal(t, entity.GoalGainMuscle, users.patches[0]["nutrition_goal"])
	assert.Contains(t, users.patches[0], "diet_plan")
}

func TestGetDietPlan_Missing(t *testing.T) {
	user := userWithProfile("")
	svc := newService(&memNutrition{}, &stubUsers{user: user}, &stubCoach{}, nil)

	_, err := svc.GetDietPlan(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAddWeight_UpdatesProfileInSameTransaction(t *testing.T) {
	repo := &memNutrition{}
	users := &stubUsers{}
	svc := newService(repo, users, &stubCoach{}, nil)

	log, err := svc.AddWeight(context.Background(), uuid.New(), dto.AddWeightInput{Weight: 72.46})
	require.NoError(t, err)
	assert.Equal(t, 72.5, log.Weight)
	require.Len(t, users.patches, 1)
	assert.Equal(t, 72.5, users.patches[0]["weight"])

	users.err = assert.AnError
	_, err = svc.AddWeight(context.Background(), uuid.New(), dto.AddWeightInput{Weight: 71})
	require.Error(t, err)
	assert.Len(t, repo.weights, 1)
}

func TestWeightTrend(t *testing.T) {
	empty := WeightTrend(nil)
	assert.Nil(t, empty.Latest)
	assert.Equal(t, TrendFlat, empty.Trend)
	assert.NotNil(t, empty.Entries)

	res := WeightTrend([]entity.WeightLog{{Weight: 80}, {Weight: 78.4}, {Weight: 77.9}})
	require.NotNil(t, res.Latest)
	assert.Equal(t, 77.9, *res.Latest)
	assert.Equal(t, -2.1, res.Change)
	assert.Equal(t, TrendDown, res.Trend)

	assert.Equal(t, TrendUp, WeightTrend([]entity.WeightLog{{Weight: 70}, {Weight: 71}}).Trend)
}
