package service

import (
	"context"
	"fmt"
	"html"
	"math"
	"net/http"
	"strings"
	"time"

	"anoa.com/wodtracker/internal/agent/providers"
	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/coach/dto"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
)

const (
	// MaxBonusXP caps what a single evaluation can add on top of the base award.
	MaxBonusXP = 300

	defaultTimeout = 20 * time.Second
)

// Coach is the AI side of the app. Every method fails with apperror.ErrAIUnavailable
// when the model cannot be reached or answers garbage.
type Coach interface {
	AnalyzeWod(ctx context.Context, athlete dto.Athlete, text string, image *providers.Image) (*dto.WodAnalysis, error)
	EvaluatePerformance(ctx context.Context, athlete dto.Athlete, workout dto.WorkoutSummary) (*dto.PerformanceEvaluation, error)
	GenerateHomeWorkout(ctx context.Context, athlete dto.Athlete, difficulty string) (*dto.HomeWorkout, error)
	AnalyzeFood(ctx context.Context, athlete dto.Athlete, image providers.Image) (*dto.FoodAnalysis, error)
	AnalyzeFoodText(ctx context.Context, athlete dto.Athlete, description string) (*dto.FoodAnalysis, error)
	GenerateDietPlan(ctx context.Context, athlete dto.Athlete, goal string) (*entity.DietPlan, error)
	InactivityReminder(ctx context.Context, athlete dto.Athlete, daysInactive int) (string, error)
}

type coach struct {
	llm     providers.LLMProvider
	policy  *bluemonday.Policy
	timeout time.Duration
}

func NewCoach(llm providers.LLMProvider, timeout time.Duration) Coach {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &coach{
		llm:     llm,
		policy:  bluemonday.StrictPolicy(),
		timeout: timeout,
	}
}

// model answers use float numbers and free text; these mirror the response schemas.
type rawExercise struct {
	Name            string  `json:"name"`
	Reps            string  `json:"reps"`
	Weight          string  `json:"weight"`
	Instruction     string  `json:"instruction"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type rawMacros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

func (s *coach) generate(ctx context.Context, req providers.StructuredRequest, out interface{}) error {
	if s.llm == nil {
		return apperror.New(http.StatusBadGateway, "El coach IA no está configurado", apperror.ErrAIUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.llm.GenerateStructured(ctx, req, out); err != nil {
		logrus.Warnf("⚠️ Gemini request failed: %v", err)
		return apperror.New(http.StatusBadGateway, "El coach IA no está disponible, inténtalo de nuevo", fmt.Errorf("%w: %v", apperror.ErrAIUnavailable, err))
	}
	return nil
}

func (s *coach) AnalyzeWod(ctx context.Context, athlete dto.Athlete, text string, image *providers.Image) (*dto.WodAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" && image == nil {
		return nil, apperror.Invalid("Envía el texto del WOD o una imagen")
	}

	req := providers.StructuredRequest{Prompt: wodPrompt(athlete, text), Schema: wodAnalysisSchema}
	if image != nil {
		req.Images = []providers.Image{*image}
	}

	var raw struct {
		Name            string        `json:"name"`
		Description     string        `json:"description"`
		DurationMinutes float64       `json:"duration_minutes"`
		Calories        float64       `json:"calories"`
		Exercises       []rawExercise `json:"exercises"`
	}
	if err := s.generate(ctx, req, &raw); err != nil {
		return nil, err
	}

	return &dto.WodAnalysis{
		Name:            orDefault(s.clean(raw.Name), "WOD"),
		Description:     s.clean(raw.Description),
		DurationMinutes: nonNegative(raw.DurationMinutes),
		Calories:        nonNegative(raw.Calories),
		Exercises:       s.exercises(raw.Exercises),
	}, nil
}

func (s *coach) EvaluatePerformance(ctx context.Context, athlete dto.Athlete, workout dto.WorkoutSummary) (*dto.PerformanceEvaluation, error) {
	var raw struct {
		BonusXP  float64 `json:"bonus_xp"`
		NewLevel *string `json:"new_level"`
		Feedback string  `json:"feedback"`
	}
	req := providers.StructuredRequest{Prompt: evaluationPrompt(athlete, workout), Schema: evaluationSchema, Temperature: 0.4}
	if err := s.generate(ctx, req, &raw); err != nil {
		return nil, err
	}

	bonus := nonNegative(raw.BonusXP)
	if bonus > MaxBonusXP {
		bonus = MaxBonusXP
	}

	eval := &dto.PerformanceEvaluation{
		BonusXP:  bonus,
		Feedback: s.clean(raw.Feedback),
	}
	if raw.NewLevel != nil && *raw.NewLevel != "" && *raw.NewLevel != athlete.Tier {
		level := *raw.NewLevel
		eval.SuggestedLevel = &level
	}
	return eval, nil
}

func (s *coach) GenerateHomeWorkout(ctx context.Context, athlete dto.Athlete, difficulty string) (*dto.HomeWorkout, error) {
	difficulty = orDefault(difficulty, athlete.Tier)

	var raw struct {
		Title             string  `json:"title"`
		EstimatedCalories float64 `json:"estimated_calories"`
		Tips              string  `json:"tips"`
		Sections          []struct {
			Name      string        `json:"name"`
			Exercises []rawExercise `json:"exercises"`
		} `json:"sections"`
	}
	req := providers.StructuredRequest{Prompt: homeWorkoutPrompt(athlete, difficulty), Schema: homeWorkoutSchema, Temperature: 0.9}
	if err := s.generate(ctx, req, &raw); err != nil {
		return nil, err
	}

	workout := &dto.HomeWorkout{
		Title:             orDefault(s.clean(raw.Title), "Home WOD"),
		Difficulty:        difficulty,
		EstimatedCalories: nonNegative(raw.EstimatedCalories),
		Tips:              s.clean(raw.Tips),
		Sections:          make([]dto.HomeWorkoutSection, 0, len(raw.Sections)),
	}
	for _, sec := range raw.Sections {
		workout.Sections = append(workout.Sections, dto.HomeWorkoutSection{
			Name:      s.clean(sec.Name),
			Exercises: s.exercises(sec.Exercises),
		})
	}
	return workout, nil
}

func (s *coach) AnalyzeFood(ctx context.Context, athlete dto.Athlete, image providers.Image) (*dto.FoodAnalysis, error) {
	if len(image.Data) == 0 {
		return nil, apperror.Invalid("La imagen está vacía")
	}
	req := providers.StructuredRequest{
		Prompt: foodImagePrompt(athlete),
		Images: []providers.Image{image},
		Schema: foodAnalysisSchema,
	}
	return s.analyzeFood(ctx, req)
}

func (s *coach) AnalyzeFoodText(ctx context.Context, athlete dto.Athlete, description string) (*dto.FoodAnalysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperror.Invalid("Describe la comida")
	}
	req := providers.StructuredRequest{Prompt: foodTextPrompt(athlete, description), Schema: foodAnalysisSchema}
	return s.analyzeFood(ctx, req)
}

func (s *coach) analyzeFood(ctx context.Context, req providers.StructuredRequest) (*dto.FoodAnalysis, error) {
	var raw struct {
		FoodItems []string  `json:"food_items"`
		Calories  float64   `json:"calories"`
		Macros    rawMacros `json:"macros"`
		Tips      string    `json:"tips"`
	}
	if err := s.generate(ctx, req, &raw); err != nil {
		return nil, err
	}

	items := make([]string, 0, len(raw.FoodItems))
	for _, it := range raw.FoodItems {
		if c := s.clean(it); c != "" {
			items = append(items, c)
		}
	}

	return &dto.FoodAnalysis{
		FoodItems: items,
		Calories:  nonNegative(raw.Calories),
		Macros:    macros(raw.Macros),
		Tips:      s.clean(raw.Tips),
	}, nil
}

func (s *coach) GenerateDietPlan(ctx context.Context, athlete dto.Athlete, goal string) (*entity.DietPlan, error) {
	var raw struct {
		DailyCalories float64   `json:"daily_calories"`
		Macros        rawMacros `json:"macros"`
		Meals         []struct {
			Name        string  `json:"name"`
			Description string  `json:"description"`
			Calories    float64 `json:"calories"`
		} `json:"meals"`
	}
	req := providers.StructuredRequest{Prompt: dietPlanPrompt(athlete, goal), Schema: dietPlanSchema, Temperature: 1.0}
	if err := s.generate(ctx, req, &raw); err != nil {
		return nil, err
	}

	plan := &entity.DietPlan{
		Goal:          goal,
		DailyCalories: nonNegative(raw.DailyCalories),
		Macros:        macros(raw.Macros),
		Meals:         make([]entity.PlannedMeal, 0, len(raw.Meals)),
	}
	for _, m := range raw.Meals {
		plan.Meals = append(plan.Meals, entity.PlannedMeal{
			Name:        s.clean(m.Name),
			Description: s.clean(m.Description),
			Calories:    nonNegative(m.Calories),
		})
	}
	return plan, nil
}

func (s *coach) InactivityReminder(ctx context.Context, athlete dto.Athlete, daysInactive int) (string, error) {
	if s.llm == nil {
		return "", apperror.ErrAIUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.llm.GenerateText(ctx, reminderPrompt(athlete, daysInactive))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperror.ErrAIUnavailable, err)
	}

	msg := strings.Trim(s.clean(text), "\"' \n")
	if msg == "" {
		return "", apperror.ErrAIUnavailable
	}
	if r := []rune(msg); len(r) > 200 {
		msg = string(r[:200])
	}
	return msg, nil
}

// clean strips any markup the model may have produced.
func (s *coach) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func (s *coach) exercises(raw []rawExercise) []entity.Exercise {
	out := make([]entity.Exercise, 0, len(raw))
	for _, e := range raw {
		name := s.clean(e.Name)
		if name == "" {
			continue
		}
		out = append(out, entity.Exercise{
			Name:            name,
			Reps:            s.clean(e.Reps),
			Weight:          s.clean(e.Weight),
			Instruction:     s.clean(e.Instruction),
			DurationSeconds: nonNegative(e.DurationSeconds),
		})
	}
	return out
}

func macros(m rawMacros) entity.Macros {
	return entity.Macros{
		Protein: math.Max(0, math.Round(m.Protein*10)/10),
		Carbs:   math.Max(0, math.Round(m.Carbs*10)/10),
		Fat:     math.Max(0, math.Round(m.Fat*10)/10),
	}
}

func nonNegative(v float64) int {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
