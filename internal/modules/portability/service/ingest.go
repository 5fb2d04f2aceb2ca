package service

import (
	"strings"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/portability/dto"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// legacyNamespace derives stable ids for entries whose id is not a uuid, so importing the
// same legacy file twice skips instead of duplicating.
var legacyNamespace = uuid.MustParse("6f1c1c1e-6d8b-4b51-9a43-5a8f4f0e2b7d")

const (
	kindWorkout = "workout"
	kindMeal    = "meal"
	kindWeight  = "weight"
)

// Snapshot is an import document after normalisation: legacy spellings folded in,
// every entry holding its final id, invalid entries dropped and counted.
type Snapshot struct {
	Workouts []entity.WorkoutLog
	Meals    []entity.NutritionLog
	Weights  []entity.WeightLog
	Profile  *dto.ProfileEntry
	Progress *entity.UserProgress
	Result   dto.ImportResult
}

// Ingest normalises doc for userID. newID backfills entries that carry no id at all; it is
// called exactly once per such entry.
func Ingest(doc *dto.Document, userID uuid.UUID, newID func() uuid.UUID) Snapshot {
	snap := Snapshot{Profile: doc.Profile}
	seen := make(map[uuid.UUID]bool)

	resolve := func(raw, kind string) (uuid.UUID, bool) {
		raw = strings.TrimSpace(raw)
		var id uuid.UUID
		switch parsed, err := uuid.Parse(raw); {
		case raw == "":
			id = newID()
		case err == nil:
			id = parsed
		default:
			id = uuid.NewSHA1(legacyNamespace, []byte(userID.String()+"/"+kind+"/"+raw))
		}
		if seen[id] {
			return id, false
		}
		seen[id] = true
		return id, true
	}

	for _, w := range concat(doc.Workouts, doc.LegacyWorkouts) {
		log, ok := workoutFromEntry(w, userID)
		if !ok {
			snap.Result.Workouts.Invalid++
			continue
		}
		id, fresh := resolve(w.ID, kindWorkout)
		if !fresh {
			snap.Result.Workouts.Skipped++
			continue
		}
		log.ID = id
		snap.Workouts = append(snap.Workouts, log)
	}

	for _, m := range concat(doc.Meals, doc.LegacyMeals) {
		meal, ok := mealFromEntry(m, userID)
		if !ok {
			snap.Result.Meals.Invalid++
			continue
		}
		id, fresh := resolve(m.ID, kindMeal)
		if !fresh {
			snap.Result.Meals.Skipped++
			continue
		}
		meal.ID = id
		snap.Meals = append(snap.Meals, meal)
	}

	weights := doc.Weights
	if doc.Profile != nil {
		weights = concat(weights, doc.Profile.LegacyWeightHistory)
	}
	for _, w := range weights {
		if w.Date.IsZero() || w.Weight <= 20 || w.Weight > 400 {
			snap.Result.Weights.Invalid++
			continue
		}
		id, fresh := resolve(w.ID, kindWeight)
		if !fresh {
			snap.Result.Weights.Skipped++
			continue
		}
		snap.Weights = append(snap.Weights, entity.WeightLog{ID: id, UserID: userID, Date: w.Date.Time, Weight: w.Weight})
	}

	snap.Progress = progressFromDocument(doc, userID)
	return snap
}

func workoutFromEntry(w dto.WorkoutEntry, userID uuid.UUID) (entity.WorkoutLog, bool) {
	name := strings.TrimSpace(w.Name)
	if name == "" || w.Date.IsZero() || w.Calories < 0 || w.DurationMinutes < 0 || w.LegacyDurationMinutes < 0 {
		return entity.WorkoutLog{}, false
	}

	duration := w.DurationMinutes
	if duration == 0 {
		duration = w.LegacyDurationMinutes
	}
	xp := w.XPEarned
	if xp == nil {
		xp = w.LegacyXPEarned
	}

	workoutType := w.Type
	switch workoutType {
	case entity.WorkoutTypeImageScan, entity.WorkoutTypeManual, entity.WorkoutTypeHomeAI:
	default:
		workoutType = entity.WorkoutTypeManual
	}

	return entity.WorkoutLog{
		UserID:          userID,
		Date:            w.Date.Time,
		Name:            name,
		Description:     w.Description,
		Calories:        w.Calories,
		DurationMinutes: duration,
		Type:            workoutType,
		Exercises:       datatypes.JSONSlice[entity.Exercise](w.Exercises),
		XPEarned:        xp,
		Feedback:        w.Feedback,
	}, true
}

func mealFromEntry(m dto.MealEntry, userID uuid.UUID) (entity.NutritionLog, bool) {
	if m.Date.IsZero() || m.Calories < 0 {
		return entity.NutritionLog{}, false
	}

	mealType := m.MealType
	if mealType == "" {
		mealType = m.LegacyMealType
	}
	switch mealType {
	case entity.MealBreakfast, entity.MealLunch, entity.MealDinner, entity.MealSnack:
	default:
		mealType = entity.MealSnack
	}

	image := m.ImageURL
	if image == nil {
		image = m.LegacyImageURL
	}
	items := m.FoodItems
	if len(items) == 0 {
		items = m.LegacyFoodItems
	}

	return entity.NutritionLog{
		UserID:      userID,
		Date:        m.Date.Time,
		MealType:    mealType,
		Description: m.Description,
		ImageURL:    image,
		FoodItems:   datatypes.JSONSlice[string](items),
		Calories:    m.Calories,
		Macros:      m.Macros,
		Tips:        m.Tips,
	}, true
}

// progressFromDocument prefers the progress block and falls back to the xp fields legacy
// exports kept on the profile.
func progressFromDocument(doc *dto.Document, userID uuid.UUID) *entity.UserProgress {
	if p := doc.Progress; p != nil && p.XP > 0 {
		return &entity.UserProgress{
			UserID:          userID,
			XP:              p.XP,
			LastActiveDate:  p.LastActiveDate.Ptr(),
			LastPenaltyDate: p.LastPenaltyDate.Ptr(),
		}
	}
	if p := doc.Profile; p != nil && p.LegacyXP > 0 {
		return &entity.UserProgress{
			UserID:          userID,
			XP:              p.LegacyXP,
			LastActiveDate:  p.LegacyLastActiveDate.Ptr(),
			LastPenaltyDate: p.LegacyLastPenaltyDate.Ptr(),
		}
	}
	return nil
}

func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	return append(append(out, a...), b...)
}
