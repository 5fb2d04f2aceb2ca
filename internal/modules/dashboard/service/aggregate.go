package service

import (
	"math"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/dashboard/dto"
)

// DefaultCalorieGoal applies when the user has no diet plan.
const DefaultCalorieGoal = 2000

const (
	StatusOver    = "over"
	StatusNear    = "near"
	StatusCaution = "caution"
	StatusOnTrack = "on_track"

	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeverityOK      = "ok"
)

var weekdayLabels = map[string][7]string{
	entity.LanguageES: {"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	entity.LanguageEN: {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// All views compare calendar days in a single location: the one passed in, or the
// location of the reference time.

func sameDay(t time.Time, y int, m time.Month, d int, loc *time.Location) bool {
	ty, tm, td := t.In(loc).Date()
	return ty == y && tm == m && td == d
}

func MonthlyTotals(logs []entity.WorkoutLog, year int, month time.Month, loc *time.Location) dto.MonthlyTotals {
	var totals dto.MonthlyTotals
	for _, log := range logs {
		y, m, _ := log.Date.In(loc).Date()
		if y == year && m == month {
			totals.TotalCalories += log.Calories
			totals.WorkoutCount++
		}
	}
	return totals
}

// Last7DaysSeries buckets workout calories per day from today-6 to today, oldest first.
func Last7DaysSeries(logs []entity.WorkoutLog, today time.Time, lang string) []dto.DayBucket {
	labels, ok := weekdayLabels[lang]
	if !ok {
		labels = weekdayLabels[entity.LanguageES]
	}

	loc := today.Location()
	y, m, d := today.Date()
	buckets := make([]dto.DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := time.Date(y, m, d-i, 12, 0, 0, 0, loc)
		dy, dm, dd := day.Date()

		calories := 0
		for _, log := range logs {
			if sameDay(log.Date, dy, dm, dd, loc) {
				calories += log.Calories
			}
		}

		buckets = append(buckets, dto.DayBucket{
			Date:     day.Format(time.DateOnly),
			Label:    labels[day.Weekday()],
			Calories: calories,
		})
	}
	return buckets
}

// TodayNutritionSummary compares today's net intake with the plan goal.
func TodayNutritionSummary(meals []entity.NutritionLog, workouts []entity.WorkoutLog, plan *entity.DietPlan, today time.Time) dto.NutritionSummary {
	loc := today.Location()
	y, m, d := today.Date()

	summary := dto.NutritionSummary{Goal: DefaultCalorieGoal}
	if plan != nil && plan.DailyCalories > 0 {
		summary.Goal = plan.DailyCalories
	}

	for _, meal := range meals {
		if sameDay(meal.Date, y, m, d, loc) {
			summary.Consumed += meal.Calories
		}
	}
	for _, w := range workouts {
		if sameDay(w.Date, y, m, d, loc) {
			summary.Burned += w.Calories
		}
	}

	summary.Net = summary.Consumed - summary.Burned
	percent := float64(summary.Net) / float64(summary.Goal) * 100
	summary.Percent = math.Round(percent*10) / 10
	summary.Status, summary.Severity = classify(percent)
	return summary
}

// classify keeps "near" distinct in Status while Severity folds it into danger with "over".
func classify(percent float64) (string, string) {
	switch {
	case percent > 100:
		return StatusOver, SeverityDanger
	case percent > 85:
		return StatusNear, SeverityDanger
	case percent > 50:
		return StatusCaution, SeverityWarning
	default:
		return StatusOnTrack, SeverityOK
	}
}

// CalendarGrid lays out a month on a Monday-first grid. Each day carries the first log of
// that day in collection order.
func CalendarGrid(logs []entity.WorkoutLog, year int, month time.Month, loc *time.Location) []dto.CalendarCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	blanks := (int(first.Weekday()) + 6) % 7

	cells := make([]dto.CalendarCell, 0, blanks+daysInMonth)
	for i := 0; i < blanks; i++ {
		cells = append(cells, dto.CalendarCell{})
	}

	for day := 1; day <= daysInMonth; day++ {
		cell := dto.CalendarCell{Day: intPtr(day)}
		for i := range logs {
			if sameDay(logs[i].Date, year, month, day, loc) {
				log := logs[i]
				cell.Log = &log
				break
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

func intPtr(v int) *int { return &v }
