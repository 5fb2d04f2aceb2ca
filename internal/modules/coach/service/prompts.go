package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/coach/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
)

func responseLanguage(lang string) string {
	if lang == entity.LanguageEN {
		return "IMPORTANT: RESPOND IN ENGLISH."
	}
	return "IMPORTANT: RESPOND IN SPANISH."
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func equipmentList(items []string) string {
	if len(items) == 0 {
		return "None (Bodyweight only)"
	}
	return strings.Join(items, ", ")
}

func wodPrompt(a dto.Athlete, text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Act as an expert CrossFit coach and nutritionist.
Analyze the provided WOD (Workout of the Day) information.
The input might be an image of a whiteboard, a PDF document, or raw text pasted by the user.

User Profile for Context:
- Weight: %.1fkg
- Height: %.0fcm
- Age: %d
- Gender: %s
- Level: %s

Tasks:
1. Identify the name of the workout (if any, otherwise create a short descriptive name).
2. Extract or summarize the exercises.
3. Estimate the duration in minutes (if not specified, estimate based on average Rx times for this user level).
4. CALCULATE the estimated calories burned for THIS SPECIFIC USER performing this workout, using their body weight and the intensity.

%s
Return the response in strict JSON format.
`, a.Weight, a.Height, a.Age, a.Gender, a.Tier, responseLanguage(a.Language))

	if text != "" {
		fmt.Fprintf(&b, "\nWOD Text Description:\n%s\n", text)
	}
	return b.String()
}

func evaluationPrompt(a dto.Athlete, w dto.WorkoutSummary) string {
	exercises, _ := json.Marshal(w.Exercises)
	return fmt.Sprintf(`Evaluate the user's performance in this CrossFit workout to award bonus XP.

User Profile:
- Current Level: %s
- Current XP: %d
- Weight: %.1fkg
- Gender: %s

Workout Performed:
- Name: %s
- Description: %s
- Duration: %d min
- Exercises & Weights: %s

Levels Scale (Reference): principiante, intermedio, avanzado, experto, master.

Task:
1. Every completed workout already earns 100 base XP. Return only the BONUS XP (0 to %d) for intensity, duration and weights used relative to their body weight and current level. Reward heavy weights or PRs.
2. If this performance is clearly above the current level, suggest the level it matches in "new_level", otherwise null.
3. Provide a short, motivating feedback message (max 2 sentences).

%s
Return JSON.
`, a.Tier, a.XP, a.Weight, a.Gender, w.Name, w.Description, w.DurationMinutes, string(exercises), MaxBonusXP, responseLanguage(a.Language))
}

func homeWorkoutPrompt(a dto.Athlete, difficulty string) string {
	return fmt.Sprintf(`Create a challenging Home CrossFit Workout for this user:
- Age: %d
- Gender: %s
- Fitness Level: %s (IMPORTANT: Adjust intensity to this specific level)
- Available Equipment: %s
- Location: %s

The workout should follow a standard CrossFit structure: Warmup, Skill/Strength, WOD, and Cooldown.

IMPORTANT:
1. If the user has equipment, incorporate it intelligently into the workout.
2. Ensure the workout is DIFFERENT from typical bodyweight routines if equipment is available.
3. Focus on variety and high intensity.
4. Difficulty Level: the user explicitly requested a %s workout. Scaling, reps and movements must match this level.

Return a structured JSON with a 'sections' array. Each section (Warmup, Skill, WOD, Cooldown) has an 'exercises' array.
Each exercise has:
- name: string
- instruction: string (reps, sets, or specific details)
- duration_seconds: number (0 if it's for reps, otherwise the time in seconds for the timer)

Provide a motivational quote at the end in 'tips'.
%s
`, a.Age, a.Gender, difficulty, equipmentList(a.Equipment), orDefault(a.Country, "General"), difficulty, responseLanguage(a.Language))
}

const foodGuessRule = `CRITICAL INSTRUCTION: If the food is not clearly identifiable, DO NOT FAIL.
Make your BEST EXPERT GUESS based on the general context and assume standard portion sizes.
It is better to provide an estimation than to say "I cannot analyze this".`

func foodImagePrompt(a dto.Athlete) string {
	return fmt.Sprintf(`Act as an expert nutritionist. Analyze this image of a meal.
Identify the food items present.
Estimate the total calories and breakdown of macronutrients (protein, carbs, fat) in grams.
Provide a brief, actionable health tip regarding this meal.

%s

%s
`, foodGuessRule, responseLanguage(a.Language))
}

func foodTextPrompt(a dto.Athlete, description string) string {
	return fmt.Sprintf(`Act as an expert nutritionist. The user describes a meal they ate:

%s

Identify the food items.
Estimate the total calories and breakdown of macronutrients (protein, carbs, fat) in grams.
Provide a brief, actionable health tip regarding this meal.

%s

%s
`, description, foodGuessRule, responseLanguage(a.Language))
}

func dietPlanPrompt(a dto.Athlete, goal string) string {
	country := orDefault(a.Country, "the user's region")
	return fmt.Sprintf(`Act as an expert sports nutritionist. Create a daily diet plan for a CrossFit athlete.

User Profile:
- Weight: %.1fkg
- Height: %.0fcm
- Age: %d
- Gender: %s
- Activity Level: High (CrossFit)
- Location/Country: %s
- Goal: %s (lose_weight, gain_muscle, maintain, performance)

Tasks:
1. Calculate target daily calories and macros (protein, carbs, fat) for this specific goal.
2. Suggest 4 meals (Breakfast, Lunch, Dinner, Snack) that fit these macros.
3. CRITICAL: The menu MUST be based on the cuisine and available ingredients of %s.
4. CRITICAL: Generate a UNIQUE and DIFFERENT menu every time. Do not repeat generic suggestions.

Set "goal" to "%s".
%s
`, a.Weight, a.Height, a.Age, a.Gender, orDefault(a.Country, "General"), goal, country, goal, responseLanguage(a.Language))
}

func reminderPrompt(a dto.Athlete, daysInactive int) string {
	return fmt.Sprintf(`You are a friendly CrossFit coach. Your athlete %s (level %s, %d XP) has not trained for %d days.
Starting tomorrow they will lose %d XP per day of inactivity.
Write ONE short motivating push notification (max 160 characters, no hashtags, no quotes) inviting them to train today.
%s
`, orDefault(a.Name, "Atleta"), a.Tier, a.XP, daysInactive, progression.DecayXPPerDay, responseLanguage(a.Language))
}
