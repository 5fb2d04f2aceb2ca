package service

import "github.com/google/generative-ai-go/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
func num() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

func object(required []string, props map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func arrayOf(items *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: items}
}

var macrosSchema = object([]string{"protein", "carbs", "fat"}, map[string]*genai.Schema{
	"protein": num(),
	"carbs":   num(),
	"fat":     num(),
})

var wodAnalysisSchema = object(
	[]string{"name", "description", "duration_minutes", "calories", "exercises"},
	map[string]*genai.Schema{
		"name":             str(),
		"description":      str(),
		"duration_minutes": num(),
		"calories":         num(),
		"exercises": arrayOf(object(nil, map[string]*genai.Schema{
			"name":   str(),
			"weight": str(),
			"reps":   str(),
		})),
	},
)

var evaluationSchema = object([]string{"bonus_xp", "feedback"}, map[string]*genai.Schema{
	"bonus_xp": num(),
	"new_level": {
		Type:     genai.TypeString,
		Enum:     []string{"principiante", "intermedio", "avanzado", "experto", "master"},
		Nullable: true,
	},
	"feedback": str(),
})

var homeWorkoutSchema = object([]string{"title", "estimated_calories", "tips", "sections"}, map[string]*genai.Schema{
	"title":              str(),
	"estimated_calories": num(),
	"tips":               str(),
	"sections": arrayOf(object([]string{"name", "exercises"}, map[string]*genai.Schema{
		"name": str(),
		"exercises": arrayOf(object([]string{"name", "instruction", "duration_seconds"}, map[string]*genai.Schema{
			"name":             str(),
			"instruction":      str(),
			"duration_seconds": num(),
		})),
	})),
})

var foodAnalysisSchema = object([]string{"food_items", "calories", "macros", "tips"}, map[string]*genai.Schema{
	"food_items": arrayOf(str()),
	"calories":   num(),
	"macros":     macrosSchema,
	"tips":       str(),
})

var dietPlanSchema = object([]string{"goal", "daily_calories", "macros", "meals"}, map[string]*genai.Schema{
	"goal":           str(),
	"daily_calories": num(),
	"macros":         macrosSchema,
	"meals": arrayOf(object([]string{"name", "description", "calories"}, map[string]*genai.Schema{
		"name":        str(),
		"description": str(),
		"calories":    num(),
	})),
})
