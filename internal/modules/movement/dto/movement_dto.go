package dto

// CategoryAll is the catch-all filter the client sends for "no category".
const CategoryAll = "Todos"

type ListMovementsQuery struct {
	Search   string `form:"search" binding:"max=100"`
	Category string `form:"category" binding:"omitempty,oneof=Todos Básicos Gimnasia Halterofilia Cardio Accesorios"`
}

type CreateMovementInput struct {
	Name        string   `json:"name" binding:"required,max=120"`
	Category    string   `json:"category" binding:"required,oneof=Básicos Gimnasia Halterofilia Cardio Accesorios"`
	Type        string   `json:"type" binding:"max=40"`
	Description string   `json:"description" binding:"max=2000"`
	VideoID     string   `json:"video_id" binding:"max=40"`
	Muscles     []string `json:"muscles" binding:"max=20,dive,max=60"`
	KeyPoints   []string `json:"key_points" binding:"max=20,dive,max=200"`
}
