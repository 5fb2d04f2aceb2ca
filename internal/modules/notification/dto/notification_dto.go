package dto

type ListQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=50"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}
