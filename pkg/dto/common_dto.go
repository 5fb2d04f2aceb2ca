package dto

import "io"

// UploadFile is a file received from a multipart form.
type UploadFile struct {
	Reader   io.Reader
	FileName string
	MIMEType string
	Size     int64
}

type PaginationQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize fills defaults and returns the row offset.
func (q *PaginationQuery) Normalize(defaultLimit int) int {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	return (q.Page - 1) * q.Limit
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
}

func NewPaginationMeta(q PaginationQuery, total int64) PaginationMeta {
	pages := 0
	if q.Limit > 0 {
		pages = int((total + int64(q.Limit) - 1) / int64(q.Limit))
	}
	return PaginationMeta{CurrentPage: q.Page, TotalPages: pages, TotalItems: total, Limit: q.Limit}
}
