package dto

type BookRequest struct {
	Title    string `json:"title" form:"title" validate:"required"`
	Author   string `json:"author" form:"author" validate:"required"`
	Category string `json:"category" form:"category" validate:"required"`
	Language string `json:"language" form:"language" validate:"required"`
	Status   string `json:"status" form:"status"`
}

func (r *BookRequest) Normalize() {
	trim(&r.Title)
	trim(&r.Author)
	trim(&r.Category)
	trim(&r.Language)
	trim(&r.Status)
}

type BookUpdateRequest struct {
	Title    *string `json:"title" form:"title" validate:"omitempty,min=1"`
	Author   *string `json:"author" form:"author" validate:"omitempty,min=1"`
	Category *string `json:"category" form:"category" validate:"omitempty,min=1"`
	Language *string `json:"language" form:"language" validate:"omitempty,min=1"`
	Status   *string `json:"status" form:"status"`
}

func (r *BookUpdateRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Author)
	trimPtr(r.Category)
	trimPtr(r.Language)
	trimPtr(r.Status)
}

// BookDownloadResponse is returned by the download endpoint after the
// counter is bumped.
type BookDownloadResponse struct {
	FileURL   string `json:"fileUrl"`
	Downloads int64  `json:"downloads"`
}
