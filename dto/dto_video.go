package dto

type VideoRequest struct {
	Title      string `json:"title" form:"title" validate:"required"`
	Instructor string `json:"instructor" form:"instructor" validate:"required"`
	Category   string `json:"category" form:"category" validate:"required"`
	Duration   string `json:"duration" form:"duration" validate:"required"`
	Status     string `json:"status" form:"status"`
}

func (r *VideoRequest) Normalize() {
	trim(&r.Title)
	trim(&r.Instructor)
	trim(&r.Category)
	trim(&r.Duration)
	trim(&r.Status)
}

type VideoUpdateRequest struct {
	Title      *string `json:"title" form:"title" validate:"omitempty,min=1"`
	Instructor *string `json:"instructor" form:"instructor" validate:"omitempty,min=1"`
	Category   *string `json:"category" form:"category" validate:"omitempty,min=1"`
	Duration   *string `json:"duration" form:"duration" validate:"omitempty,min=1"`
	Status     *string `json:"status" form:"status"`
}

func (r *VideoUpdateRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Instructor)
	trimPtr(r.Category)
	trimPtr(r.Duration)
	trimPtr(r.Status)
}

type VideoLinkResponse struct {
	VideoFile string `json:"videoFile"`
	Views     int64  `json:"views"`
}
