package dto

type NewsRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Category    string `json:"category" form:"category"`
	Date        string `json:"date" form:"date"`
	Icon        string `json:"icon" form:"icon"`
	Color       string `json:"color" form:"color"`
	Link        string `json:"link" form:"link"`
}

func (r *NewsRequest) Normalize() {
	trim(&r.Title)
	trim(&r.Description)
	trim(&r.Category)
	trim(&r.Date)
	trim(&r.Icon)
	trim(&r.Color)
	trim(&r.Link)
}

type NewsUpdateRequest struct {
	Title       *string `json:"title" form:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" form:"description" validate:"omitempty,min=1"`
	Category    *string `json:"category" form:"category"`
	Date        *string `json:"date" form:"date"`
	Icon        *string `json:"icon" form:"icon"`
	Color       *string `json:"color" form:"color"`
	Link        *string `json:"link" form:"link"`
}

func (r *NewsUpdateRequest) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Category)
	trimPtr(r.Date)
	trimPtr(r.Icon)
	trimPtr(r.Color)
	trimPtr(r.Link)
}
