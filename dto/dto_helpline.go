package dto

import "strings"

type HelplineRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,strictemail"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (r *HelplineRequest) Normalize() {
	trim(&r.Name)
	trim(&r.Phone)
	trim(&r.Subject)
	trim(&r.Message)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}
