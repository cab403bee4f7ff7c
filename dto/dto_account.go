package dto

import (
	"strings"
	"time"

	"github.com/Fazeelit/mohafizbackend/internal/models"
)

type SignUpRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,strictemail"`
	Password string `json:"password" validate:"required"`
}

func (r *SignUpRequest) Normalize() {
	trim(&r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ResetPasswordRequest struct {
	Email           string `json:"email" validate:"required"`
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

func (r *ResetPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateAccountRequest is the admin-editable subset of an account. Fields
// outside it (email, role, password) are ignored.
type UpdateAccountRequest struct {
	Username       *string `json:"username" validate:"omitempty,min=1"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone" validate:"omitempty,phone"`
	ProfilePicture *string `json:"profilePicture" validate:"omitempty,min=1"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateAccountRequest) Normalize() {
	trimPtr(r.Username)
	trimPtr(r.Address)
	trimPtr(r.Phone)
	trimPtr(r.ProfilePicture)
	if r.Status != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
}

// Patch converts the request into the repository allow-list.
func (r UpdateAccountRequest) Patch() models.AccountPatch {
	p := models.AccountPatch{
		Username:       r.Username,
		Address:        r.Address,
		Phone:          r.Phone,
		ProfilePicture: r.ProfilePicture,
	}
	if r.Status != nil {
		s := models.AccountStatus(*r.Status)
		p.Status = &s
	}
	return p
}

type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      models.Account `json:"user"`
}
