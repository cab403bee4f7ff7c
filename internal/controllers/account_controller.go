package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Fazeelit/mohafizbackend/dto"
	"github.com/Fazeelit/mohafizbackend/internal/middleware"
	"github.com/Fazeelit/mohafizbackend/internal/models"
	"github.com/Fazeelit/mohafizbackend/internal/services"
)

// AccountController serves one role's account endpoints; the role is fixed
// at construction, so clients can never pick it.
type AccountController struct {
	base
	svc   *services.AccountService
	role  models.Role
	label string
}

func NewAccountController(svc *services.AccountService, role models.Role, timeout time.Duration) *AccountController {
	label := "User"
	if role == models.RoleAdmin {
		label = "Admin"
	}
	return &AccountController{base: base{timeout: timeout}, svc: svc, role: role, label: label}
}

// SignUp godoc
// @Summary Create an account
// @Description Admin signup needs X-Admin-Signup-Key when ADMIN_SIGNUP_KEY is set
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body dto.SignUpRequest true "Sign-up request"
// @Param X-Admin-Signup-Key header string false "Admin signup key"
// @Success 201 {object} dto.Response{data=models.Account}
// @Failure 400 {object} apperr.Body
// @Failure 403 {object} apperr.Body "Invalid admin signup key"
// @Failure 429 {object} apperr.Body
// @Router /api/users/signup [post]
// @Router /api/admins/signupAdmin [post]
func (h *AccountController) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	acc, err := h.svc.SignUp(ctx, h.role, req)
	if err != nil {
		return err
	}
	return created(c, h.label+" created successfully", acc)
}

// Login godoc
// @Summary Log in
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.Response{data=dto.LoginResponse}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body "Invalid email or password"
// @Failure 403 {object} apperr.Body "Account is inactive"
// @Failure 429 {object} apperr.Body
// @Router /api/users/login [post]
// @Router /api/admins/loginAdmin [post]
func (h *AccountController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	res, err := h.svc.Login(ctx, h.role, req)
	if err != nil {
		return err
	}
	return ok(c, h.label+" logged in successfully", res)
}

// ResetPassword godoc
// @Summary Change password
// @Tags accounts
// @Accept json
// @Produce json
// @Param body body dto.ResetPasswordRequest true "Old and new password"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body "Old password is incorrect"
// @Failure 404 {object} apperr.Body
// @Failure 429 {object} apperr.Body
// @Router /api/users/resetPassword [put]
// @Router /api/admins/resetPasswordAdmin [put]
func (h *AccountController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.ResetPassword(ctx, h.role, req); err != nil {
		return err
	}
	return ok(c, "Password changed successfully", nil)
}

// List godoc
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ListResponse{data=[]models.Account}
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Router /api/users [get]
// @Router /api/admins [get]
func (h *AccountController) List(c *fiber.Ctx) error {
	ctx, cancel := h.ctx(c)
	defer cancel()

	accounts, err := h.svc.List(ctx, h.role)
	if err != nil {
		return err
	}
	return listed(c, h.label+"s fetched successfully", accounts)
}

// Me returns the account the bearer token was issued to.
//
// @Summary Current account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=models.Account}
// @Failure 401 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/users/me [get]
// @Router /api/admins/me [get]
func (h *AccountController) Me(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	acc, err := h.svc.Get(ctx, h.role, uid)
	if err != nil {
		return err
	}
	return ok(c, h.label+" fetched successfully", acc)
}

// Update godoc
// @Summary Update an account
// @Description Only username, address, phone, profilePicture and status can change
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param body body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} dto.Response{data=models.Account}
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/users/updateUser/{id} [put]
// @Router /api/admins/updateAdmin/{id} [put]
func (h *AccountController) Update(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateAccountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	acc, err := h.svc.Update(ctx, h.role, id, req)
	if err != nil {
		return err
	}
	return ok(c, h.label+" updated successfully", acc)
}

// Delete godoc
// @Summary Delete an account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} dto.Response
// @Failure 400 {object} apperr.Body
// @Failure 401 {object} apperr.Body
// @Failure 403 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /api/users/{id} [delete]
// @Router /api/admins/deleteAdmin/{id} [delete]
func (h *AccountController) Delete(c *fiber.Ctx) error {
	id, err := middleware.ParamID(c)
	if err != nil {
		return err
	}
	ctx, cancel := h.ctx(c)
	defer cancel()

	if err := h.svc.Delete(ctx, h.role, id); err != nil {
		return err
	}
	return ok(c, h.label+" deleted successfully", nil)
}
