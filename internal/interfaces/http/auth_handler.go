package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/packstock-api/internal/application/dto"
)

// AdminAuth lo implementa *auth.AuthUseCase.
type AdminAuth interface {
	AdminChecker
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, adminID string) (*dto.AdminResponse, error)
	GenerateInvite(ctx context.Context, adminID string, days int) (*dto.InviteCodeResponse, error)
	ListInvites(ctx context.Context, includeUsed bool) ([]dto.InviteCodeResponse, error)
	RevokeInvite(ctx context.Context, id string) error
}

// AuthHandler maneja registro, login e invitaciones.
type AuthHandler struct {
	uc AdminAuth
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc AdminAuth) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar administrador
// @Description  Requiere un código de invitación válido, sin usar y vigente.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password, invite_code"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Administrador actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetAdminID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GenerateInvite godoc
// @Summary      Generar código de invitación
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateInviteRequest  false  "expires_in_days (7 por defecto)"
// @Success      201   {object}  dto.InviteCodeResponse
// @Router       /api/auth/invites [post]
func (h *AuthHandler) GenerateInvite(c *fiber.Ctx) error {
	var in dto.GenerateInviteRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &in); err != nil {
			return err
		}
	}
	out, err := h.uc.GenerateInvite(c.Context(), GetAdminID(c), in.ExpiresInDays)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvites godoc
// @Summary      Listar códigos de invitación
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        show_used  query  bool  false  "Incluir códigos usados"
// @Success      200  {array}  dto.InviteCodeResponse
// @Router       /api/auth/invites [get]
func (h *AuthHandler) ListInvites(c *fiber.Ctx) error {
	out, err := h.uc.ListInvites(c.Context(), c.QueryBool("show_used", false))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RevokeInvite godoc
// @Summary      Revocar código sin usar
// @Tags         auth
// @Security     Bearer
// @Param        id   path  string  true  "ID del código"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/invites/{id} [delete]
func (h *AuthHandler) RevokeInvite(c *fiber.Ctx) error {
	if err := h.uc.RevokeInvite(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
