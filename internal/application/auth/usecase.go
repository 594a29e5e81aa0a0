package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/packstock-api/internal/application/dto"
	"github.com/jhoicas/packstock-api/internal/domain"
	"github.com/jhoicas/packstock-api/internal/domain/entity"
	"github.com/jhoicas/packstock-api/internal/domain/repository"
	"github.com/jhoicas/packstock-api/pkg/jwt"
)

// DefaultInviteDays vigencia por defecto de un código de invitación.
const DefaultInviteDays = 7

// FirstAdminInviteDays vigencia del código que se genera junto al primer administrador.
const FirstAdminInviteDays = 30

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro con invitación, login e invitaciones.
type AuthUseCase struct {
	adminRepo  repository.AdminRepository
	inviteRepo repository.InviteCodeRepository
	txRunner   TxRunner
	jwtCfg     JWTConfig
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminRepo repository.AdminRepository, inviteRepo repository.InviteCodeRepository, txRunner TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{
		adminRepo:  adminRepo,
		inviteRepo: inviteRepo,
		txRunner:   txRunner,
		jwtCfg:     jwtCfg,
		now:        time.Now,
	}
}

// Register crea un administrador consumiendo un código de invitación en la misma transacción.
// El código se bloquea (FOR UPDATE): dos registros con el mismo código no pueden ganar ambos.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	if !IsStrongPassword(in.Password) {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.adminRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	err = uc.txRunner.RunAuth(ctx, func(adminRepo repository.AdminRepository, inviteRepo repository.InviteCodeRepository) error {
		invite, err := inviteRepo.GetByCodeForUpdate(ctx, in.InviteCode)
		if err != nil {
			return err
		}
		if invite == nil {
			return domain.ErrInviteInvalid
		}
		if invite.Used {
			return domain.ErrInviteUsed
		}
		if invite.IsExpired(uc.now()) {
			return domain.ErrInviteExpired
		}
		if err := adminRepo.Create(ctx, admin); err != nil {
			return err
		}
		return inviteRepo.MarkUsed(ctx, invite.ID, admin.ID)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.token(admin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Message: "administrador registrado", Admin: toAdminResponse(admin), Token: token}, nil
}

// Login verifica username/password y devuelve un JWT. No distingue usuario inexistente de clave errónea.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	admin, err := uc.adminRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.token(admin)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Message: "login exitoso", Admin: toAdminResponse(admin), Token: token}, nil
}

// Me devuelve el administrador autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, adminID string) (*dto.AdminResponse, error) {
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, domain.ErrAdminNotFound
	}
	resp := toAdminResponse(admin)
	return &resp, nil
}

// Exists indica si el administrador del token sigue existiendo (lo usa el middleware).
func (uc *AuthUseCase) Exists(ctx context.Context, adminID string) (bool, error) {
	admin, err := uc.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		return false, err
	}
	return admin != nil, nil
}

// GenerateInvite crea un código de un solo uso. days <= 0 usa DefaultInviteDays.
func (uc *AuthUseCase) GenerateInvite(ctx context.Context, adminID string, days int) (*dto.InviteCodeResponse, error) {
	invite, err := uc.newInvite(ctx, uc.inviteRepo, adminID, days)
	if err != nil {
		return nil, err
	}
	resp := toInviteResponse(invite)
	return &resp, nil
}

// ListInvites devuelve los códigos; sin includeUsed solo los pendientes.
func (uc *AuthUseCase) ListInvites(ctx context.Context, includeUsed bool) ([]dto.InviteCodeResponse, error) {
	codes, err := uc.inviteRepo.List(ctx, includeUsed)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteCodeResponse, 0, len(codes))
	for _, c := range codes {
		out = append(out, toInviteResponse(c))
	}
	return out, nil
}

// RevokeInvite borra un código no usado. ErrNotFound si no existe o ya se usó.
func (uc *AuthUseCase) RevokeInvite(ctx context.Context, id string) error {
	ok, err := uc.inviteRepo.DeleteUnused(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// FirstAdminInput datos para crear un administrador sin invitación (cmd/create_admin).
type FirstAdminInput struct {
	Username string
	Email    string
	Password string
	Force    bool // crear aunque ya existan administradores
}

// CreateFirstAdmin crea un administrador y un código de invitación de 30 días.
// Devuelve domain.ErrConflict si ya hay administradores y no se pidió Force.
func (uc *AuthUseCase) CreateFirstAdmin(ctx context.Context, in FirstAdminInput) (*dto.AdminResponse, *dto.InviteCodeResponse, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Email) == "" || !IsStrongPassword(in.Password) {
		return nil, nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	admin := &entity.Admin{
		ID:           uuid.New().String(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}

	var invite *entity.InviteCode
	err = uc.txRunner.RunAuth(ctx, func(adminRepo repository.AdminRepository, inviteRepo repository.InviteCodeRepository) error {
		n, err := adminRepo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 && !in.Force {
			return domain.ErrConflict
		}
		if err := adminRepo.Create(ctx, admin); err != nil {
			return err
		}
		invite, err = uc.newInvite(ctx, inviteRepo, admin.ID, FirstAdminInviteDays)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	adminResp := toAdminResponse(admin)
	inviteResp := toInviteResponse(invite)
	return &adminResp, &inviteResp, nil
}

func (uc *AuthUseCase) newInvite(ctx context.Context, repo repository.InviteCodeRepository, adminID string, days int) (*entity.InviteCode, error) {
	if days <= 0 {
		days = DefaultInviteDays
	}
	expires := uc.now().Add(time.Duration(days) * 24 * time.Hour)
	createdBy := adminID
	invite := &entity.InviteCode{
		ID:        uuid.New().String(),
		Code:      NewInviteCode(),
		CreatedBy: &createdBy,
		ExpiresAt: &expires,
		CreatedAt: uc.now(),
	}
	if err := repo.Create(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// NewInviteCode devuelve 32 caracteres hexadecimales aleatorios.
func NewInviteCode() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (uc *AuthUseCase) token(a *entity.Admin) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, a.ID, a.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func toAdminResponse(a *entity.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}

func toInviteResponse(c *entity.InviteCode) dto.InviteCodeResponse {
	return dto.InviteCodeResponse{
		ID:        c.ID,
		Code:      c.Code,
		Used:      c.Used,
		ExpiresAt: c.ExpiresAt,
		CreatedAt: c.CreatedAt,
		UsedAt:    c.UsedAt,
		CreatedBy: c.CreatedByUsername,
		UsedBy:    c.UsedByUsername,
	}
}
