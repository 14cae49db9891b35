package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// BcryptCost factor de costo del hash de contraseñas.
const BcryptCost = 10

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthUseCase casos de uso de autenticación: registro, login con bloqueo, refresh y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	sessions RefreshStore
	jwtCfg   JWTConfig
	log      *logger.Logger
	metrics  LockoutMetrics
	now      func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*AuthUseCase)

// WithClock reemplaza el reloj (tests de la ventana de bloqueo).
func WithClock(now func() time.Time) Option {
	return func(uc *AuthUseCase) { uc.now = now }
}

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *AuthUseCase) { uc.log = l.Component("auth") }
}

// WithMetrics asigna el contador de bloqueos.
func WithMetrics(m LockoutMetrics) Option {
	return func(uc *AuthUseCase) { uc.metrics = m }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessions RefreshStore, jwtCfg JWTConfig, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{
		userRepo: userRepo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		log:      logger.Nop(),
		metrics:  noopMetrics{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea un usuario con el rol pedido (cliente si no se indica).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserPublic, error) {
	return uc.register(ctx, in, true)
}

// RegisterCustomer auto-registro: siempre rol cliente, ignora role_id.
func (uc *AuthUseCase) RegisterCustomer(ctx context.Context, in dto.RegisterRequest) (*dto.UserPublic, error) {
	return uc.register(ctx, in, false)
}

func (uc *AuthUseCase) register(ctx context.Context, in dto.RegisterRequest, honourRole bool) (*dto.UserPublic, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	role := entity.DefaultRole
	if honourRole && in.RoleID != nil {
		role = entity.Role(*in.RoleID)
		if !role.Valid() {
			return nil, domain.ErrRoleNotFound
		}
	}
	email := normalizeEmail(in.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.Validation("contraseña debe ocupar como máximo 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", role.String()).Msg("usuario registrado")
	out := toUserPublic(user)
	return &out, nil
}

// Login verifica credenciales aplicando la política de bloqueo y emite access + refresh token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Warn().Str("email", email).Msg("login con email no registrado")
		return nil, domain.ErrEmailNotRegistered
	}

	now := uc.now()
	if user.IsLocked(now) {
		uc.log.Warn().Int64("user_id", user.ID).Time("locked_until", *user.LockedUntil).Msg("login sobre cuenta bloqueada")
		return nil, domain.ErrLocked
	}
	if user.LockExpired(now) {
		// el bloqueo venció: los intentos vuelven a contarse desde cero
		if err := uc.userRepo.ResetFailedAttempts(ctx, user.ID); err != nil {
			return nil, err
		}
		user.FailedAttempts = 0
		user.LockedUntil = nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("compare password: %w", err)
		}
		attempts, err := uc.userRepo.RegisterFailedAttempt(ctx, user.ID, entity.MaxFailedAttempts, now.Add(entity.LockoutWindow))
		if err != nil {
			return nil, err
		}
		if attempts >= entity.MaxFailedAttempts {
			uc.metrics.IncLockout()
			uc.log.Warn().Int64("user_id", user.ID).Int("attempts", attempts).Msg("usuario bloqueado por intentos fallidos")
			return nil, domain.ErrLocked
		}
		uc.log.Warn().Int64("user_id", user.ID).Int("attempts", attempts).Msg("contraseña incorrecta")
		return nil, domain.ErrInvalidCredentials
	}

	if err := uc.userRepo.ResetFailedAttempts(ctx, user.ID); err != nil {
		return nil, err
	}
	user.FailedAttempts = 0

	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID, user.Email, int(user.Role), uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	jti := uuid.NewString()
	refresh, exp, err := jwt.GenerateRefresh(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID, jti, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := uc.sessions.Save(ctx, entity.RefreshSession{JTI: jti, UserID: user.ID, ExpiresAt: exp}); err != nil {
		return nil, fmt.Errorf("save refresh session: %w", err)
	}

	uc.log.Info().Int64("user_id", user.ID).Msg("inicio de sesión exitoso")
	return &dto.LoginResponse{
		Success:      true,
		Message:      "Inicio de sesión exitoso",
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserPublic(user),
	}, nil
}

// Refresh emite un nuevo access token a partir de un refresh token vigente y registrado.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	if refreshToken == "" {
		return nil, domain.ErrForbidden
	}
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil, domain.ErrForbidden
	}
	userID, found, err := uc.sessions.Lookup(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		return nil, err
	}
	if !found || userID != claims.ID {
		return nil, domain.ErrForbidden
	}
	user, err := uc.userRepo.GetByID(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrForbidden
	}
	access, err := jwt.GenerateAccess(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, user.ID, user.Email, int(user.Role), uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// Logout revoca el refresh token si se envía uno válido. Idempotente.
// Un refresh token de otro usuario no se revoca: ErrForbidden.
func (uc *AuthUseCase) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	claims, err := jwt.ParseRefresh(uc.jwtCfg.Secret, refreshToken)
	if err != nil {
		return nil
	}
	if claims.ID != userID {
		uc.log.Warn().Int64("user_id", userID).Int64("token_user_id", claims.ID).Msg("logout con refresh token ajeno")
		return domain.ErrForbidden
	}
	return uc.sessions.Revoke(ctx, claims.RegisteredClaims.ID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserPublic(u *entity.User) dto.UserPublic {
	return dto.UserPublic{ID: u.ID, Name: u.Name, Email: u.Email, RoleID: int(u.Role)}
}
