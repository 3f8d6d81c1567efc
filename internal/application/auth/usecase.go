package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/dashboard-facturas/internal/application/dto"
	"github.com/jhoicas/dashboard-facturas/internal/domain"
	"github.com/jhoicas/dashboard-facturas/internal/domain/entity"
	"github.com/jhoicas/dashboard-facturas/internal/domain/repository"
	"github.com/jhoicas/dashboard-facturas/pkg/jwt"
	"github.com/jhoicas/dashboard-facturas/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase puerta de acceso: verificación de credenciales, login y alta de usuarios.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	validate *validator.Validate
	log      *logger.Logger
	compare  func(hash, password []byte) error
}

// dummyHash se compara cuando el email no existe, así ambos rechazos cuestan un bcrypt.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("dashboard-facturas/no-user"), bcrypt.DefaultCost)
	return h
})

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		validate: validator.New(),
		log:      log.Component("auth"),
		compare:  bcrypt.CompareHashAndPassword,
	}
}

// Authorize busca el usuario por email exacto y compara la contraseña con bcrypt.
// Usuario inexistente y contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Authorize(ctx context.Context, email, password string) (*entity.User, error) {
	in := dto.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := uc.validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		uc.log.Error().Err(err).Str("op", "getUser").Msg("database error")
		return nil, domain.NewDatabaseError("getUser", "Failed to fetch user.", err)
	}
	if user == nil {
		_ = uc.compare(dummyHash(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := uc.compare([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Authorize(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("login: firmar token: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("login")
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// RegisterUser crea un usuario con la contraseña hasheada con bcrypt.
// Devuelve el error del repositorio si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, name, email, password string) (*dto.UserResponse, error) {
	in := dto.LoginRequest{Email: strings.TrimSpace(email), Password: password}
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
