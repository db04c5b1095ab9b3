package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"hostel/infras/jwt"
	"hostel/infras/otel"
	"hostel/internal/domains/admin/model"
	"hostel/internal/domains/admin/model/dto"
	"hostel/internal/domains/admin/repository"
	"hostel/shared"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/password"
	"hostel/shared/timezone"

	"github.com/rs/zerolog/log"
)

const msgInvalidCredentials = "invalid email or password"

type Admin interface {
	Create(ctx context.Context, req dto.CreateAdminRequest) (dto.AdminResponse, error)
	Bootstrap(ctx context.Context, email, plainPassword string) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
}

type serviceImpl struct {
	repo       repository.Admin
	jwtService jwt.JWT
	otel       otel.Otel
}

func New(repo repository.Admin, jwt jwt.JWT, otel otel.Otel) Admin {
	return &serviceImpl{
		repo:       repo,
		jwtService: jwt,
		otel:       otel,
	}
}

func emailFilter(email string) gDto.FilterGroup {
	return shared.FilterByID(strings.ToLower(email), model.FieldEmail, model.TableName)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAdminRequest) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.repo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return res, fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return res, failure.Conflict("email already registered")
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	createdBy, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if createdBy == constant.Empty {
		createdBy = constant.ContextSystem
	}

	admin := req.ToModel(createdBy, hashed)

	if err = s.repo.Insert(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to create admin")

		return res, fmt.Errorf("failed to create admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}

// Bootstrap creates the first superadmin when no admin holds the given email yet.
func (s *serviceImpl) Bootstrap(ctx context.Context, email, plainPassword string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin.Bootstrap")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if email == constant.Empty || plainPassword == constant.Empty {
		return nil
	}

	_, err = s.Create(ctx, dto.CreateAdminRequest{Email: email, Password: plainPassword, Role: constant.RoleSuperAdmin})
	if failure.Is(err, http.StatusConflict) {
		return nil
	}

	if err == nil {
		log.Info().Str("email", email).Msg("bootstrap admin created")
	}

	return err
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := emailFilter(req.Email)

	admin, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err := password.Verify(req.Password, admin.PasswordHash); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if !admin.Active {
		return res, failure.Forbidden("admin account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Email, admin.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}

	if err := s.repo.Update(ctx, shared.TransformFields(lastLogin, admin.ID), filter); err != nil {
		log.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Admin.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(adminID, model.FieldID, model.TableName)

	admin, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return failure.NotFound("admin not found")
	}

	if err := password.Verify(req.CurrentPassword, admin.PasswordHash); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashed}, adminID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
