package dto

import (
	"strings"
	"time"

	"hostel/infras/jwt"
	"hostel/internal/domains/admin/model"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	gModel "hostel/shared/model"
	"hostel/shared/timezone"

	"github.com/google/uuid"
)

type CreateAdminRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=superadmin admin staff"`
}

func (r *CreateAdminRequest) ToModel(createdBy, passwordHash string) model.Admin {
	now := timezone.Now()

	return model.Admin{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(r.Email),
		PasswordHash: passwordHash,
		Role:         r.Role,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type AdminResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Active    bool   `json:"active"`
	LastLogin string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (a *AdminResponse) FromModel(model model.Admin) {
	a.ID = model.ID
	a.Email = model.Email
	a.Role = model.Role
	a.Active = model.Active

	if model.LastLogin != nil {
		a.LastLogin = timezone.Format(*model.LastLogin, constant.DateFormat)
	}

	a.Metadata.FromModel(model.Metadata)
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	t.AccessToken = tokenPair.AccessToken
	t.RefreshToken = tokenPair.RefreshToken
	t.TokenType = tokenPair.TokenType
	t.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash"`
}
