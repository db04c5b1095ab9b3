package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hostel/infras/jwt"
	jwtMocks "hostel/infras/jwt/mocks"
	"hostel/infras/otel/mocks"
	adminMocks "hostel/internal/domains/admin/mocks"
	"hostel/internal/domains/admin/model"
	"hostel/internal/domains/admin/model/dto"
	"hostel/internal/domains/admin/service"
	"hostel/shared/constant"
	gDto "hostel/shared/dto"
	"hostel/shared/failure"
	"hostel/shared/password"
)

func hashed(t *testing.T, plain string) string {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

func TestAdminService_Login(t *testing.T) {
	validAdmin := model.Admin{
		ID:           "9a0e1f4c-5b7d-4c1e-8f00-000000000001",
		Email:        "desk@innberlin.de",
		PasswordHash: hashed(t, "s3cret-pass"),
		Role:         constant.RoleAdmin,
		Active:       true,
	}

	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *adminMocks.MockAdmin, jwtSvc *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Desk@InnBerlin.de", Password: "s3cret-pass"},
			setupMock: func(repo *adminMocks.MockAdmin, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				jwtSvc.EXPECT().GenerateTokenPair(validAdmin.ID, validAdmin.Email, validAdmin.Role).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not block login",
			req:  dto.LoginRequest{Email: "desk@innberlin.de", Password: "s3cret-pass"},
			setupMock: func(repo *adminMocks.MockAdmin, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@innberlin.de", Password: "s3cret-pass"},
			setupMock: func(repo *adminMocks.MockAdmin, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "desk@innberlin.de", Password: "guess"},
			setupMock: func(repo *adminMocks.MockAdmin, _ *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated admin",
			req:  dto.LoginRequest{Email: "desk@innberlin.de", Password: "s3cret-pass"},
			setupMock: func(repo *adminMocks.MockAdmin, _ *jwtMocks.MockJWT) {
				inactive := validAdmin
				inactive.Active = false

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "desk@innberlin.de", Password: "s3cret-pass"},
			setupMock: func(repo *adminMocks.MockAdmin, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validAdmin, nil)
				jwtSvc.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("signing failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := adminMocks.NewMockAdmin(ctrl)
			jwtSvc := jwtMocks.NewMockJWT(ctrl)
			svc := service.New(repo, jwtSvc, mocks.NewOtel())

			tt.setupMock(repo, jwtSvc)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAdminService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := adminMocks.NewMockAdmin(ctrl)
	jwtSvc := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(repo, jwtSvc, mocks.NewOtel())

	jwtSvc.EXPECT().RefreshTokens("expired").Return(nil, jwt.ErrExpiredToken)
	jwtSvc.EXPECT().RefreshTokens("valid").Return(&jwt.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil)

	_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})
	assert.True(t, failure.Is(err, http.StatusUnauthorized))

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid"})
	require.NoError(t, err)
	assert.Equal(t, "a2", res.AccessToken)
}

func TestAdminService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "root")

	t.Run("duplicate email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMocks.NewMockAdmin(ctrl)
		svc := service.New(repo, jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(ctx, dto.CreateAdminRequest{Email: "desk@innberlin.de", Password: "s3cret-pass", Role: constant.RoleStaff})

		assert.True(t, failure.Is(err, http.StatusConflict))
	})

	t.Run("stores hashed password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMocks.NewMockAdmin(ctrl)
		svc := service.New(repo, jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, admin model.Admin) error {
				assert.NotEqual(t, "s3cret-pass", admin.PasswordHash)
				assert.NoError(t, password.Verify("s3cret-pass", admin.PasswordHash))
				assert.Equal(t, "root", admin.CreatedBy)

				return nil
			})

		res, err := svc.Create(ctx, dto.CreateAdminRequest{Email: "Desk@InnBerlin.de", Password: "s3cret-pass", Role: constant.RoleStaff})

		require.NoError(t, err)
		assert.Equal(t, "desk@innberlin.de", res.Email)
		assert.True(t, res.Active)
	})
}

func TestAdminService_Bootstrap(t *testing.T) {
	t.Run("already present", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMocks.NewMockAdmin(ctrl)
		svc := service.New(repo, jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.NoError(t, svc.Bootstrap(context.Background(), "root@innberlin.de", "s3cret-pass"))
	})

	t.Run("not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := service.New(adminMocks.NewMockAdmin(ctrl), jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		assert.NoError(t, svc.Bootstrap(context.Background(), "", ""))
	})
}

func TestAdminService_ChangePassword(t *testing.T) {
	current := model.Admin{ID: "a1", PasswordHash: hashed(t, "old-password")}

	t.Run("wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMocks.NewMockAdmin(ctrl)
		svc := service.New(repo, jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-password"}, "a1")

		assert.True(t, failure.Is(err, http.StatusBadRequest))
	})

	t.Run("updates hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := adminMocks.NewMockAdmin(ctrl)
		svc := service.New(repo, jwtMocks.NewMockJWT(ctrl), mocks.NewOtel())

		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				hash, ok := fields[model.FieldPasswordHash].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-password", hash))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}, "a1")

		assert.NoError(t, err)
	})
}
