package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/fixitnow-backend/internal/models"
	"github.com/ignatzorin/fixitnow-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fixitnow-backend/internal/repository/common"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockAuthRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newAuth(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, NewTokenManager("test-secret", time.Hour))
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockAuthRepo)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		// email нормализуется, пароль хранится только хешем
		return u.Email == "ivan@example.com" && u.Role == models.RolePro && u.PasswordHash != "Password123"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).ID = uuid.New()
	}).Return(nil)

	svc := newAuth(repo)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ivan@Example.com ",
		Password: "Password123",
		Name:     "Иван Петров",
		Phone:    "+15551234567",
		Role:     models.RolePro,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(common.ErrAlreadyExists)

	svc := newAuth(repo)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ivan@example.com",
		Password: "Password123",
		Name:     "Иван",
		Role:     models.RoleCustomer,
	})
	assert.ErrorIs(t, err, apperror.ErrEmailTaken)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := newAuth(repo)

	for _, password := range []string{"short1A", "nouppercase1", "NODIGITSHERE", "12345678"} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ivan@example.com",
			Password: password,
			Name:     "Иван",
			Role:     models.RoleCustomer,
		})
		assert.True(t, apperror.IsValidation(err), "пароль %q должен быть отклонён", password)
	}
	repo.AssertNotCalled(t, "CreateUser")
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newAuth(new(mockAuthRepo))

	for _, role := range []string{"admin", "manager", ""} {
		_, err := svc.Register(context.Background(), RegisterInput{
			Email:    "ivan@example.com",
			Password: "Password123",
			Name:     "Иван",
			Role:     role,
		})
		assert.True(t, apperror.IsValidation(err), "роль %q должна быть отклонена", role)
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc := newAuth(new(mockAuthRepo))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "Password123",
		Name:     "Иван",
		Role:     models.RoleCustomer,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		IsActive:     true,
	}

	repo := new(mockAuthRepo)
	repo.On("GetByEmail", mock.Anything, "ivan@example.com").Return(user, nil)

	svc := newAuth(repo)

	result, err := svc.Login(context.Background(), LoginInput{Email: "Ivan@Example.com", Password: "Password123"})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "ivan@example.com",
		PasswordHash: string(hash),
		IsActive:     true,
	}

	repo := new(mockAuthRepo)
	repo.On("GetByEmail", mock.Anything, "ivan@example.com").Return(user, nil)

	svc := newAuth(repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ivan@example.com", Password: "WrongPass1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, common.ErrNotFound)

	svc := newAuth(repo)

	// Неизвестный email неотличим от неверного пароля
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "Password123"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	user := &models.User{
		ID:           uuid.New(),
		Email:        "banned@example.com",
		PasswordHash: string(hash),
		IsActive:     false,
	}

	repo := new(mockAuthRepo)
	repo.On("GetByEmail", mock.Anything, "banned@example.com").Return(user, nil)

	svc := newAuth(repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "banned@example.com", Password: "Password123"})
	assert.Equal(t, apperror.ErrCodeForbidden, apperror.CodeOf(err))
}

func TestAuthService_Me_NotFound(t *testing.T) {
	id := uuid.New()
	repo := new(mockAuthRepo)
	repo.On("GetByID", mock.Anything, id).Return(nil, common.ErrNotFound)

	svc := newAuth(repo)

	_, err := svc.Me(context.Background(), id)
	assert.ErrorIs(t, err, apperror.ErrUserNotFound)
}

func TestTokenManager_GenerateParse(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: uuid.New(), Role: models.RolePro}

	token, exp, err := manager.Generate(user)
	assert.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	userID, role, err := manager.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, models.RolePro, role)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleCustomer}
	token, _, err := NewTokenManager("secret-a", time.Hour).Generate(user)
	assert.NoError(t, err)

	_, _, err = NewTokenManager("secret-b", time.Hour).Parse(token)
	assert.Error(t, err)
}
