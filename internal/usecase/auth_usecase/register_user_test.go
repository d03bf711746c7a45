package auth_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newRegisterUC(users *UserRepoMock) *auth.RegisterUserUsecase {
	return auth.NewRegisterUserUsecase(
		users,
		auth.NewBcryptPasswordHasher(4),
		fixedIDGen{id: "id-1"},
		fixedClock{now: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	)
}

// 最初に登録した1人はADMINになる
func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	users := new(UserRepoMock)
	uc := newRegisterUC(users)

	users.On("FindByEmail", mock.Anything, "first@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("CountAll", mock.Anything).Return(int64(0), nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "first@example.com",
		Password: "correct horse battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, out.User.Role)
	assert.Empty(t, out.User.PasswordHash)
}

// 2人目以降はUSER
func TestRegister_SecondUserIsUser(t *testing.T) {
	users := new(UserRepoMock)
	uc := newRegisterUC(users)

	users.On("FindByEmail", mock.Anything, "second@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("CountAll", mock.Anything).Return(int64(1), nil)
	users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	out, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "second@example.com",
		Password: "correct horse battery",
	})

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, out.User.Role)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := newRegisterUC(users)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "a@example.com",
		Password: "short",
	})

	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegister_RejectsWeakPassword(t *testing.T) {
	users := new(UserRepoMock)
	uc := newRegisterUC(users)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "a@example.com",
		Password: "123456789012",
	})

	assert.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	users := new(UserRepoMock)
	uc := newRegisterUC(users)

	existing := &model.User{ID: "id-0", Email: "dup@example.com"}
	users.On("FindByEmail", mock.Anything, "dup@example.com").Return(existing, nil)

	_, err := uc.Execute(context.Background(), auth.RegisterUserInput{
		Email:    "dup@example.com",
		Password: "correct horse battery",
	})

	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}
