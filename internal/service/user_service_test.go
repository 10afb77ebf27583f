package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "jokebox/internal/errors"
	"jokebox/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindFirst(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		username      *string
		role          *string
		setupMock     func(*MockUserRepository)
		expectedRole  model.Role
		expectedError error
	}{
		{
			name:     "role defaults to USER",
			email:    "a@x.com",
			password: "p",
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = "user-1"
					}).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:     "explicit role is case-normalized",
			email:    "e@x.com",
			password: "p",
			username: strPtr("ed"),
			role:     strPtr("editor"),
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
					Run(func(args mock.Arguments) {
						args.Get(1).(*model.User).ID = "user-2"
					}).Return(nil)
			},
			expectedRole: model.RoleEditor,
		},
		{
			name:          "unknown role is rejected before any store call",
			email:         "b@x.com",
			password:      "p",
			role:          strPtr("OVERLORD"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			res, err := svc.Register(context.Background(), tt.email, tt.password, tt.username, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "User successfully registered.", res.Message)
			assert.NotEmpty(t, res.UserID)
			assert.Equal(t, tt.email, res.Email)
			if tt.username != nil {
				assert.Equal(t, *tt.username, res.Username)
			} else {
				assert.Empty(t, res.Username)
			}

			created := mockRepo.Calls[0].Arguments.Get(1).(*model.User)
			assert.Equal(t, tt.expectedRole, created.Role)
			assert.NotEqual(t, tt.password, created.PasswordHash)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte(tt.password)))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(errors.New("Error 1062 (23000): Duplicate entry"))

	svc := NewUserService(mockRepo, nil)
	_, err := svc.Register(context.Background(), "a@x.com", "p", nil, nil)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate entry")
}

func TestUserService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	account := &model.User{
		ID:           "user-1",
		Email:        "test@example.com",
		PasswordHash: string(hash),
	}

	t.Run("correct credentials return token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(account, nil)

		svc := NewUserService(mockRepo, nil)
		res, err := svc.Login(context.Background(), "test@example.com", "password123")

		assert.NoError(t, err)
		assert.Equal(t, "secure-token-for-user-1", res.Token)
		assert.Empty(t, res.Error)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "test@example.com").Return(account, nil)
		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)

		wrongPass, err := svc.Login(context.Background(), "test@example.com", "wrong")
		assert.NoError(t, err)
		unknown, err := svc.Login(context.Background(), "nobody@example.com", "password123")
		assert.NoError(t, err)

		assert.Empty(t, wrongPass.Token)
		assert.Empty(t, unknown.Token)
		assert.Equal(t, "Invalid email or password", wrongPass.Error)
		assert.Equal(t, wrongPass.Error, unknown.Error)
	})
}

func TestUserService_Profile(t *testing.T) {
	t.Run("empty store fails", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindFirst", mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.Profile(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	t.Run("first record stands in for the logged-in user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindFirst", mock.Anything).Return(&model.User{
			ID:    "user-1",
			Email: "first@example.com",
			Role:  model.RoleAdmin,
		}, nil)

		svc := NewUserService(mockRepo, nil)
		res, err := svc.Profile(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.ID)
		assert.Equal(t, "first@example.com", res.Email)
		assert.Equal(t, model.RoleAdmin, res.Role)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("only supplied non-empty fields are applied", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdateFields", mock.Anything, "user-1", map[string]interface{}{
			"name": "N",
		}).Return(nil)

		svc := NewUserService(mockRepo, nil)
		res := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
			Name:  strPtr("N"),
			Email: strPtr(""), // supplied but empty, must not be applied
		})

		assert.Equal(t, "success", res.Status)
		assert.Equal(t, map[string]string{"name": "N"}, res.UpdatedFields)
		mockRepo.AssertExpectations(t)
	})

	t.Run("nothing supplied is a success with an empty map", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewUserService(mockRepo, nil)
		res := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{})

		assert.Equal(t, "success", res.Status)
		assert.Empty(t, res.UpdatedFields)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure is encoded, not raised", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("UpdateFields", mock.Anything, "user-1", mock.Anything).
			Return(errors.New("connection refused"))

		svc := NewUserService(mockRepo, nil)
		res := svc.UpdateProfile(context.Background(), "user-1", ProfileUpdate{
			Bio: strPtr("hello"),
		})

		assert.Equal(t, "failed", res.Status)
		assert.Empty(t, res.UpdatedFields)
		assert.Contains(t, res.Message, "Failed to update profile:")
	})
}
