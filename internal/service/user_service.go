package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jokebox/internal/cache"
	"jokebox/internal/errors"
	"jokebox/internal/model"
	"jokebox/internal/repository"
)

const (
	profileCacheKey = "user:profile"
	profileCacheTTL = 5 * time.Minute

	// tokenPrefix forms the placeholder credential returned on login. It is
	// deliberately unsigned and non-expiring.
	tokenPrefix = "secure-token-for-"

	// loginFailedMessage is identical for unknown email and wrong password
	// so responses do not leak account existence.
	loginFailedMessage = "Invalid email or password"
)

// RegisterResult confirms a registration without exposing the password
// or its hash.
type RegisterResult struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

// LoginResult carries the placeholder token, or an empty token with a
// generic error message on credential failure.
type LoginResult struct {
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}

// ProfileResult is the profile view of a user account.
type ProfileResult struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// ProfileUpdate carries the optional profile fields. A nil pointer marks a
// field as not supplied, distinct from an empty value.
type ProfileUpdate struct {
	Name              *string
	Email             *string
	ProfilePictureURL *string
	Bio               *string
}

// UpdateProfileResult reports which fields were applied. UpdatedFields is
// empty when the update failed or nothing was supplied.
type UpdateProfileResult struct {
	Status        string            `json:"status"`
	UpdatedFields map[string]string `json:"updated_fields"`
	Message       string            `json:"message,omitempty"`
}

// UserService exposes the user account operations.
type UserService interface {
	Register(ctx context.Context, email, password string, username, role *string) (RegisterResult, error)
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Profile(ctx context.Context) (ProfileResult, error)
	UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) UpdateProfileResult
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// Register creates an account with a bcrypt-hashed password. The role
// defaults to USER; an explicit role is normalized and validated. A
// duplicate email surfaces as the store's uniqueness error.
func (s *userService) Register(ctx context.Context, email, password string, username, role *string) (RegisterResult, error) {
	finalRole := model.RoleUser
	if role != nil {
		parsed, err := model.ParseRole(*role)
		if err != nil {
			return RegisterResult{}, err
		}
		finalRole = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         finalRole,
	}
	if username != nil {
		user.Name = *username
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return RegisterResult{}, fmt.Errorf("create user: %w", err)
	}
	_ = s.cache.Delete(ctx, profileCacheKey)

	res := RegisterResult{
		Message: "User successfully registered.",
		UserID:  user.ID,
		Email:   user.Email,
	}
	if username != nil {
		res.Username = *username
	}
	return res, nil
}

// Login verifies credentials and returns the placeholder token. Unknown
// email and wrong password produce the same generic failure.
func (s *userService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return LoginResult{Token: "", Error: loginFailedMessage}, nil
		}
		return LoginResult{}, fmt.Errorf("find user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return LoginResult{Token: "", Error: loginFailedMessage}, nil
	}

	return LoginResult{Token: tokenPrefix + user.ID}, nil
}

// Profile returns the first-found account, simulating the logged-in user
// until a real identity collaborator exists. An empty store is an error.
func (s *userService) Profile(ctx context.Context) (ProfileResult, error) {
	if data, _ := s.cache.Get(ctx, profileCacheKey); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return profileOf(&cached), nil
		}
	}

	user, err := s.repo.FindFirst(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ProfileResult{}, errors.ErrUserNotFound
		}
		return ProfileResult{}, fmt.Errorf("find first user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey, payload, profileCacheTTL)
	}
	return profileOf(user), nil
}

func profileOf(user *model.User) ProfileResult {
	return ProfileResult{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateProfile applies the supplied non-empty fields against the given
// account. Store failures are encoded into the result, not returned.
func (s *userService) UpdateProfile(ctx context.Context, userID string, fields ProfileUpdate) UpdateProfileResult {
	set := map[string]interface{}{}
	applied := map[string]string{}
	add := func(column, key string, v *string) {
		if v == nil || *v == "" {
			return
		}
		set[column] = *v
		applied[key] = *v
	}
	add("name", "name", fields.Name)
	add("email", "email", fields.Email)
	add("profile_picture_url", "profilePictureUrl", fields.ProfilePictureURL)
	add("bio", "bio", fields.Bio)

	if len(set) > 0 {
		if err := s.repo.UpdateFields(ctx, userID, set); err != nil {
			return UpdateProfileResult{
				Status:        "failed",
				UpdatedFields: map[string]string{},
				Message:       fmt.Sprintf("Failed to update profile: %v", err),
			}
		}
		_ = s.cache.Delete(ctx, profileCacheKey)
	}

	return UpdateProfileResult{
		Status:        "success",
		UpdatedFields: applied,
		Message:       "Profile updated successfully.",
	}
}
