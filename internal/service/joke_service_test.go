package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "jokebox/internal/errors"
	"jokebox/internal/model"
)

// MockJokeRepository is a mock implementation of JokeRepository.
type MockJokeRepository struct {
	mock.Mock
}

func (m *MockJokeRepository) Create(ctx context.Context, joke *model.Joke) error {
	args := m.Called(ctx, joke)
	return args.Error(0)
}

func (m *MockJokeRepository) FindByID(ctx context.Context, id string) (*model.Joke, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Joke), args.Error(1)
}

func (m *MockJokeRepository) Update(ctx context.Context, joke *model.Joke) error {
	args := m.Called(ctx, joke)
	return args.Error(0)
}

func (m *MockJokeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJokeRepository) List(ctx context.Context) ([]model.Joke, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Joke), args.Error(1)
}

func TestJokeService_Add(t *testing.T) {
	t.Run("successful add", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Joke")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.Joke).ID = "joke-1"
			}).Return(nil)

		svc := NewJokeService(mockRepo, nil)
		res := svc.Add(context.Background(), "Why did the gopher cross the road?")

		assert.True(t, res.Success)
		assert.Equal(t, "Joke successfully added.", res.Message)
		assert.Equal(t, "joke-1", res.JokeID)
		assert.Equal(t, "Why did the gopher cross the road?", res.Content)
		mockRepo.AssertExpectations(t)
	})

	t.Run("store failure is encoded, not raised", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Joke")).
			Return(errors.New("connection refused"))

		svc := NewJokeService(mockRepo, nil)
		res := svc.Add(context.Background(), "lost joke")

		assert.False(t, res.Success)
		assert.Empty(t, res.JokeID)
		assert.Equal(t, "lost joke", res.Content)
		assert.Contains(t, res.Message, "Failed to add joke.")
		assert.Contains(t, res.Message, "connection refused")
		mockRepo.AssertExpectations(t)
	})
}

func TestJokeService_Delete(t *testing.T) {
	t.Run("missing joke fails", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("FindByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewJokeService(mockRepo, nil)
		_, err := svc.Delete(context.Background(), "nope")

		assert.ErrorIs(t, err, apperrors.ErrJokeNotFound)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("existing joke is removed", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("FindByID", mock.Anything, "joke-1").Return(&model.Joke{ID: "joke-1"}, nil)
		mockRepo.On("Delete", mock.Anything, "joke-1").Return(nil)

		svc := NewJokeService(mockRepo, nil)
		res, err := svc.Delete(context.Background(), "joke-1")

		assert.NoError(t, err)
		assert.Equal(t, "Joke with id joke-1 successfully deleted.", res.Message)
		mockRepo.AssertExpectations(t)
	})
}

func TestJokeService_Update(t *testing.T) {
	t.Run("missing joke yields success=false", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("FindByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

		svc := NewJokeService(mockRepo, nil)
		res, err := svc.Update(context.Background(), "nope", "new content")

		assert.NoError(t, err)
		assert.False(t, res.Success)
		assert.Nil(t, res.UpdatedJoke)
	})

	t.Run("existing joke gets new content, same id", func(t *testing.T) {
		created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		mockRepo := new(MockJokeRepository)
		mockRepo.On("FindByID", mock.Anything, "joke-1").Return(&model.Joke{
			ID:        "joke-1",
			Content:   "old content",
			CreatedAt: created,
			UpdatedAt: created,
		}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Joke")).Return(nil)

		svc := NewJokeService(mockRepo, nil)
		res, err := svc.Update(context.Background(), "joke-1", "new content")

		assert.NoError(t, err)
		assert.True(t, res.Success)
		assert.NotNil(t, res.UpdatedJoke)
		assert.Equal(t, "joke-1", res.UpdatedJoke.ID)
		assert.Equal(t, "new content", res.UpdatedJoke.Content)
		assert.Equal(t, created.Format(time.RFC3339), res.UpdatedJoke.CreatedAt)
		mockRepo.AssertExpectations(t)
	})
}

func TestJokeService_Random(t *testing.T) {
	t.Run("empty collection returns sentinel", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("List", mock.Anything).Return([]model.Joke{}, nil)

		svc := NewJokeService(mockRepo, nil)
		res, err := svc.Random(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, "N/A", res.ID)
		assert.Equal(t, "No jokes available.", res.Content)
	})

	t.Run("selection is a member of the collection", func(t *testing.T) {
		jokes := []model.Joke{
			{ID: "a", Content: "one"},
			{ID: "b", Content: "two"},
			{ID: "c", Content: "three"},
		}
		mockRepo := new(MockJokeRepository)
		mockRepo.On("List", mock.Anything).Return(jokes, nil)

		svc := NewJokeService(mockRepo, nil)
		members := map[string]string{"a": "one", "b": "two", "c": "three"}
		for i := 0; i < 20; i++ {
			res, err := svc.Random(context.Background())
			assert.NoError(t, err)
			content, ok := members[res.ID]
			assert.True(t, ok, "selected joke not in collection: %s", res.ID)
			assert.Equal(t, content, res.Content)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		mockRepo := new(MockJokeRepository)
		mockRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

		svc := NewJokeService(mockRepo, nil)
		_, err := svc.Random(context.Background())

		assert.Error(t, err)
	})
}
