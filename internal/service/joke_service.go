package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"jokebox/internal/cache"
	"jokebox/internal/errors"
	"jokebox/internal/model"
	"jokebox/internal/repository"
)

const (
	jokeListCacheKey = "jokes:all"
	jokeListCacheTTL = 1 * time.Minute
)

// AddJokeResult reports the outcome of adding a joke. Store failures are
// encoded here rather than returned as errors.
type AddJokeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	JokeID  string `json:"jokeId"`
	Content string `json:"content"`
}

// DeleteJokeResult acknowledges a successful deletion.
type DeleteJokeResult struct {
	Message string `json:"message"`
}

// JokePayload is the full joke record with RFC3339 timestamps.
type JokePayload struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UpdateJokeResult reports the outcome of a content update. UpdatedJoke is
// absent when the joke does not exist.
type UpdateJokeResult struct {
	Success     bool         `json:"success"`
	UpdatedJoke *JokePayload `json:"updatedJoke,omitempty"`
}

// RandomJokeResult carries one randomly selected joke, or the sentinel
// values when the collection is empty.
type RandomJokeResult struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// JokeService exposes the joke operations.
type JokeService interface {
	Add(ctx context.Context, content string) AddJokeResult
	Delete(ctx context.Context, jokeID string) (DeleteJokeResult, error)
	Update(ctx context.Context, jokeID, content string) (UpdateJokeResult, error)
	Random(ctx context.Context) (RandomJokeResult, error)
}

type jokeService struct {
	repo  repository.JokeRepository
	cache *cache.Client
}

// NewJokeService builds a JokeService with repository and cache.
func NewJokeService(repo repository.JokeRepository, cache *cache.Client) JokeService {
	return &jokeService{repo: repo, cache: cache}
}

// Add creates a joke record. Store failures never escape; they are encoded
// into the result with the submitted content echoed back.
func (s *jokeService) Add(ctx context.Context, content string) AddJokeResult {
	joke := &model.Joke{Content: content}
	if err := s.repo.Create(ctx, joke); err != nil {
		return AddJokeResult{
			Success: false,
			Message: fmt.Sprintf("Failed to add joke. Error: %v", err),
			JokeID:  "",
			Content: content,
		}
	}
	_ = s.cache.Delete(ctx, jokeListCacheKey)
	return AddJokeResult{
		Success: true,
		Message: "Joke successfully added.",
		JokeID:  joke.ID,
		Content: joke.Content,
	}
}

// Delete removes a joke after verifying it exists. A missing joke is an
// error propagated to the caller.
func (s *jokeService) Delete(ctx context.Context, jokeID string) (DeleteJokeResult, error) {
	if _, err := s.repo.FindByID(ctx, jokeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return DeleteJokeResult{}, errors.ErrJokeNotFound
		}
		return DeleteJokeResult{}, fmt.Errorf("find joke %s: %w", jokeID, err)
	}
	if err := s.repo.Delete(ctx, jokeID); err != nil {
		return DeleteJokeResult{}, fmt.Errorf("delete joke %s: %w", jokeID, err)
	}
	_ = s.cache.Delete(ctx, jokeListCacheKey)
	return DeleteJokeResult{
		Message: fmt.Sprintf("Joke with id %s successfully deleted.", jokeID),
	}, nil
}

// Update replaces a joke's content. A missing joke yields Success=false
// with no payload rather than an error.
func (s *jokeService) Update(ctx context.Context, jokeID, content string) (UpdateJokeResult, error) {
	joke, err := s.repo.FindByID(ctx, jokeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return UpdateJokeResult{Success: false}, nil
		}
		return UpdateJokeResult{}, fmt.Errorf("find joke %s: %w", jokeID, err)
	}

	joke.Content = content
	if err := s.repo.Update(ctx, joke); err != nil {
		return UpdateJokeResult{}, fmt.Errorf("update joke %s: %w", jokeID, err)
	}
	_ = s.cache.Delete(ctx, jokeListCacheKey)

	return UpdateJokeResult{
		Success: true,
		UpdatedJoke: &JokePayload{
			ID:        joke.ID,
			Content:   joke.Content,
			CreatedAt: joke.CreatedAt.Format(time.RFC3339),
			UpdatedAt: joke.UpdatedAt.Format(time.RFC3339),
		},
	}, nil
}

// Random picks one joke uniformly from the collection. An empty collection
// yields the sentinel result instead of an error.
func (s *jokeService) Random(ctx context.Context) (RandomJokeResult, error) {
	jokes, err := s.listAll(ctx)
	if err != nil {
		return RandomJokeResult{}, fmt.Errorf("list jokes: %w", err)
	}
	if len(jokes) == 0 {
		return RandomJokeResult{ID: "N/A", Content: "No jokes available."}, nil
	}
	pick := jokes[rand.Intn(len(jokes))]
	return RandomJokeResult{ID: pick.ID, Content: pick.Content}, nil
}

// listAll loads the joke collection through the cache.
func (s *jokeService) listAll(ctx context.Context) ([]model.Joke, error) {
	if data, _ := s.cache.Get(ctx, jokeListCacheKey); data != nil {
		var cached []model.Joke
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	jokes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(jokes); err == nil {
		_ = s.cache.Set(ctx, jokeListCacheKey, payload, jokeListCacheTTL)
	}
	return jokes, nil
}
