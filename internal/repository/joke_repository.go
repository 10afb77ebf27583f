package repository

import (
	"context"

	"gorm.io/gorm"

	"jokebox/internal/model"
)

// JokeRepository defines joke persistence operations.
type JokeRepository interface {
	Create(ctx context.Context, joke *model.Joke) error
	FindByID(ctx context.Context, id string) (*model.Joke, error)
	Update(ctx context.Context, joke *model.Joke) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Joke, error)
}

type jokeRepository struct {
	db *gorm.DB
}

// NewJokeRepository builds a GORM-backed repository.
func NewJokeRepository(db *gorm.DB) JokeRepository {
	return &jokeRepository{db: db}
}

func (r *jokeRepository) Create(ctx context.Context, joke *model.Joke) error {
	return r.db.WithContext(ctx).Create(joke).Error
}

func (r *jokeRepository) FindByID(ctx context.Context, id string) (*model.Joke, error) {
	var joke model.Joke
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&joke).Error; err != nil {
		return nil, err
	}
	return &joke, nil
}

func (r *jokeRepository) Update(ctx context.Context, joke *model.Joke) error {
	return r.db.WithContext(ctx).Save(joke).Error
}

func (r *jokeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Joke{}).Error
}

func (r *jokeRepository) List(ctx context.Context) ([]model.Joke, error) {
	var jokes []model.Joke
	if err := r.db.WithContext(ctx).Find(&jokes).Error; err != nil {
		return nil, err
	}
	return jokes, nil
}
