package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"stream_finder/internal/domain"
)

type Source interface {
	ID() string
	Name() string
	FetchCategories(ctx context.Context, term string) ([]domain.Category, error)
	FetchStreams(ctx context.Context, cursor, categoryID string) (*domain.Page, error)
}

type Selector interface {
	ChooseTerm(ctx context.Context) (string, error)
	ChooseGame(ctx context.Context, categories []domain.Category) (string, error)
}

type Presenter interface {
	Present(entry domain.StreamEntry) error
	Summary(stats *domain.SearchStats) error
}
