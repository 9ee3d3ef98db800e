package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"stream_finder/internal/domain"
)

type SearchService struct {
	source    Source
	selector  Selector
	presenter Presenter
	out       io.Writer
	blocked   []string
	logger    *slog.Logger
}

func NewSearchService(
	source Source,
	selector Selector,
	presenter Presenter,
	out io.Writer,
	blocked []string,
	logger *slog.Logger,
) *SearchService {
	return &SearchService{
		source:    source,
		selector:  selector,
		presenter: presenter,
		out:       out,
		blocked:   blocked,
		logger:    logger.With("source", source.ID()),
	}
}

// Run asks for a category and a search term, then walks every page of live
// streams in that category and presents the ones that match.
func (s *SearchService) Run(ctx context.Context) (*domain.SearchStats, error) {
	fmt.Fprintln(s.out, "Enter a category name to search for, or leave blank to list top categories:")
	categoryTerm, err := s.selector.ChooseTerm(ctx)
	if err != nil {
		return nil, fmt.Errorf("read category term: %w", err)
	}

	categories, err := s.source.FetchCategories(ctx, categoryTerm)
	if err != nil {
		return nil, fmt.Errorf("resolve categories: %w", err)
	}

	categoryID, err := s.selector.ChooseGame(ctx, categories)
	if err != nil {
		return nil, fmt.Errorf("choose category: %w", err)
	}

	fmt.Fprintln(s.out, "Enter a search term:")
	term, err := s.selector.ChooseTerm(ctx)
	if err != nil {
		return nil, fmt.Errorf("read search term: %w", err)
	}

	fmt.Fprintf(s.out, "Searching for \"%s\" in chosen category...\n", term)

	return s.Search(ctx, categoryID, term)
}

// Search presents every stream in categoryID whose title contains term.
func (s *SearchService) Search(ctx context.Context, categoryID, term string) (*domain.SearchStats, error) {
	startTime := time.Now()
	s.logger.Info("starting search",
		"source_name", s.source.Name(),
		"category_id", categoryID,
		"term", term,
	)

	stats := &domain.SearchStats{
		CategoryID: categoryID,
		Term:       term,
	}
	lowerTerm := strings.ToLower(term)

	cursor := ""
	for {
		page, err := s.source.FetchStreams(ctx, cursor, categoryID)
		if err != nil {
			return stats, fmt.Errorf("fetch page %d: %w", stats.Pages, err)
		}

		stats.Pages++
		stats.Total += len(page.Entries)

		for _, entry := range page.Entries {
			if !Matches(entry, lowerTerm, s.blocked) {
				continue
			}
			if err := s.presenter.Present(entry); err != nil {
				return stats, fmt.Errorf("present entry: %w", err)
			}
			stats.Found++
		}

		if !page.HasNext() {
			break
		}
		cursor = page.Cursor
	}

	stats.Duration = time.Since(startTime)

	s.logger.Info("search completed",
		"found", stats.Found,
		"total", stats.Total,
		"pages", stats.Pages,
		"duration", stats.Duration,
	)

	if err := s.presenter.Summary(stats); err != nil {
		return stats, fmt.Errorf("present summary: %w", err)
	}

	return stats, nil
}
