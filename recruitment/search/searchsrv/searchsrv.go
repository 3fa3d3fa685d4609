package searchsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/recruitment/search"
)

// SearchService provides business operations for job searches
type SearchService struct {
	searchRepo search.Repository
}

// NewSearchService creates a new instance of the search service
func NewSearchService(searchRepo search.Repository) *SearchService {
	return &SearchService{searchRepo: searchRepo}
}

// CreateSearch creates a new search, Active by default
func (s *SearchService) CreateSearch(ctx context.Context, req search.CreateSearchRequest, createdBy kernel.UserID) (*search.Search, error) {
	if req.Title == "" || req.Area == "" {
		return nil, search.ErrInvalidRequest().WithDetail("missing", "title and area are required")
	}

	now := time.Now()
	newSearch := &search.Search{
		ID:          kernel.NewSearchID(uuid.NewString()),
		Title:       req.Title,
		Area:        req.Area,
		Status:      search.SearchStatusActive,
		Location:    req.Location,
		Description: req.Description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.searchRepo.Create(ctx, newSearch); err != nil {
		return nil, errx.Wrap(err, "failed to create search", errx.TypeInternal)
	}

	return newSearch, nil
}

// GetSearchByID retrieves a search by ID
func (s *SearchService) GetSearchByID(ctx context.Context, id kernel.SearchID) (*search.Search, error) {
	return s.searchRepo.GetByID(ctx, id)
}

// UpdateSearch updates posting fields and, if requested, status
func (s *SearchService) UpdateSearch(ctx context.Context, id kernel.SearchID, req search.UpdateSearchRequest) (*search.Search, error) {
	entity, err := s.searchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var title kernel.SearchTitle
	var area kernel.SearchArea
	var location kernel.SearchLocation
	var description kernel.SearchDescription
	if req.Title != nil {
		title = *req.Title
	}
	if req.Area != nil {
		area = *req.Area
	}
	if req.Location != nil {
		location = *req.Location
	}
	if req.Description != nil {
		description = *req.Description
	}
	entity.UpdateDetails(title, area, location, description)

	if req.Status != nil {
		if err := entity.ChangeStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	if err := s.searchRepo.Update(ctx, id, entity); err != nil {
		return nil, errx.Wrap(err, "failed to update search", errx.TypeInternal)
	}

	return entity, nil
}

// DeleteSearch deletes a search by ID
func (s *SearchService) DeleteSearch(ctx context.Context, id kernel.SearchID) error {
	return s.searchRepo.Delete(ctx, id)
}

// ListSearches retrieves all searches with pagination
func (s *SearchService) ListSearches(ctx context.Context, pagination kernel.PaginationOptions) (*search.PaginatedSearchesResponse, error) {
	items, err := s.searchRepo.List(ctx, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list searches", errx.TypeInternal)
	}
	return items, nil
}

// ListActiveSearches retrieves searches currently accepting applications
func (s *SearchService) ListActiveSearches(ctx context.Context, pagination kernel.PaginationOptions) (*search.PaginatedSearchesResponse, error) {
	items, err := s.searchRepo.ListByStatus(ctx, search.SearchStatusActive, pagination)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list active searches", errx.TypeInternal)
	}
	return items, nil
}
